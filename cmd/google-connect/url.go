package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brizzai/google-connect/internal/auth/providers"
)

var urlCmd = &cobra.Command{
	Use:   "url",
	Short: "Print the Google authorization URL and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		authURL, err := providers.NewGoogleProvider(&cfg.Google).AuthURL()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), authURL)
		return err
	},
}
