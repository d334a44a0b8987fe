package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/brizzai/google-connect/internal/auth"
	"github.com/brizzai/google-connect/internal/config"
	"github.com/brizzai/google-connect/internal/logger"
	"github.com/brizzai/google-connect/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the server in the configured mode (http|stdio)",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := logger.InitLogger(&cfg.Logging, cfg.Server.Mode == config.ServerModeSTDIO); err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	app := fx.New(
		appOptions(cfg),
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.GetLogger().Named("fx")}
		}),
	)
	app.Run()
	return nil
}

// appOptions is the dependency graph behind the serve command
func appOptions(cfg *config.Config) fx.Option {
	return fx.Options(
		fx.Supply(cfg),
		config.Module,
		auth.Module,
		server.Module,
		fx.Invoke(registerServer),
	)
}

// registerServer ties the server's run loop to the fx lifecycle. A server
// failure, or stdin closing in stdio mode, shuts the application down.
func registerServer(lc fx.Lifecycle, shutdowner fx.Shutdowner, cfg *config.ServerConfig, srv *server.Server) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			logger.Info("Starting Google Connect",
				zap.String("mode", string(cfg.Mode)),
				zap.String("version", cfg.Version),
			)
			go func() {
				defer close(done)
				if err := srv.Start(ctx); err != nil {
					logger.Error("Server stopped with error", zap.Error(err))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
					return
				}
				if ctx.Err() == nil {
					_ = shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}
