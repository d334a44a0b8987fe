package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/brizzai/google-connect/internal/auth/constants"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// GetVersionInfo returns a formatted version string
func GetVersionInfo() string {
	return fmt.Sprintf("google-connect version %s, commit %s, built at %s", version, commit, date)
}

// ErrInvalidConfig is returned by Load when required settings are missing or malformed
var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Google  GoogleConfig  `mapstructure:"google" yaml:"google"`
}

type ServerMode string

const (
	ServerModeSTDIO ServerMode = "stdio"
	ServerModeHTTP  ServerMode = "http"
)

type ServerConfig struct {
	Port            int           `mapstructure:"port" yaml:"port" validate:"gte=0,lte=65535"`
	Host            string        `mapstructure:"host" yaml:"host"`
	Mode            ServerMode    `mapstructure:"mode" yaml:"mode" validate:"oneof=stdio http"`
	Name            string        `mapstructure:"name" yaml:"name"`
	Version         string        `mapstructure:"version" yaml:"version"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	AllowOrigins    []string      `mapstructure:"allow_origins" yaml:"allow_origins"`
}

type LoggingConfig struct {
	Level             string `mapstructure:"level" yaml:"level"`
	Format            string `mapstructure:"format" yaml:"format" validate:"omitempty,oneof=json console"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace" yaml:"disable_stacktrace"`
	OutputPath        string `mapstructure:"output_path" yaml:"output_path"`
	AppendToFile      bool   `mapstructure:"append_to_file" yaml:"append_to_file"`
	DisableConsole    bool   `mapstructure:"disable_console" yaml:"disable_console"`
}

// GoogleConfig holds the OAuth client registered in the Google Cloud console
type GoogleConfig struct {
	ClientID     string `mapstructure:"client_id" yaml:"client_id" validate:"required"`
	ClientSecret string `mapstructure:"client_secret" yaml:"client_secret" validate:"required"`
	AppURL       string `mapstructure:"app_url" yaml:"app_url" validate:"required,http_url,base_url"`
}

// RedirectURL returns the callback URL Google redirects to after consent.
func (g GoogleConfig) RedirectURL() string {
	return strings.TrimSuffix(g.AppURL, "/") + constants.CallbackPath
}

// Redacted returns a copy safe to print or log.
func (c Config) Redacted() Config {
	if c.Google.ClientSecret != "" {
		c.Google.ClientSecret = "********"
	}
	return c
}

// legacyEnv maps config keys to the unprefixed variable names used by the web app deployment.
var legacyEnv = map[string]string{
	"google.client_id":     "GOOGLE_CLIENT_ID",
	"google.client_secret": "GOOGLE_CLIENT_SECRET",
	"google.app_url":       "NEXT_PUBLIC_APP_URL",
}

// InitFlags initializes command line flags (without parsing)
func InitFlags(fs *pflag.FlagSet) {
	fs.String("mode", "", "Server mode (stdio|http)")
	fs.String("host", "", "Address to listen on in http mode")
	fs.Int("port", 0, "Port to listen on in http mode")
	fs.String("log-level", "", "Log level (debug|info|warn|error)")
	fs.String("config", "", "Path to a config file")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.mode", string(ServerModeHTTP))
	v.SetDefault("server.name", "Google Connect")
	v.SetDefault("server.version", version)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.allow_origins", []string{})
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.disable_stacktrace", false)
	v.SetDefault("logging.output_path", "")
	v.SetDefault("logging.append_to_file", false)
	v.SetDefault("logging.disable_console", false)
}

// Load reads configuration from defaults, an optional config.yaml, the
// environment and the given flags, then validates the result.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("GOOGLE_CONNECT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for key, env := range legacyEnv {
		// prefixed variables win over the legacy names
		prefixed := "GOOGLE_CONNECT_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, env); err != nil {
			return nil, err
		}
	}

	configFile := ""
	if fs != nil {
		if f := fs.Lookup("config"); f != nil {
			configFile = f.Value.String()
		}
		if err := bindFlags(v, fs); err != nil {
			return nil, err
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/google-connect")
	}

	if err := v.ReadInConfig(); err != nil {
		// The config file is optional unless one was named explicitly
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := Validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindFlags maps CLI flags onto their config keys. Only flags the user set
// are bound so defaults from lower layers are not shadowed.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	keys := map[string]string{
		"mode":      "server.mode",
		"host":      "server.host",
		"port":      "server.port",
		"log-level": "logging.level",
	}
	for name, key := range keys {
		f := fs.Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// base_url: a URL that a path can be appended to, so no query or fragment
	if err := v.RegisterValidation("base_url", func(fl validator.FieldLevel) bool {
		u, err := url.Parse(fl.Field().String())
		if err != nil {
			return false
		}
		return u.RawQuery == "" && !u.ForceQuery && !strings.Contains(fl.Field().String(), "#")
	}); err != nil {
		panic(err)
	}
	return v
}

// Validate checks the configuration and reports every failing field at once.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, ", "))
}
