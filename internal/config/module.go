package config

import "go.uber.org/fx"

// Module exposes the individual sections of a loaded *Config
var Module = fx.Module("config",
	fx.Provide(
		func(c *Config) *GoogleConfig { return &c.Google },
		func(c *Config) *ServerConfig { return &c.Server },
		func(c *Config) *LoggingConfig { return &c.Logging },
	),
)
