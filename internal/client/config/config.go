// Package config loads runtime configuration for the postboard CLI.
//
// Sources, later overriding earlier:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. POSTBOARD_* environment variables.
//  4. Command-line flags: -a address, -i online check interval (seconds),
//     -r request timeout (seconds).
//
// JSON durations may be strings like "3s" or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "request_timeout": "5s"
//	}
package config

import "time"

// Config holds runtime settings for the postboard CLI.
type Config struct {
	ServerEndpointAddr  string        `env:"POSTBOARD_SERVER_ADDR"`
	OnlineCheckInterval time.Duration `env:"POSTBOARD_ONLINE_CHECK_INTERVAL"`
	RequestTimeout      time.Duration `env:"POSTBOARD_REQUEST_TIMEOUT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 5 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays JSON,
// environment and flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
