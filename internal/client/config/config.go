// Package config handles configuration for the visadesk client, including
// defaults, JSON overlay, environment variables, and command-line flags.
package config

import "time"

// Config holds runtime settings for the visadesk client.
//
// Fields:
//   - BaseURL: root of the backend REST API.
//   - RequestTimeout: fixed deadline applied to every request.
//   - DatabaseFile: path of the local sqlite DB holding the persisted session.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	DatabaseFile   string
}

// LoadDefaults populates c with sensible defaults. The base URL fallback
// matches the backend's development address.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:5000/api"
	c.RequestTimeout = 10 * time.Second
	c.DatabaseFile = "visadesk.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), the environment, and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
