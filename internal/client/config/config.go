// Package config loads runtime settings for the gymtrack CLI.
package config

import "time"

// Config holds runtime settings for the client.
//
// Fields:
//   - ServerURL: base URL of the backend REST API.
//   - RequestTimeout: per-request timeout applied by the pipeline.
//   - LocalDBPath: path of the local sqlite database holding the session mirror.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
	LocalDBPath    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:7979"
	c.RequestTimeout = 10 * time.Second
	c.LocalDBPath = "gymtrack.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
