package config

import "time"

// Config holds runtime settings for the contactdesk CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the contacts service, no trailing slash.
//   - RequestTimeout: per-request timeout for remote calls.
//   - CredentialDB: sqlite DSN of the local credential database.
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
	CredentialDB   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:5000"
	c.RequestTimeout = 10 * time.Second
	c.CredentialDB = "contactdesk.db"
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
