package config

import "time"

// Config holds runtime settings for the dealership client.
//
// Fields:
//   - APIBaseURL: base URL of the REST backend.
//   - SearchDebounce: quiet period of the catalog search input.
//   - PageSize: catalog page size sent as the limit parameter.
//   - HTTPTimeout: per-request timeout of the API client.
type Config struct {
	APIBaseURL     string
	SearchDebounce time.Duration
	PageSize       int
	HTTPTimeout    time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:3000"
	c.SearchDebounce = 400 * time.Millisecond
	c.PageSize = 8
	c.HTTPTimeout = 15 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), environment variables (including a .env file) and
// command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
