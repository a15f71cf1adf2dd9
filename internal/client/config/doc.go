// Package config loads runtime configuration for the dealership client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables, including an optional .env file (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the REST backend
//	-d int      search debounce (milliseconds)
//	-p int      catalog page size
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "400ms" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:3000",
//	  "search_debounce": "400ms",
//	  "page_size": 8,
//	  "http_timeout": "15s"
//	}
//
// Primary API
//
//   - type Config: holds the client's runtime settings
//   - func LoadConfig() *Config: defaults, then JSON, env and flags
//   - func (*Config) LoadDefaults(): sets sensible defaults
package config
