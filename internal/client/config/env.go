package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays cfg with environment variables, loading a .env file
// first when one exists in the working directory.
//
// Recognized variables:
//
//	API_URL          base URL of the REST backend
//	SEARCH_DEBOUNCE  duration, e.g. "400ms"
//	PAGE_SIZE        positive integer
//	HTTP_TIMEOUT     duration, e.g. "15s"
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	cfg.APIBaseURL = getEnv("API_URL", cfg.APIBaseURL)

	if v := os.Getenv("SEARCH_DEBOUNCE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.SearchDebounce = d
		}
	}
	if v := os.Getenv("PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PageSize = n
		}
	}
	if v := os.Getenv("HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.HTTPTimeout = d
		}
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
