package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/flagx"
	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "400ms"
// or as integer nanoseconds.
type JsonConfig struct {
	APIBaseURL     string         `json:"api_base_url"`
	SearchDebounce timex.Duration `json:"search_debounce"`
	PageSize       int            `json:"page_size"`
	HTTPTimeout    timex.Duration `json:"http_timeout"`
}

// parseJson overlays cfg with values from the JSON file selected via -c or
// -config. Absent file path means no JSON stage. Only fields present in the
// file override; zero values are left alone.
//
// Panics on read or unmarshal errors, misconfiguration is fatal at startup.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.SearchDebounce.Duration != 0 {
		cfg.SearchDebounce = time.Duration(jc.SearchDebounce.Duration)
	}
	if jc.PageSize != 0 {
		cfg.PageSize = jc.PageSize
	}
	if jc.HTTPTimeout.Duration != 0 {
		cfg.HTTPTimeout = time.Duration(jc.HTTPTimeout.Duration)
	}
}
