package config

import (
	"os"
	"time"
)

// parseEnv overlays Config with values from the environment:
//
//	VISADESK_API_URL          base URL of the backend API
//	VISADESK_REQUEST_TIMEOUT  duration string, e.g. "15s"
//	VISADESK_DATABASE_FILE    path of the local database file
//
// Unset or malformed values leave the current Config untouched.
func parseEnv(cfg *Config) {
	if v := os.Getenv("VISADESK_API_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("VISADESK_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv("VISADESK_DATABASE_FILE"); v != "" {
		cfg.DatabaseFile = v
	}
}
