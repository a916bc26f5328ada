// Package config loads application configuration from environment variables
// into tagged structs. It wraps github.com/joho/godotenv and
// github.com/caarlos0/env/v11 and caches each parsed configuration type so
// the expensive parse runs at most once per process.
//
// Usage:
//
//	var cfg engine.Config
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatalf("parsing env: %v", err)
//	}
//
// Sentinel errors can be compared with errors.Is. ResetCache clears the
// process-wide cache between tests.
package config
