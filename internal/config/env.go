package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type envConfig struct {
	APP_PORT              string
	LOG_FILE_PATH         string
	LOG_LEVEL             string
	CENSUS_SOURCE_URL     string
	DASHBOARD_CONFIG_PATH string
	REFRESH_INTERVAL      time.Duration
	FETCH_TIMEOUT         time.Duration
}

// DefaultEnvConfig is populated by LoadEnvConfig.
var DefaultEnvConfig = defaults()

func defaults() envConfig {
	return envConfig{
		APP_PORT:      "8080",
		LOG_LEVEL:     "info",
		FETCH_TIMEOUT: 30 * time.Second,
	}
}

// LoadEnvConfig reads an optional .env file, then the process environment,
// into DefaultEnvConfig. Variables already set in the environment win over
// the .env file.
func LoadEnvConfig(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load %s: %w", file, err)
		}
	}

	cfg := defaults()
	cfg.APP_PORT = getString("APP_PORT", cfg.APP_PORT)
	cfg.LOG_FILE_PATH = getString("LOG_FILE_PATH", cfg.LOG_FILE_PATH)
	cfg.LOG_LEVEL = getString("LOG_LEVEL", cfg.LOG_LEVEL)
	cfg.CENSUS_SOURCE_URL = getString("CENSUS_SOURCE_URL", cfg.CENSUS_SOURCE_URL)
	cfg.DASHBOARD_CONFIG_PATH = getString("DASHBOARD_CONFIG_PATH", cfg.DASHBOARD_CONFIG_PATH)

	var err error
	if cfg.REFRESH_INTERVAL, err = getDuration("REFRESH_INTERVAL", cfg.REFRESH_INTERVAL); err != nil {
		return err
	}
	if cfg.FETCH_TIMEOUT, err = getDuration("FETCH_TIMEOUT", cfg.FETCH_TIMEOUT); err != nil {
		return err
	}
	if _, err := strconv.Atoi(cfg.APP_PORT); err != nil {
		return fmt.Errorf("APP_PORT must be numeric, got %q", cfg.APP_PORT)
	}

	DefaultEnvConfig = cfg
	return nil
}

func getString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// getDuration accepts Go durations ("90s") or a bare number of seconds.
func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
