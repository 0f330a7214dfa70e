package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const defaultConfigName = "flightrules.toml"

// FetchConfig controls how raw reports are fetched
type FetchConfig struct {
	APIBaseURL            string `toml:"api_base_url"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
	MaxRetries            int    `toml:"max_retries"`
}

// ServerConfig controls the optional HTTP status server
type ServerConfig struct {
	ListenAddr string `toml:"listen_addr"`
}

// LoggingConfig controls operational logging
type LoggingConfig struct {
	Level string `toml:"level"`
}

// Config is the on-disk configuration
type Config struct {
	Airport               string        `toml:"airport"`
	UpdateIntervalSeconds int           `toml:"update_interval_seconds"`
	FlightRules           Thresholds    `toml:"flight_rules"`
	Fetch                 FetchConfig   `toml:"fetch"`
	Server                ServerConfig  `toml:"server"`
	Logging               LoggingConfig `toml:"logging"`
}

// DefaultConfig returns a configuration with FAA thresholds and a five
// minute refresh
func DefaultConfig() Config {
	return Config{
		UpdateIntervalSeconds: 300,
		FlightRules:           DefaultThresholds(),
		Fetch: FetchConfig{
			APIBaseURL:            "https://aviationweather.gov/api/data",
			RequestTimeoutSeconds: 10,
			MaxRetries:            2,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig reads a TOML file over the defaults. An empty path searches the
// working directory and the user config directory, falling back to defaults.
func LoadConfig(path string) (Config, string, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = findConfigFile()
		if path == "" {
			return cfg, "", nil
		}
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, path, fmt.Errorf("error reading config %s: %w", path, err)
	}

	cfg.Airport = strings.ToUpper(strings.TrimSpace(cfg.Airport))

	return cfg, path, nil
}

// findConfigFile returns the first config file that exists, or ""
func findConfigFile() string {
	candidates := []string{defaultConfigName}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "flightrules", "config.toml"))
	}

	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

// Validate checks the settings the program depends on. Flight rules
// thresholds are taken as given.
func (c Config) Validate() error {
	var errs []error

	if c.Airport != "" && !stationCodeRegex.MatchString(c.Airport) {
		errs = append(errs, fmt.Errorf("invalid airport %q: must be 4 letters", c.Airport))
	}
	if c.UpdateIntervalSeconds <= 0 {
		errs = append(errs, fmt.Errorf("update_interval_seconds must be positive, got %d", c.UpdateIntervalSeconds))
	}
	if c.Fetch.APIBaseURL == "" {
		errs = append(errs, errors.New("fetch.api_base_url is required"))
	}
	if c.Fetch.RequestTimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("fetch.request_timeout_seconds must be positive, got %d", c.Fetch.RequestTimeoutSeconds))
	}
	if c.Fetch.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("fetch.max_retries must not be negative, got %d", c.Fetch.MaxRetries))
	}

	return errors.Join(errs...)
}
