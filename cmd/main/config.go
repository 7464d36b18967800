package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
)

// ServerConfig holds the configuration for the HTTP servers.
type ServerConfig struct {
	PreviewAddr       string `json:"preview_addr"`
	ApiAddr           string `json:"api_addr"`
	LogLevel          string `json:"log_level"`
	ThemesDir         string `json:"themes_dir"`
	ActiveTheme       string `json:"active_theme"`
	StatsEnabled      bool   `json:"stats_enabled"`
	StatsDatabasePath string `json:"stats_database_path"`
}

// Config is the top-level configuration struct.
type Config struct {
	Server *ServerConfig `json:"server_config"`
}

// DefaultServerConfig creates a server configuration with default values.
// Stats recording defaults to off: a plain preview request then mutates
// nothing beyond its log line.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		PreviewAddr:       ":8888",
		ApiAddr:           ":8889",
		LogLevel:          "info",
		ThemesDir:         "./themes",
		ActiveTheme:       "enterprise",
		StatsEnabled:      false,
		StatsDatabasePath: "./data/preview_stats.db?_journal_mode=WAL&_busy_timeout=5000",
	}
}

// LoadConfig reads the configuration from a JSON file at the given path.
// If the file doesn't exist, it creates one with default values.
func LoadConfig(path string) (*Config, error) {
	config := &Config{
		Server: DefaultServerConfig(),
	}

	file, err := os.ReadFile(path)
	if err != nil {
		// If the file doesn't exist, create it with the default config.
		if os.IsNotExist(err) {
			if err = SaveConfig(path, config); err != nil {
				// Log a warning instead of failing, as the server can still run with defaults.
				fmt.Printf("warning: failed to write default config file: %v\n", err)
			}
			return config, nil
		}
		// For other errors (e.g., permission denied), return the error.
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err = json.Unmarshal(file, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig persists the configuration to disk atomically, so a crash
// mid-write never leaves a truncated config behind.
func SaveConfig(path string, config *Config) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
