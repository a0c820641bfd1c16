// Package config loads runtime configuration from file, environment, and
// flags via viper.
package config

import "github.com/spf13/viper"

// Config holds all runtime configuration for the tilebill binary.
// Values come from .tilebill.yaml, TILEBILL_* env vars, and CLI flags.
type Config struct {
	// ListenAddr is the HTTP listen address for serve.
	ListenAddr string `mapstructure:"listen_addr"`

	// DBPath is the SQLite database file holding bills and inventory.
	DBPath string `mapstructure:"db_path"`

	// RetentionDays is the default age threshold for the purge operation.
	RetentionDays int `mapstructure:"retention_days"`

	// TokenSecret signs owner tokens. Must be set to a strong random
	// value in any real deployment.
	TokenSecret string `mapstructure:"token_secret"`

	// TokenTTLHours is the owner token lifetime.
	TokenTTLHours int `mapstructure:"token_ttl_hours"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() Config {
	viper.SetDefault("listen_addr", ":8080")
	viper.SetDefault("db_path", "./data/inventory.db")
	viper.SetDefault("retention_days", 30)
	viper.SetDefault("token_secret", "")
	viper.SetDefault("token_ttl_hours", 24)
	viper.SetDefault("log_level", "info")

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}
