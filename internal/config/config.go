package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"taskquest/internal/storage"
)

const (
	EnvDBPath   = "TASKQUEST_DB"
	EnvLogLevel = "TASKQUEST_LOG_LEVEL"
)

var validate = validator.New()

type Config struct {
	DBPath   string `validate:"required"`
	LogLevel string `validate:"oneof=debug info warn error"`
}

// Get returns the value of the environment variable or fallback when unset or empty.
func Get(name, fallback string) string {
	if value, ok := os.LookupEnv(name); ok && value != "" {
		return value
	}
	return fallback
}

// Load reads configuration from the environment. Non-empty fields of
// overrides (command-line flags) win.
func Load(overrides Config) (Config, error) {
	defaultPath, err := storage.DefaultDBPath()
	if err != nil {
		defaultPath = ""
	}
	cfg := Config{
		DBPath:   Get(EnvDBPath, defaultPath),
		LogLevel: Get(EnvLogLevel, "warn"),
	}
	if overrides.DBPath != "" {
		cfg.DBPath = overrides.DBPath
	}
	if overrides.LogLevel != "" {
		cfg.LogLevel = overrides.LogLevel
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
