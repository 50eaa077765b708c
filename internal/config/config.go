// Package config loads notepad settings from a YAML file, a .env file and
// NOTEPAD_* environment variables, in increasing order of precedence.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/notepad/internal/platform"
	"github.com/aretw0/notepad/pkg/core"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "NOTEPAD_"

type Config struct {
	Store    StoreConfig    `yaml:"store"`
	Autosave AutosaveConfig `yaml:"autosave"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type StoreConfig struct {
	Adapter  string `yaml:"adapter" validate:"oneof=fs memory"`
	Path     string `yaml:"path" validate:"required_if=Adapter fs"`
	Key      string `yaml:"key" validate:"required"`
	MaxBytes int    `yaml:"max_bytes" validate:"gte=0"`
}

type AutosaveConfig struct {
	Period time.Duration `yaml:"period" validate:"gt=0"`
}

type LoggingConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Adapter: "fs",
			Path:    ".notepad",
			Key:     core.DefaultKey,
		},
		Autosave: AutosaveConfig{Period: core.DefaultPeriod},
		Logging:  LoggingConfig{Level: "info"},
	}
}

// Load builds the configuration. An empty path skips the YAML file.
// A missing .env file is ignored.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Store.Adapter = getEnv("STORE_ADAPTER", c.Store.Adapter)
	c.Store.Path = getEnv("STORE_PATH", c.Store.Path)
	c.Store.Key = getEnv("STORE_KEY", c.Store.Key)
	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)

	if v := getEnv("STORE_MAX_BYTES", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sSTORE_MAX_BYTES: %w", EnvPrefix, err)
		}
		c.Store.MaxBytes = n
	}
	if v := getEnv("AUTOSAVE_PERIOD", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %sAUTOSAVE_PERIOD: %w", EnvPrefix, err)
		}
		c.Autosave.Period = d
	}
	return nil
}

// Validate checks field constraints and the store key.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return core.ValidateKey(c.Store.Key)
}

// Level maps the configured level name to a slog level.
func (c *Config) Level() slog.Level {
	switch c.Logging.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Options translates the settings into store options.
func (c *Config) Options() []platform.Option {
	return []platform.Option{
		platform.WithAdapter(c.Store.Adapter),
		platform.WithKey(c.Store.Key),
		platform.WithQuota(c.Store.MaxBytes),
		platform.WithPeriod(c.Autosave.Period),
	}
}

// URI is the adapter-specific location of the store.
func (c *Config) URI() string {
	return c.Store.Path
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(EnvPrefix + key); value != "" {
		return value
	}
	return defaultValue
}
