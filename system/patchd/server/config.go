package server

import (
	"fmt"
	"log/slog"

	"gopkg.in/ini.v1"
)

// Config represents the patchd server configuration file structure,
// an ini file with a [patchd] section.
type Config struct {
	// Addr is the TCP listen address.
	Addr string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// Extensions lists extension ops enabled for treedoc/apply.
	Extensions []string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Addr:     "127.0.0.1:7341",
		LogLevel: "info",
	}
}

// LoadConfig loads a configuration file. Missing keys keep their
// defaults.
func LoadConfig(path string) (*Config, error) {
	f, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := DefaultConfig()
	sec := f.Section("patchd")
	if v := sec.Key("addr").String(); v != "" {
		cfg.Addr = v
	}
	if v := sec.Key("log_level").String(); v != "" {
		cfg.LogLevel = v
	}
	if v := sec.Key("extensions").Strings(","); len(v) != 0 {
		cfg.Extensions = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
		return nil
	}
	return fmt.Errorf("unknown log_level %q", c.LogLevel)
}

func (c *Config) slogLevel() slog.Level {
	switch c.LogLevel {
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
