// Package config loads envcompose defaults from the environment.
//
// Every setting has a matching CLI flag; flags win over the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/roach88/envcompose/internal/host"
)

// Config holds environment-provided defaults.
type Config struct {
	Format     string `env:"ENVCOMPOSE_FORMAT"      envDefault:"text"`
	TargetOS   string `env:"ENVCOMPOSE_TARGET_OS"`
	PHPDir     string `env:"ENVCOMPOSE_PHP_DIR"`
	ExtDir     string `env:"ENVCOMPOSE_EXT_DIR"`
	PHPVersion string `env:"ENVCOMPOSE_PHP_VERSION"`
	LogLevel   string `env:"ENVCOMPOSE_LOG_LEVEL"   envDefault:"info"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if _, err := cfg.Level(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Level returns the configured slog level. Accepts debug, info, warn and
// error in any case.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Host returns the target host. An empty TargetOS means the running system.
func (c Config) Host() host.Host {
	return host.ForOS(c.TargetOS)
}

// Build returns the interpreter build, or nil when none of PHPDir, ExtDir
// and PHPVersion is set.
func (c Config) Build() host.Build {
	if c.PHPDir == "" && c.ExtDir == "" && c.PHPVersion == "" {
		return nil
	}
	return host.StaticBuild{Dir: c.PHPDir, ExtensionDir: c.ExtDir, PHPVersion: c.PHPVersion}
}
