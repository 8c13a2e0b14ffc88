// Package config loads and saves the savebonus TOML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all savebonus configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
	Server     ServerConfig     `toml:"server"`
}

// GeneralConfig holds calculator preferences.
type GeneralConfig struct {
	DefaultBuffer float64 `toml:"default_buffer"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// ServerConfig holds settings for `savebonus serve`.
type ServerConfig struct {
	Addr          string `toml:"addr"`
	SessionTTLSec int    `toml:"session_ttl_sec"`
	SweepSchedule string `toml:"sweep_schedule"`
	MaxSessions   int    `toml:"max_sessions"`
	LogLevel      string `toml:"log_level"`
}

// Themes lists the accepted appearance.theme values.
var Themes = []string{"flexoki-dark", "catppuccin-mocha", "tokyo-night", "terminal"}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DefaultBuffer: 50,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Server: ServerConfig{
			Addr:          "127.0.0.1:8790",
			SessionTTLSec: 900,
			SweepSchedule: "@every 1m",
			MaxSessions:   1000,
			LogLevel:      "info",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "savebonus")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "savebonus")
}

// ConfigPath returns the full path to the config file.
// SAVEBONUS_CONFIG overrides the XDG location.
func ConfigPath() string {
	if p := os.Getenv("SAVEBONUS_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFile(ConfigPath())
}

// LoadFile reads the config at path on top of the defaults.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // user-chosen config path
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.General.DefaultBuffer < 0 {
		return fmt.Errorf("general.default_buffer must not be negative, got %v", c.General.DefaultBuffer)
	}
	if !validTheme(c.Appearance.Theme) {
		return fmt.Errorf("appearance.theme %q is not one of %v", c.Appearance.Theme, Themes)
	}
	if c.Server.SessionTTLSec <= 0 {
		return fmt.Errorf("server.session_ttl_sec must be positive, got %d", c.Server.SessionTTLSec)
	}
	if c.Server.MaxSessions <= 0 {
		return fmt.Errorf("server.max_sessions must be positive, got %d", c.Server.MaxSessions)
	}
	if !logLevels[c.Server.LogLevel] {
		return fmt.Errorf("server.log_level %q is not one of debug, info, warn, error", c.Server.LogLevel)
	}
	return nil
}

func validTheme(name string) bool {
	for _, t := range Themes {
		if t == name {
			return true
		}
	}
	return false
}

// Save writes the config to disk.
func Save(cfg Config) error {
	path := ConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// GetServerAddr returns the listen address from env var or config, in that order.
func GetServerAddr(cfg Config) string {
	if addr := os.Getenv("SAVEBONUS_ADDR"); addr != "" {
		return addr
	}
	return cfg.Server.Addr
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
