// Package daemon holds the runtime configuration for the milkdiary
// daemon and CLI, loaded from ~/.milkdiary/config.toml over defaults.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/iniyantalkies/milkdiary/internal/infra/whatsapp"
)

// Config is the full runtime configuration.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	API     APIConfig     `toml:"api"`
	Admin   AdminConfig   `toml:"admin"`
	Log     LogConfig     `toml:"log"`
}

// StorageConfig locates the sqlite state file.
type StorageConfig struct {
	Path string `toml:"path"`
}

// APIConfig configures the local HTTP server.
type APIConfig struct {
	Host          string `toml:"host"`
	Port          int    `toml:"port"`
	EnableMetrics bool   `toml:"enable_metrics"`
}

// AdminConfig holds the license admin's WhatsApp number.
type AdminConfig struct {
	WhatsApp string `toml:"whatsapp"`
}

// LogConfig configures zerolog.
type LogConfig struct {
	Level string `toml:"level"`
}

// Addr returns the listen address.
func (c APIConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ConfigDir returns ~/.milkdiary (created lazily by callers).
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".milkdiary"
	}
	return filepath.Join(home, ".milkdiary")
}

// DefaultConfig returns the built-in defaults. The API binds loopback
// only — the diary is a single-household app, never exposed.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Path: filepath.Join(ConfigDir(), "milkdiary.db"),
		},
		API: APIConfig{
			Host:          "127.0.0.1",
			Port:          7634,
			EnableMetrics: false,
		},
		Admin: AdminConfig{
			WhatsApp: whatsapp.DefaultAdminNumber,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads config.toml from the config dir over the defaults.
// A missing file is not an error — defaults apply.
func Load() (Config, error) {
	return LoadFrom(filepath.Join(ConfigDir(), "config.toml"))
}

// LoadFrom reads the given TOML file over the defaults.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
