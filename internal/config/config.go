// Package config handles configuration for the importer. It provides
// functionality to load, save, and default the application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the importer configuration.
type Config struct {
	VaultPath    string        `yaml:"vault_path"`
	OutputFormat string        `yaml:"output_format"`
	ShowSecrets  bool          `yaml:"show_secrets"`
	ClipboardTTL time.Duration `yaml:"clipboard_ttl"`
	KDF          KDFConfig     `yaml:"kdf"`
}

// KDFConfig represents Argon2id parameters for the destination vault.
type KDFConfig struct {
	Memory      uint32 `yaml:"memory"`
	Iterations  uint32 `yaml:"iterations"`
	Parallelism uint8  `yaml:"parallelism"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		VaultPath:    filepath.Join(home, ".local", "share", "bwimport", "vault.db"),
		OutputFormat: "summary",
		ShowSecrets:  false,
		ClipboardTTL: 30 * time.Second,
		KDF: KDFConfig{
			Memory:      64 * 1024,
			Iterations:  3,
			Parallelism: 4,
		},
	}
}

// DefaultConfigPath returns the default config file location.
func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "bwimport", "config.yaml")
}

// LoadConfig loads configuration from the given path, falling back to
// defaults when the file does not exist. An explicit path that cannot be
// read is an error.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to the given path.
func (c *Config) Save(path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
