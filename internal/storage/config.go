package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// userConfigFile is the name of the user configuration file (sibling to .tcm/).
	userConfigFile = ".tcmconfig.yaml"

	// Default configuration values
	DefaultArchiveName = "testcases"
	DefaultBackend     = BackendFile
	DefaultLogLevel    = "warn"
	DefaultSeedSamples = false
	DefaultColor       = "auto"
)

// Config represents user configuration from .tcmconfig.yaml.
// This file is user-managed and never written by tcm.
type Config struct {
	// ArchiveName is the base name used by `tcm export` when no name is given.
	ArchiveName string `yaml:"archive_name"`

	// Backend selects where test cases are saved: "file" or "sqlite".
	Backend string `yaml:"backend"`

	// LogLevel is the logrus level for diagnostics written to stderr.
	LogLevel string `yaml:"log_level"`

	// SeedSamples adds two sample test cases the first time an empty store is opened.
	SeedSamples bool `yaml:"seed_samples"`

	// Color is "auto", "always" or "never".
	Color string `yaml:"color"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		ArchiveName: DefaultArchiveName,
		Backend:     DefaultBackend,
		LogLevel:    DefaultLogLevel,
		SeedSamples: DefaultSeedSamples,
		Color:       DefaultColor,
	}
}

// LoadConfig loads .tcmconfig.yaml if it exists, otherwise returns defaults.
// The config file is a sibling to .tcm/ (in the same directory).
// Partial config files are merged with defaults.
func (s *Storage) LoadConfig() (*Config, error) {
	configPath := s.ConfigPath()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", userConfigFile, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", userConfigFile, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", userConfigFile, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch strings.ToLower(c.Backend) {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("backend must be %q or %q, got %q", BackendFile, BackendSQLite, c.Backend)
	}
	switch strings.ToLower(c.Color) {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("color must be auto, always or never, got %q", c.Color)
	}
	if strings.TrimSpace(c.ArchiveName) == "" {
		c.ArchiveName = DefaultArchiveName
	}
	return nil
}

// ConfigPath returns the path to the user config file.
func (s *Storage) ConfigPath() string {
	return filepath.Join(s.root, userConfigFile)
}
