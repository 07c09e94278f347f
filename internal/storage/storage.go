// Package storage provides file system operations for .tcm/ directories.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// tcmDir is the name of the casepack directory.
	tcmDir = ".tcm"
	// slotsDir is the subdirectory for file slots.
	slotsDir = "slots"
	// configFile is the name of the config file within .tcm/.
	configFile = "config.yaml"
	// dbFile is the sqlite database used by the sqlite backend.
	dbFile = "casepack.db"

	// storageVersion is written to .tcm/config.yaml by Init.
	storageVersion = 1
)

// StorageConfig contains settings stored in .tcm/config.yaml.
type StorageConfig struct {
	Version int `yaml:"version"`
}

// Storage provides access to a .tcm/ directory.
type Storage struct {
	root string // path to directory containing .tcm/
}

// Open returns a Storage for the given directory.
// Returns error if .tcm/ does not exist.
func Open(dir string) (*Storage, error) {
	tcmPath := filepath.Join(dir, tcmDir)
	info, err := os.Stat(tcmPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf(".tcm/ directory not found in %s (run 'tcm init' first)", dir)
		}
		return nil, fmt.Errorf("failed to access .tcm/: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf(".tcm is not a directory")
	}

	return &Storage{root: dir}, nil
}

// Init creates the .tcm/ directory structure.
// Returns error if .tcm/ already exists.
func Init(dir string) (*Storage, error) {
	tcmPath := filepath.Join(dir, tcmDir)

	if _, err := os.Stat(tcmPath); err == nil {
		return nil, fmt.Errorf(".tcm/ directory already exists in %s", dir)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to check for .tcm/: %w", err)
	}

	if err := os.MkdirAll(filepath.Join(tcmPath, slotsDir), 0755); err != nil {
		return nil, fmt.Errorf("failed to create .tcm/%s/: %w", slotsDir, err)
	}

	cfg := StorageConfig{Version: storageVersion}
	cfgData, err := yaml.Marshal(&cfg)
	if err != nil {
		os.RemoveAll(tcmPath)
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(tcmPath, configFile), cfgData, 0644); err != nil {
		os.RemoveAll(tcmPath)
		return nil, fmt.Errorf("failed to write config.yaml: %w", err)
	}

	return &Storage{root: dir}, nil
}

// Root returns the root directory containing .tcm/.
func (s *Storage) Root() string {
	return s.root
}

// TcmPath returns the path to the .tcm/ directory.
func (s *Storage) TcmPath() string {
	return filepath.Join(s.root, tcmDir)
}

// LoadStorageConfig reads .tcm/config.yaml.
func (s *Storage) LoadStorageConfig() (*StorageConfig, error) {
	path := filepath.Join(s.TcmPath(), configFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var cfg StorageConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if cfg.Version > storageVersion {
		return nil, fmt.Errorf("%s has version %d, this tcm supports up to %d", path, cfg.Version, storageVersion)
	}
	return &cfg, nil
}

// FileSlot returns the file-backed slot rooted in .tcm/slots/.
func (s *Storage) FileSlot() *FileSlot {
	return NewFileSlot(filepath.Join(s.TcmPath(), slotsDir))
}

// DBPath returns the path of the sqlite database.
func (s *Storage) DBPath() string {
	return filepath.Join(s.TcmPath(), dbFile)
}
