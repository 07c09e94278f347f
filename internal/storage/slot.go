package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jacksmith/casepack/internal/ops"
)

// Backend names accepted in .tcmconfig.yaml.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// slotKeyRegex limits keys to names that are safe as file names.
var slotKeyRegex = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// OpenSlot returns the slot for the configured backend. The returned close
// function must be called when the caller is done with the slot.
func (s *Storage) OpenSlot(backend string) (ops.Slot, func() error, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendFile:
		return s.FileSlot(), func() error { return nil }, nil

	case BackendSQLite:
		slot, err := OpenSQLiteSlot(s.DBPath())
		if err != nil {
			return nil, nil, err
		}
		return slot, slot.Close, nil

	default:
		return nil, nil, fmt.Errorf("unsupported backend: %s", backend)
	}
}

// FileSlot stores each key as <dir>/<key>.yaml.
type FileSlot struct {
	dir string
}

// NewFileSlot returns a FileSlot writing into dir.
func NewFileSlot(dir string) *FileSlot {
	return &FileSlot{dir: dir}
}

func (f *FileSlot) path(key string) (string, error) {
	if !slotKeyRegex.MatchString(key) || strings.Trim(key, ".") == "" {
		return "", fmt.Errorf("invalid slot key %q", key)
	}
	return filepath.Join(f.dir, key+".yaml"), nil
}

// Get returns the blob stored under key.
func (f *FileSlot) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path, err := f.path(key)
	if err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return data, true, nil
}

// Put replaces the blob stored under key. The write goes to a temp file in
// the same directory which is then renamed over the old one.
func (f *FileSlot) Put(ctx context.Context, key string, data []byte) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(f.dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", f.dir, err)
	}

	tmp, err := os.CreateTemp(f.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}
	return nil
}
