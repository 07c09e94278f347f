package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("no .tcmconfig.yaml returns defaults", func(t *testing.T) {
		dir := t.TempDir()
		s, err := Init(dir)
		require.NoError(t, err)

		cfg, err := s.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, DefaultArchiveName, cfg.ArchiveName)
		assert.Equal(t, DefaultBackend, cfg.Backend)
		assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
		assert.Equal(t, DefaultSeedSamples, cfg.SeedSamples)
		assert.Equal(t, DefaultColor, cfg.Color)
	})

	t.Run("full .tcmconfig.yaml loads all values", func(t *testing.T) {
		dir := t.TempDir()
		s, err := Init(dir)
		require.NoError(t, err)

		configContent := `archive_name: problem-b
backend: sqlite
log_level: debug
seed_samples: true
color: never
`
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".tcmconfig.yaml"), []byte(configContent), 0644))

		cfg, err := s.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "problem-b", cfg.ArchiveName)
		assert.Equal(t, "sqlite", cfg.Backend)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.True(t, cfg.SeedSamples)
		assert.Equal(t, "never", cfg.Color)
	})

	t.Run("partial .tcmconfig.yaml merges with defaults", func(t *testing.T) {
		dir := t.TempDir()
		s, err := Init(dir)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(filepath.Join(dir, ".tcmconfig.yaml"), []byte("seed_samples: true\n"), 0644))

		cfg, err := s.LoadConfig()
		require.NoError(t, err)

		assert.True(t, cfg.SeedSamples)
		assert.Equal(t, DefaultArchiveName, cfg.ArchiveName)
		assert.Equal(t, DefaultBackend, cfg.Backend)
	})

	t.Run("blank archive name falls back to default", func(t *testing.T) {
		dir := t.TempDir()
		s, err := Init(dir)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(filepath.Join(dir, ".tcmconfig.yaml"), []byte("archive_name: \"  \"\n"), 0644))

		cfg, err := s.LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, DefaultArchiveName, cfg.ArchiveName)
	})

	t.Run("unknown backend is rejected", func(t *testing.T) {
		dir := t.TempDir()
		s, err := Init(dir)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(filepath.Join(dir, ".tcmconfig.yaml"), []byte("backend: redis\n"), 0644))

		_, err = s.LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "backend must be")
	})

	t.Run("invalid YAML returns error", func(t *testing.T) {
		dir := t.TempDir()
		s, err := Init(dir)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(filepath.Join(dir, ".tcmconfig.yaml"), []byte("archive_name: [unclosed\n"), 0644))

		_, err = s.LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse")
	})
}

func TestConfigPath(t *testing.T) {
	dir := t.TempDir()
	s, err := Init(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".tcmconfig.yaml"), s.ConfigPath())
}
