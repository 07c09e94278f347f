package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jacksmith/casepack/internal/logger"
	"github.com/jacksmith/casepack/internal/ops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	t.Run("init in empty directory creates .tcm structure", func(t *testing.T) {
		dir := t.TempDir()

		s, err := Init(dir)
		require.NoError(t, err)
		require.NotNil(t, s)

		info, err := os.Stat(filepath.Join(dir, ".tcm"))
		require.NoError(t, err)
		assert.True(t, info.IsDir())

		_, err = os.Stat(filepath.Join(dir, ".tcm", "config.yaml"))
		require.NoError(t, err)

		info, err = os.Stat(filepath.Join(dir, ".tcm", "slots"))
		require.NoError(t, err)
		assert.True(t, info.IsDir())

		cfg, err := s.LoadStorageConfig()
		require.NoError(t, err)
		assert.Equal(t, 1, cfg.Version)
	})

	t.Run("init in directory with existing .tcm returns error", func(t *testing.T) {
		dir := t.TempDir()

		_, err := Init(dir)
		require.NoError(t, err)

		_, err = Init(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})
}

func TestOpen(t *testing.T) {
	t.Run("open existing .tcm directory succeeds", func(t *testing.T) {
		dir := t.TempDir()
		_, err := Init(dir)
		require.NoError(t, err)

		s, err := Open(dir)
		require.NoError(t, err)
		require.NotNil(t, s)
		assert.Equal(t, dir, s.Root())
		assert.Equal(t, filepath.Join(dir, ".tcm"), s.TcmPath())
	})

	t.Run("open directory without .tcm returns error", func(t *testing.T) {
		s, err := Open(t.TempDir())
		require.Error(t, err)
		assert.Nil(t, s)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("open when .tcm is a file returns error", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".tcm"), []byte("nope"), 0644))

		s, err := Open(dir)
		require.Error(t, err)
		assert.Nil(t, s)
		assert.Contains(t, err.Error(), "not a directory")
	})
}

func TestLoadStorageConfigNewerVersion(t *testing.T) {
	dir := t.TempDir()
	s, err := Init(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".tcm", "config.yaml"), []byte("version: 9\n"), 0644))

	_, err = s.LoadStorageConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "supports up to")
}

func TestFileSlot(t *testing.T) {
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		slot := NewFileSlot(t.TempDir())
		data, ok, err := slot.Get(ctx, "testCasesManager")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, data)
	})

	t.Run("put then get", func(t *testing.T) {
		dir := t.TempDir()
		slot := NewFileSlot(dir)

		require.NoError(t, slot.Put(ctx, "testCasesManager", []byte("nextId: 3\n")))
		require.NoError(t, slot.Put(ctx, "testCasesManager", []byte("nextId: 4\n")))

		data, ok, err := slot.Get(ctx, "testCasesManager")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "nextId: 4\n", string(data))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1, "temp files should not be left behind")
		assert.Equal(t, "testCasesManager.yaml", entries[0].Name())
	})

	t.Run("put creates the directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "slots")
		slot := NewFileSlot(dir)
		require.NoError(t, slot.Put(ctx, "k", []byte("v")))
		_, err := os.Stat(filepath.Join(dir, "k.yaml"))
		require.NoError(t, err)
	})

	t.Run("keys that escape the directory are rejected", func(t *testing.T) {
		slot := NewFileSlot(t.TempDir())
		for _, key := range []string{"../x", "a/b", "", "..", "."} {
			_, _, err := slot.Get(ctx, key)
			assert.Error(t, err, "key %q", key)
			assert.Error(t, slot.Put(ctx, key, nil), "key %q", key)
		}
	})
}

func TestOpenSlot(t *testing.T) {
	dir := t.TempDir()
	s, err := Init(dir)
	require.NoError(t, err)

	t.Run("file backend", func(t *testing.T) {
		slot, closeFn, err := s.OpenSlot("file")
		require.NoError(t, err)
		defer closeFn()
		assert.IsType(t, &FileSlot{}, slot)
	})

	t.Run("empty backend defaults to file", func(t *testing.T) {
		slot, closeFn, err := s.OpenSlot("")
		require.NoError(t, err)
		defer closeFn()
		assert.IsType(t, &FileSlot{}, slot)
	})

	t.Run("sqlite backend", func(t *testing.T) {
		slot, closeFn, err := s.OpenSlot("SQLite")
		require.NoError(t, err)
		defer closeFn()
		assert.IsType(t, &SQLiteSlot{}, slot)

		_, err = os.Stat(s.DBPath())
		require.NoError(t, err)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, _, err := s.OpenSlot("s3")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported backend")
	})
}

func TestStoreRoundTripThroughFileSlot(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := Init(dir)
	require.NoError(t, err)

	st, err := ops.Load(ctx, s.FileSlot(), logger.Nop())
	require.NoError(t, err)
	id := st.AddTestCase()
	st.UpdateField(id, "input", "5\n1 2 3 4 5")
	st.UpdateField(id, "output", "15")
	require.NoError(t, st.Save(ctx))

	reopened, err := Open(dir)
	require.NoError(t, err)
	restored, err := ops.Load(ctx, reopened.FileSlot(), logger.Nop())
	require.NoError(t, err)

	tc, ok := restored.Get(id)
	require.True(t, ok)
	assert.Equal(t, "5\n1 2 3 4 5", tc.Input)
	assert.Equal(t, "15", tc.Output)
	assert.Equal(t, 2, restored.NextID())
}

func TestCorruptFileSlotFallsBackToEmpty(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := Init(dir)
	require.NoError(t, err)

	path := filepath.Join(dir, ".tcm", "slots", ops.StateKey+".yaml")
	require.NoError(t, os.WriteFile(path, []byte("testCases: {broken"), 0644))

	log := logger.NewTestLogger()
	st, err := ops.Load(ctx, s.FileSlot(), log)
	require.NoError(t, err)
	assert.Equal(t, 0, st.Len())
	require.Len(t, log.Entries(), 1)
	assert.Equal(t, "warn", log.Entries()[0].Level)
}
