package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jacksmith/casepack/internal/logger"
	"github.com/jacksmith/casepack/internal/model"
	"github.com/jacksmith/casepack/internal/ops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupSQLiteSlot opens a slot backed by a database in a temp directory.
func setupSQLiteSlot(t *testing.T) *SQLiteSlot {
	t.Helper()

	slot, err := OpenSQLiteSlot(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open sqlite slot: %v", err)
	}
	t.Cleanup(func() { slot.Close() })
	return slot
}

func TestSQLiteSlot(t *testing.T) {
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		slot := setupSQLiteSlot(t)
		data, ok, err := slot.Get(ctx, "nothing")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, data)
	})

	t.Run("put then overwrite", func(t *testing.T) {
		slot := setupSQLiteSlot(t)

		require.NoError(t, slot.Put(ctx, "k", []byte("one")))
		require.NoError(t, slot.Put(ctx, "k", []byte("two")))

		data, ok, err := slot.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "two", string(data))

		var count int64
		require.NoError(t, slot.db.Model(&slotRecord{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("keys are independent", func(t *testing.T) {
		slot := setupSQLiteSlot(t)
		require.NoError(t, slot.Put(ctx, "a", []byte("A")))
		require.NoError(t, slot.Put(ctx, "b", []byte("B")))

		a, _, err := slot.Get(ctx, "a")
		require.NoError(t, err)
		b, _, err := slot.Get(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, "A", string(a))
		assert.Equal(t, "B", string(b))
	})

	t.Run("empty value is stored", func(t *testing.T) {
		slot := setupSQLiteSlot(t)
		require.NoError(t, slot.Put(ctx, "k", nil))
		data, ok, err := slot.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, data)
	})
}

func TestStoreRoundTripThroughSQLiteSlot(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "casepack.db")

	slot, err := OpenSQLiteSlot(path)
	require.NoError(t, err)

	st, err := ops.Load(ctx, slot, logger.Nop())
	require.NoError(t, err)
	st.AddBatch([]model.Pair{{Input: "3\n10 20 30", Output: "60"}, {Input: "1", Output: "1"}})
	st.DeleteTestCase(1)
	require.NoError(t, st.Save(ctx))
	require.NoError(t, slot.Close())

	slot, err = OpenSQLiteSlot(path)
	require.NoError(t, err)
	defer slot.Close()

	restored, err := ops.Load(ctx, slot, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, []model.TestCase{{ID: 2, Input: "1", Output: "1"}}, restored.TestCases())
	assert.Equal(t, 3, restored.NextID())
}
