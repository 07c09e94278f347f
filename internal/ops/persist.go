package ops

import (
	"context"
	"fmt"

	"github.com/jacksmith/casepack/internal/logger"
	"github.com/jacksmith/casepack/internal/model"
)

// StateKey is the fixed slot key the store is persisted under.
const StateKey = "testCasesManager"

// Slot is a persistent key-value slot. The concrete implementations are
// storage.FileSlot and storage.SQLiteSlot.
type Slot interface {
	// Get returns the blob stored under key. ok is false when nothing is stored.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	// Put replaces the blob stored under key.
	Put(ctx context.Context, key string, data []byte) error
}

// Load restores a store from slot and attaches slot for later saves.
// A missing or corrupt blob gives an empty store; corruption is logged, not
// returned. Only a failure to read the slot at all is an error.
func Load(ctx context.Context, slot Slot, log logger.Logger) (*Store, error) {
	s := NewStore()
	s.slot = slot

	data, ok, err := slot.Get(ctx, StateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read saved test cases: %w", err)
	}
	if !ok {
		log.Debug(ctx, "no saved state, starting empty", map[string]interface{}{"key": StateKey})
		return s, nil
	}

	st, err := model.DecodeState(data)
	if err != nil {
		log.Warn(ctx, "saved state is corrupt, starting empty", map[string]interface{}{
			"key":   StateKey,
			"error": err.Error(),
		})
		return s, nil
	}

	s.cases = st.TestCases
	s.nextID = st.NextID
	log.Debug(ctx, "loaded saved state", map[string]interface{}{
		"test_cases": len(s.cases),
		"next_id":    s.nextID,
	})
	return s, nil
}

// Save writes the test cases and next ID to the attached slot. Extra files
// are not saved. Save is a no-op when no slot is attached.
func (s *Store) Save(ctx context.Context) error {
	if s.slot == nil {
		return nil
	}
	data, err := model.EncodeState(s.State())
	if err != nil {
		return err
	}
	if err := s.slot.Put(ctx, StateKey, data); err != nil {
		return fmt.Errorf("failed to save test cases: %w", err)
	}
	return nil
}

// State returns the persisted form of the store.
func (s *Store) State() *model.State {
	return &model.State{
		TestCases: s.TestCases(),
		NextID:    s.nextID,
	}
}
