package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jacksmith/casepack/internal/cli"
	"github.com/jacksmith/casepack/internal/logger"
	"github.com/jacksmith/casepack/internal/model"
	"github.com/jacksmith/casepack/internal/ops"
	"github.com/jacksmith/casepack/internal/storage"
)

// session bundles what every command needs: the workspace, its config, a
// logger and the loaded store.
type session struct {
	storage *storage.Storage
	cfg     *storage.Config
	log     logger.Logger
	store   *ops.Store
	close   func() error
}

// openSession opens the workspace in the current directory and loads the
// saved test cases. Callers must Close the session.
func openSession(ctx context.Context) (*session, error) {
	s, err := storage.Open(".")
	if err != nil {
		return nil, err
	}
	if _, err := s.LoadStorageConfig(); err != nil {
		return nil, err
	}
	cfg, err := s.LoadConfig()
	if err != nil {
		return nil, err
	}
	if err := cli.ApplyColorMode(cfg.Color, os.Stdout); err != nil {
		return nil, err
	}

	log := logger.NewLogrusLogger(os.Stderr, cfg.LogLevel).WithField("backend", cfg.Backend)

	slot, closeSlot, err := s.OpenSlot(cfg.Backend)
	if err != nil {
		return nil, err
	}

	_, saved, err := slot.Get(ctx, ops.StateKey)
	if err != nil {
		closeSlot()
		return nil, fmt.Errorf("failed to read saved test cases: %w", err)
	}

	store, err := ops.Load(ctx, slot, log)
	if err != nil {
		closeSlot()
		return nil, err
	}

	sess := &session{storage: s, cfg: cfg, log: log, store: store, close: closeSlot}

	if cfg.SeedSamples && !saved && store.SeedSamples() {
		log.Info(ctx, "seeded sample test cases", nil)
		if err := sess.save(ctx); err != nil {
			sess.Close()
			return nil, err
		}
	}
	return sess, nil
}

// save persists the store through its slot.
func (s *session) save(ctx context.Context) error {
	if err := s.store.Save(ctx); err != nil {
		s.log.Error(ctx, "save failed", map[string]interface{}{"error": err.Error()})
		return err
	}
	return nil
}

// Close releases the slot backend.
func (s *session) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// withSession opens a session, runs fn and closes the session again.
func withSession(fn func(ctx context.Context, sess *session) error) error {
	ctx := context.Background()
	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()
	return fn(ctx, sess)
}

// lookupTestCase resolves an id argument such as "3" or "#3".
func lookupTestCase(store *ops.Store, arg string) (model.TestCase, error) {
	id, err := model.ParseID(arg)
	if err != nil {
		return model.TestCase{}, &cli.ValidationError{Field: "id", Message: fmt.Sprintf("%q is not a test case id", arg)}
	}
	tc, ok := store.Get(id)
	if !ok {
		return model.TestCase{}, &cli.NotFoundError{Kind: "test case", Name: fmt.Sprintf("#%d", id)}
	}
	return tc, nil
}

// checkBodies rejects bodies that cannot be saved. what names the source
// in the message.
func checkBodies(what string, texts ...string) error {
	for _, text := range texts {
		if model.CheckText(text) != nil {
			return cli.WithHint(&cli.ValidationError{Message: fmt.Sprintf("%s is not valid UTF-8 text", what)},
				"Convert it first, e.g. iconv -f LATIN1 -t UTF-8.")
		}
	}
	return nil
}

// batchError turns store batch errors into user-facing validation errors.
func batchError(err error) error {
	switch {
	case errors.Is(err, ops.ErrEmptyBatch):
		return cli.WithHint(&cli.ValidationError{Message: "nothing to add: the batch text is empty"},
			"Mark each case with inN: and outN: lines, e.g. in1:, <input lines>, out1:, <output lines>.")
	case errors.Is(err, ops.ErrNoTestCases):
		return cli.WithHint(&cli.ValidationError{Message: "no valid test cases found"},
			"Every case needs an inN: line followed by an outN: line.")
	}
	return err
}
