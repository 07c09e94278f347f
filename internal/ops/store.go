// Package ops holds the test case store: the single owner of test cases,
// extra files and the current selection.
package ops

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jacksmith/casepack/internal/batch"
	"github.com/jacksmith/casepack/internal/model"
)

var (
	// ErrEmptyBatch is returned when batch text is blank.
	ErrEmptyBatch = errors.New("batch text is empty")

	// ErrNoTestCases is returned when batch text contains no complete pair.
	ErrNoTestCases = errors.New("no valid test cases found")

	// ErrDuplicateName is returned when an extra file name is blank or taken.
	ErrDuplicateName = errors.New("duplicate extra file name")
)

// DuplicateNameError reports a rejected extra file name.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	if strings.TrimSpace(e.Name) == "" {
		return "extra file name must not be empty"
	}
	return fmt.Sprintf("extra file %q already exists", e.Name)
}

func (e *DuplicateNameError) Unwrap() error {
	return ErrDuplicateName
}

// Store is the in-memory test case store. It is not safe for concurrent use;
// one shell owns it and calls it from a single goroutine.
type Store struct {
	cases    []model.TestCase
	files    []model.ExtraFile
	nextID   int
	selected int // 0 means nothing is selected

	slot Slot
}

// NewStore returns an empty store with no slot attached.
func NewStore() *Store {
	return &Store{nextID: 1}
}

// AddTestCase appends an empty test case and returns its ID.
func (s *Store) AddTestCase() int {
	return s.add(model.Pair{})
}

// AddBatch appends one test case per pair, in order, and returns how many
// were added.
func (s *Store) AddBatch(pairs []model.Pair) int {
	for _, p := range pairs {
		s.add(p)
	}
	return len(pairs)
}

// AddBatchText parses text and adds the pairs it contains.
// The store is unchanged when an error is returned.
func (s *Store) AddBatchText(text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, ErrEmptyBatch
	}
	pairs := batch.Parse(text)
	if len(pairs) == 0 {
		return 0, ErrNoTestCases
	}
	return s.AddBatch(pairs), nil
}

func (s *Store) add(p model.Pair) int {
	id := s.nextID
	s.cases = append(s.cases, model.TestCase{ID: id, Input: p.Input, Output: p.Output})
	s.nextID++
	return id
}

// UpdateField replaces one body of a test case. Unknown IDs are ignored.
func (s *Store) UpdateField(id int, field model.Field, text string) {
	if tc := s.find(id); tc != nil {
		tc.SetText(field, text)
	}
}

// DeleteTestCase removes a test case and renumbers. It reports whether the
// ID existed.
func (s *Store) DeleteTestCase(id int) bool {
	idx := s.index(id)
	if idx < 0 {
		return false
	}
	s.cases = append(s.cases[:idx], s.cases[idx+1:]...)
	if s.selected == id {
		s.selected = 0
	}
	s.Renumber()
	return true
}

// Renumber sorts test cases by ID and recomputes the next ID as max+1,
// or 1 when the store is empty. IDs themselves are never rewritten.
func (s *Store) Renumber() {
	sort.SliceStable(s.cases, func(i, j int) bool {
		return s.cases[i].ID < s.cases[j].ID
	})
	s.nextID = model.MaxID(s.cases) + 1
}

// ClearAll removes every test case and extra file and resets the counter.
func (s *Store) ClearAll() {
	s.cases = nil
	s.files = nil
	s.nextID = 1
	s.selected = 0
}

// AddExtraFile appends an extra file. It returns a *DuplicateNameError when
// the name is blank after trimming or already used.
func (s *Store) AddExtraFile(name, content string) error {
	if strings.TrimSpace(name) == "" || s.fileIndex(name) >= 0 {
		return &DuplicateNameError{Name: name}
	}
	s.files = append(s.files, model.ExtraFile{Name: name, Content: content})
	return nil
}

// DeleteExtraFile removes an extra file by name and reports whether it existed.
func (s *Store) DeleteExtraFile(name string) bool {
	idx := s.fileIndex(name)
	if idx < 0 {
		return false
	}
	s.files = append(s.files[:idx], s.files[idx+1:]...)
	return true
}

// Select marks a test case as the current one. Unknown IDs leave the
// selection unchanged.
func (s *Store) Select(id int) bool {
	if s.find(id) == nil {
		return false
	}
	s.selected = id
	return true
}

// Selected returns the currently selected test case.
func (s *Store) Selected() (model.TestCase, bool) {
	if s.selected == 0 {
		return model.TestCase{}, false
	}
	return s.Get(s.selected)
}

// ClearSelection drops the current selection.
func (s *Store) ClearSelection() {
	s.selected = 0
}

// Get returns a copy of the test case with the given ID.
func (s *Store) Get(id int) (model.TestCase, bool) {
	if tc := s.find(id); tc != nil {
		return *tc, true
	}
	return model.TestCase{}, false
}

// TestCases returns a copy of the test cases in ascending ID order.
func (s *Store) TestCases() []model.TestCase {
	out := make([]model.TestCase, len(s.cases))
	copy(out, s.cases)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

// ExtraFiles returns a copy of the extra files in insertion order.
func (s *Store) ExtraFiles() []model.ExtraFile {
	out := make([]model.ExtraFile, len(s.files))
	copy(out, s.files)
	return out
}

// NextID returns the ID the next added test case will get.
func (s *Store) NextID() int {
	return s.nextID
}

// Len returns the number of test cases.
func (s *Store) Len() int {
	return len(s.cases)
}

// Snapshot is a point-in-time copy of the store used for export.
type Snapshot struct {
	TestCases  []model.TestCase
	ExtraFiles []model.ExtraFile
}

// Snapshot copies the current collections.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		TestCases:  s.TestCases(),
		ExtraFiles: s.ExtraFiles(),
	}
}

// SeedSamples adds two sample test cases when the store is empty and
// reports whether it did.
func (s *Store) SeedSamples() bool {
	if len(s.cases) > 0 {
		return false
	}
	s.AddBatch([]model.Pair{
		{Input: "5\n1 2 3 4 5\n", Output: "15\n"},
		{Input: "3\n10 20 30\n", Output: "60\n"},
	})
	return true
}

func (s *Store) find(id int) *model.TestCase {
	if idx := s.index(id); idx >= 0 {
		return &s.cases[idx]
	}
	return nil
}

func (s *Store) index(id int) int {
	for i := range s.cases {
		if s.cases[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) fileIndex(name string) int {
	for i := range s.files {
		if s.files[i].Name == name {
			return i
		}
	}
	return -1
}
