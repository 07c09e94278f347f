// Package model defines the core data structures for casepack.
package model

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Field names one of the two text bodies of a test case.
type Field string

const (
	FieldInput  Field = "input"
	FieldOutput Field = "output"
)

// ParseField parses a field name, case-insensitively.
func ParseField(s string) (Field, error) {
	switch Field(lower(s)) {
	case FieldInput:
		return FieldInput, nil
	case FieldOutput:
		return FieldOutput, nil
	default:
		return "", fmt.Errorf("invalid field %q: must be input or output", s)
	}
}

// TestCase is one input/output pair identified by a positive integer.
type TestCase struct {
	ID     int    `yaml:"id"`
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
}

// Text returns the body named by f.
func (tc *TestCase) Text(f Field) string {
	if f == FieldOutput {
		return tc.Output
	}
	return tc.Input
}

// SetText replaces the body named by f.
func (tc *TestCase) SetText(f Field, text string) {
	switch f {
	case FieldInput:
		tc.Input = text
	case FieldOutput:
		tc.Output = text
	}
}

// ErrInvalidText is returned for a body that is not valid UTF-8.
var ErrInvalidText = errors.New("text is not valid UTF-8")

// CheckText returns ErrInvalidText unless text can be stored as a body.
func CheckText(text string) error {
	if !utf8.ValidString(text) {
		return ErrInvalidText
	}
	return nil
}

// ExtraFile is an auxiliary file exported next to the test cases.
type ExtraFile struct {
	Name    string
	Content string
}

// Pair is an unnumbered input/output pair produced by the batch parser.
type Pair struct {
	Input  string
	Output string
}

// State is the persisted form of a store. Extra files are not part of it.
type State struct {
	TestCases []TestCase `yaml:"testCases"`
	NextID    int        `yaml:"nextId"`
}

// NewState returns an empty state with the counter at 1.
func NewState() *State {
	return &State{NextID: 1}
}
