package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{Kind: "test case", Name: "#9"}
	assert.Equal(t, "test case #9 not found", err.Error())

	err = &NotFoundError{Kind: "extra file", Name: "checker.py"}
	assert.Equal(t, "extra file checker.py not found", err.Error())
}

func TestValidationError(t *testing.T) {
	// With field
	err := &ValidationError{Field: "id", Message: "must be a positive integer"}
	assert.Equal(t, "invalid id: must be a positive integer", err.Error())

	// Without field
	err = &ValidationError{Message: "nothing to add"}
	assert.Equal(t, "nothing to add", err.Error())
}

func TestHintError(t *testing.T) {
	base := errors.New("no test cases to export")

	err := WithHint(base, "Add some with 'tcm add' or 'tcm batch'.")
	assert.Equal(t, "no test cases to export\nAdd some with 'tcm add' or 'tcm batch'.", err.Error())
	assert.ErrorIs(t, err, base)

	err = WithHint(base, "")
	assert.Equal(t, "no test cases to export", err.Error())

	assert.NoError(t, WithHint(nil, "ignored"))
}

func TestHintErrorUnwrapsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("export: %w", WithHint(ErrAborted, "try again"))
	assert.ErrorIs(t, err, ErrAborted)

	var hint *HintError
	assert.ErrorAs(t, err, &hint)
	assert.Equal(t, "try again", hint.Hint)
}

func TestFormatError(t *testing.T) {
	assert.Equal(t, "", FormatError(nil))
	assert.Equal(t, "error: something went wrong", FormatError(errors.New("something went wrong")))

	err := &NotFoundError{Kind: "test case", Name: "#3"}
	assert.Equal(t, "error: test case #3 not found", FormatError(err))
}
