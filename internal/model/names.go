package model

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	// InputExt is the archive extension for test case inputs.
	InputExt = ".in"
	// OutputExt is the archive extension for test case outputs.
	OutputExt = ".out"
)

var (
	// ErrInvalidID is returned when an ID cannot be parsed.
	ErrInvalidID = errors.New("invalid ID format")

	// entryNameRegex matches archive entry names like 3.in or 12.out
	entryNameRegex = regexp.MustCompile(`^(\d+)\.(in|out)$`)
)

// ParseID parses a test case ID. Accepts "7", "#7" and " 7 ".
func ParseID(s string) (int, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(s), "#")
	n, err := strconv.Atoi(trimmed)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q is not a positive integer", ErrInvalidID, s)
	}
	return n, nil
}

// InputName returns the archive entry name for a test case input.
func InputName(id int) string {
	return strconv.Itoa(id) + InputExt
}

// OutputName returns the archive entry name for a test case output.
func OutputName(id int) string {
	return strconv.Itoa(id) + OutputExt
}

// EntryName returns the archive entry name for the given field.
func EntryName(id int, f Field) string {
	if f == FieldOutput {
		return OutputName(id)
	}
	return InputName(id)
}

// ParseEntryName parses an archive entry name back into an ID and field.
// Returns ok=false for names that are not test case entries.
func ParseEntryName(name string) (id int, f Field, ok bool) {
	m := entryNameRegex.FindStringSubmatch(name)
	if m == nil {
		return 0, "", false
	}
	id, err := strconv.Atoi(m[1])
	if err != nil || id <= 0 {
		return 0, "", false
	}
	if m[2] == "out" {
		return id, FieldOutput, true
	}
	return id, FieldInput, true
}

// LineCount returns the number of lines in s. An empty string has one line,
// matching what an editor shows for an empty buffer.
func LineCount(s string) int {
	return strings.Count(s, "\n") + 1
}

// CharCount returns the number of characters (runes) in s.
func CharCount(s string) int {
	return len([]rune(s))
}

// Summary formats the line and character counts of s.
func Summary(s string) string {
	lines := LineCount(s)
	chars := CharCount(s)
	return fmt.Sprintf("%d %s, %d %s", lines, plural(lines, "line"), chars, plural(chars, "char"))
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
