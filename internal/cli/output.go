package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// colorEnabled tracks whether color output is enabled.
var colorEnabled = IsTerminal(os.Stdout)

// SetColorEnabled allows overriding the color output setting.
func SetColorEnabled(enabled bool) {
	colorEnabled = enabled
}

// ColorEnabled returns whether color output is currently enabled.
func ColorEnabled() bool {
	return colorEnabled
}

// ApplyColorMode sets color output from a config value: "always", "never",
// or "auto" (color only when w is a terminal).
func ApplyColorMode(mode string, w io.Writer) error {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "always":
		colorEnabled = true
	case "never":
		colorEnabled = false
	case "", "auto":
		colorEnabled = IsTerminal(w)
	default:
		return &ValidationError{Field: "color", Message: fmt.Sprintf("unknown mode %q", mode)}
	}
	return nil
}

// IsTerminal returns true if w is a terminal.
func IsTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

func paint(code, s string) string {
	if !colorEnabled {
		return s
	}
	return code + s + colorReset
}

// Green returns s wrapped in green ANSI codes if colors are enabled.
func Green(s string) string { return paint(colorGreen, s) }

// Red returns s wrapped in red ANSI codes if colors are enabled.
func Red(s string) string { return paint(colorRed, s) }

// Yellow returns s wrapped in yellow ANSI codes if colors are enabled.
func Yellow(s string) string { return paint(colorYellow, s) }

// Gray returns s wrapped in gray ANSI codes if colors are enabled.
func Gray(s string) string { return paint(colorGray, s) }

// DefaultPreviewWidth is the default visible width of body previews in lists.
const DefaultPreviewWidth = 32

// Preview flattens a multi-line body onto one line and truncates it.
// Line breaks show as "⏎".
func Preview(body string, maxWidth int) string {
	flat := strings.NewReplacer("\r\n", "⏎", "\n", "⏎", "\t", " ").Replace(body)
	return Truncate(flat, maxWidth)
}

// Table formats columnar output with automatic column width calculation.
type Table struct {
	rows      [][]string
	colWidths []int
	maxWidths map[int]int // optional per-column max visible width
}

// NewTable creates a new empty table.
func NewTable() *Table {
	return &Table{}
}

// SetMaxWidth caps the visible width of a column. Longer plain-text cells
// are truncated with "...".
func (t *Table) SetMaxWidth(col, maxWidth int) {
	if t.maxWidths == nil {
		t.maxWidths = make(map[int]int)
	}
	t.maxWidths[col] = maxWidth
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cols ...string) {
	for i, col := range cols {
		if maxW, ok := t.maxWidths[i]; ok {
			col = Truncate(col, maxW)
			cols[i] = col
		}
		if i == len(t.colWidths) {
			t.colWidths = append(t.colWidths, 0)
		}
		if w := visibleWidth(col); w > t.colWidths[i] {
			t.colWidths[i] = w
		}
	}
	t.rows = append(t.rows, cols)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render writes the table to w with columns separated by two spaces.
// The last column of each row is not padded.
func (t *Table) Render(w io.Writer) {
	for _, row := range t.rows {
		var b strings.Builder
		for i, col := range row {
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(col)
			if i < len(row)-1 {
				b.WriteString(strings.Repeat(" ", t.colWidths[i]-visibleWidth(col)))
			}
		}
		fmt.Fprintln(w, b.String())
	}
}

// Truncate cuts s to at most maxWidth visible runes, ending with "..." when
// anything was cut. It is meant for plain text; ANSI codes count as visible.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= maxWidth {
		return s
	}
	const ellipsis = "..."
	if maxWidth <= len(ellipsis) {
		return string(r[:maxWidth])
	}
	return string(r[:maxWidth-len(ellipsis)]) + ellipsis
}

// visibleWidth returns the number of runes in s, excluding ANSI escape codes.
func visibleWidth(s string) int {
	width := 0
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\033':
			inEscape = true
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		default:
			width++
		}
	}
	return width
}
