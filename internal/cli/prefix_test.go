package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchCommand(t *testing.T) {
	commands := []string{"list", "add", "delete", "done", "select", "set", "show"}

	tests := []struct {
		name      string
		word      string
		want      string
		wantError bool
		errorMsg  string
	}{
		{name: "exact match", word: "list", want: "list"},
		{name: "exact match case insensitive", word: "LIST", want: "list"},
		{name: "exact match beats prefix", word: "set", want: "set"},
		{name: "unique prefix l", word: "l", want: "list"},
		{name: "unique prefix a", word: "a", want: "add"},
		{name: "unique prefix del", word: "del", want: "delete"},
		{name: "unique prefix sh", word: "sh", want: "show"},
		{name: "unique prefix sel", word: "sel", want: "select"},
		{name: "ambiguous d", word: "d", wantError: true, errorMsg: "ambiguous command"},
		{name: "ambiguous se", word: "se", wantError: true, errorMsg: "ambiguous command"},
		{name: "no match", word: "xyz", wantError: true, errorMsg: "unknown command"},
		{name: "empty word is ambiguous", word: "", wantError: true, errorMsg: "ambiguous command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MatchCommand(tt.word, commands)
			if tt.wantError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchCommandEmptyCommands(t *testing.T) {
	_, err := MatchCommand("list", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestSplitLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"empty", "", nil},
		{"blank", "   \t ", nil},
		{"plain words", "set 3 input", []string{"set", "3", "input"}},
		{"collapses spaces", "  list   ", []string{"list"}},
		{"double quotes", `add "1 2 3" 6`, []string{"add", "1 2 3", "6"}},
		{"single quotes", `add '1 2' '3'`, []string{"add", "1 2", "3"}},
		{"newline escape in double quotes", `add "2\n1 2" "3"`, []string{"add", "2\n1 2", "3"}},
		{"single quotes keep backslash", `add 'a\nb'`, []string{"add", `a\nb`}},
		{"escaped space", `file my\ file.txt`, []string{"file", "my file.txt"}},
		{"empty quoted word", `add "" x`, []string{"add", "", "x"}},
		{"adjacent quoted parts", `a"b c"d`, []string{"ab cd"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitLine(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitLineErrors(t *testing.T) {
	_, err := SplitLine(`add "open`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unterminated")

	_, err = SplitLine(`add x\`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trailing backslash")
}
