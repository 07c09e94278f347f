// Package cli holds terminal helpers shared by tcm commands and the
// interactive shell.
package cli

import (
	"fmt"
	"strings"
)

// MatchCommand resolves a shell word to a command. An exact match wins,
// otherwise the word must be a prefix of exactly one command.
func MatchCommand(word string, commands []string) (string, error) {
	word = strings.ToLower(word)

	for _, cmd := range commands {
		if strings.ToLower(cmd) == word {
			return cmd, nil
		}
	}

	var matches []string
	for _, cmd := range commands {
		if strings.HasPrefix(strings.ToLower(cmd), word) {
			matches = append(matches, cmd)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("unknown command %q", word)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ambiguous command %q matches: %s", word, strings.Join(matches, ", "))
	}
}

// SplitLine breaks a shell line into words. Single and double quotes group
// words; a backslash escapes the next rune outside single quotes, and
// "\n" inside double quotes becomes a newline.
func SplitLine(line string) ([]string, error) {
	var (
		words   []string
		cur     strings.Builder
		inWord  bool
		quote   rune
		escaped bool
	)
	for _, r := range line {
		switch {
		case escaped:
			if quote == '"' && r == 'n' {
				r = '\n'
			}
			cur.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
			inWord = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case r == ' ' || r == '\t':
			if inWord {
				words = append(words, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote", quote)
	}
	if escaped {
		return nil, fmt.Errorf("trailing backslash")
	}
	if inWord {
		words = append(words, cur.String())
	}
	return words, nil
}
