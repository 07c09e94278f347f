package model

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// DecodeState parses a persisted state blob.
// Missing fields default to an empty list and a counter of 1. A counter that
// does not exceed every stored ID is recomputed as max(ids)+1.
func DecodeState(data []byte) (*State, error) {
	st := NewState()
	if err := yaml.Unmarshal(data, st); err != nil {
		return nil, fmt.Errorf("failed to parse state: %w", err)
	}

	seen := make(map[int]bool, len(st.TestCases))
	for _, tc := range st.TestCases {
		if tc.ID <= 0 {
			return nil, fmt.Errorf("failed to parse state: %w: test case id %d", ErrInvalidID, tc.ID)
		}
		if seen[tc.ID] {
			return nil, fmt.Errorf("failed to parse state: %w: duplicate test case id %d", ErrInvalidID, tc.ID)
		}
		seen[tc.ID] = true
	}

	sortTestCases(st.TestCases)
	if max := MaxID(st.TestCases); st.NextID <= max {
		st.NextID = max + 1
	}
	return st, nil
}

// EncodeState renders a state blob.
// Test cases are sorted by ID. Clean multi-line bodies use block scalar
// style. Bodies must be valid UTF-8.
func EncodeState(st *State) ([]byte, error) {
	sortTestCases(st.TestCases)
	for _, tc := range st.TestCases {
		if err := CheckText(tc.Input); err != nil {
			return nil, fmt.Errorf("failed to encode state: input of #%d: %w", tc.ID, err)
		}
		if err := CheckText(tc.Output); err != nil {
			return nil, fmt.Errorf("failed to encode state: output of #%d: %w", tc.ID, err)
		}
	}

	node := buildStateNode(st)
	data, err := yaml.Marshal(node)
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	return data, nil
}

// MaxID returns the largest ID in cases, or 0 when empty.
func MaxID(cases []TestCase) int {
	max := 0
	for _, tc := range cases {
		if tc.ID > max {
			max = tc.ID
		}
	}
	return max
}

// sortTestCases sorts test cases by ID, keeping the relative order of equal IDs.
func sortTestCases(cases []TestCase) {
	sort.SliceStable(cases, func(i, j int) bool {
		return cases[i].ID < cases[j].ID
	})
}

// buildStateNode creates a yaml.Node tree for a State.
func buildStateNode(st *State) *yaml.Node {
	doc := &yaml.Node{Kind: yaml.MappingNode}

	casesNode := &yaml.Node{Kind: yaml.SequenceNode}
	for i := range st.TestCases {
		casesNode.Content = append(casesNode.Content, buildTestCaseNode(&st.TestCases[i]))
	}
	doc.Content = append(doc.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: "testCases"},
		casesNode,
	)
	addIntField(doc, "nextId", st.NextID)

	return doc
}

// buildTestCaseNode creates a yaml.Node for a TestCase.
func buildTestCaseNode(tc *TestCase) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	addIntField(node, "id", tc.ID)
	addTextField(node, "input", tc.Input)
	addTextField(node, "output", tc.Output)
	return node
}

// Helper functions for building yaml.Node

func addIntField(node *yaml.Node, key string, value int) {
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: fmt.Sprintf("%d", value), Tag: "!!int"},
	)
}

// addTextField writes a string that must survive a round trip byte for byte.
// The !!str tag makes the encoder quote values like "null" or "15". Only
// clean text is written plain or as a literal block; anything else is
// double quoted, where every byte is escaped exactly.
func addTextField(node *yaml.Node, key, value string) {
	style := yaml.DoubleQuotedStyle
	switch {
	case !cleanText(value):
	case strings.Contains(value, "\n"):
		style = yaml.LiteralStyle
	default:
		style = 0
	}
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: value, Tag: "!!str", Style: style},
	)
}

// cleanText reports whether every line of value is non-empty, has no
// leading or trailing whitespace and holds printable runes only. One
// trailing newline is allowed. The empty string is clean.
func cleanText(value string) bool {
	if value == "" {
		return true
	}
	for _, line := range strings.Split(strings.TrimSuffix(value, "\n"), "\n") {
		if line == "" || strings.TrimSpace(line) != line {
			return false
		}
		for _, r := range line {
			if r == utf8.RuneError || !unicode.IsPrint(r) {
				return false
			}
		}
	}
	return true
}
