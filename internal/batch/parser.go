// Package batch recovers test cases from loosely formatted pasted text.
//
// The format is a sequence of marker lines followed by payload lines:
//
//	in1:
//	3
//	10 20 30
//	out1:
//	60
//
// Markers are case-insensitive and must fill the whole (trimmed) line.
// Payload lines are kept verbatim.
package batch

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"

	"github.com/jacksmith/casepack/internal/model"
)

var (
	inMarkerRegex  = regexp.MustCompile(`(?i)^in(\d+):$`)
	outMarkerRegex = regexp.MustCompile(`(?i)^out(\d+):$`)
)

// mode is what the scanner does with a payload line.
type mode int

const (
	modeIdle mode = iota
	modeInput
	modeOutput
)

// scanner holds the state threaded through a single pass over the lines.
// Tags are recorded but only their presence drives transitions.
type scanner struct {
	inTag  *int
	outTag *int
	in     []string
	out    []string
	mode   mode
	pairs  []model.Pair
}

// Parse returns the input/output pairs found in text, in encounter order.
// It never fails: text without a complete in/out marker pair yields nil.
//
// An input marker that arrives while an input is still open discards the
// lines collected so far, so "in1:\nA\nin2:\nB\nout2:\nC" yields the
// single pair {B, C}. A is not merged into the next input.
func Parse(text string) []model.Pair {
	s := &scanner{}
	for _, line := range splitLines(text) {
		s.feed(line)
	}
	s.finish()
	return s.pairs
}

func (s *scanner) feed(line string) {
	trimmed := strings.TrimSpace(line)

	if tag, ok := matchTag(inMarkerRegex, trimmed); ok {
		if s.pending() {
			s.flush()
		}
		// An input marker that never reached an output marker loses its lines.
		s.in, s.out = nil, nil
		s.inTag = &tag
		s.outTag = nil
		s.mode = modeInput
		return
	}

	if tag, ok := matchTag(outMarkerRegex, trimmed); ok {
		if s.inTag == nil {
			return
		}
		s.outTag = &tag
		s.mode = modeOutput
		return
	}

	switch s.mode {
	case modeInput:
		s.in = append(s.in, line)
	case modeOutput:
		s.out = append(s.out, line)
	}
}

// finish flushes the last pair if it is complete and has any payload lines.
func (s *scanner) finish() {
	if s.pending() && (len(s.in) > 0 || len(s.out) > 0) {
		s.flush()
	}
}

// pending reports whether both an input and an output marker were seen
// since the last flush.
func (s *scanner) pending() bool {
	return s.inTag != nil && s.outTag != nil
}

func (s *scanner) flush() {
	s.pairs = append(s.pairs, model.Pair{
		Input:  strings.Join(s.in, "\n"),
		Output: strings.Join(s.out, "\n"),
	})
	s.in, s.out = nil, nil
}

func matchTag(re *regexp.Regexp, line string) (int, bool) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		// Too many digits for an int; the marker still counts.
		n = -1
	}
	return n, true
}

// splitLines splits text on \n or \r\n. A final line ending does not start
// an extra empty line.
func splitLines(text string) []string {
	var lines []string
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), len(text)+1)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines
}
