package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jacksmith/casepack/internal/model"
)

// Contents is what Read recovers from an archive.
type Contents struct {
	// TestCases holds one entry per id found, ascending, with the ids used in
	// the archive. A missing .in or .out entry leaves that body empty.
	TestCases []model.TestCase
	// ExtraFiles holds every other file entry in archive order.
	ExtraFiles []model.ExtraFile
}

// Pairs returns the test case bodies in id order without their ids.
func (c *Contents) Pairs() []model.Pair {
	pairs := make([]model.Pair, 0, len(c.TestCases))
	for _, tc := range c.TestCases {
		pairs = append(pairs, model.Pair{Input: tc.Input, Output: tc.Output})
	}
	return pairs
}

// ReadFile opens a zip archive on disk and reads it with Read.
func ReadFile(path string) (*Contents, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer zr.Close()
	return readEntries(&zr.Reader)
}

// Read parses a zip archive laid out the way Write lays it out. Directory
// entries are skipped; when a name repeats, the first entry wins.
func Read(r io.ReaderAt, size int64) (*Contents, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive: %w", err)
	}
	return readEntries(zr)
}

func readEntries(zr *zip.Reader) (*Contents, error) {
	byID := make(map[int]*model.TestCase)
	seen := make(map[string]bool)
	var c Contents

	for _, f := range zr.File {
		if f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/") || seen[f.Name] {
			continue
		}
		seen[f.Name] = true

		body, err := readEntry(f)
		if err != nil {
			return nil, err
		}

		id, field, ok := model.ParseEntryName(f.Name)
		if !ok {
			c.ExtraFiles = append(c.ExtraFiles, model.ExtraFile{Name: f.Name, Content: body})
			continue
		}
		tc := byID[id]
		if tc == nil {
			tc = &model.TestCase{ID: id}
			byID[id] = tc
		}
		tc.SetText(field, body)
	}

	for _, tc := range byID {
		c.TestCases = append(c.TestCases, *tc)
	}
	sort.Slice(c.TestCases, func(i, j int) bool {
		return c.TestCases[i].ID < c.TestCases[j].ID
	})
	return &c, nil
}

func readEntry(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", f.Name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", f.Name, err)
	}
	return string(data), nil
}
