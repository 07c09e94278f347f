// Package archive packs a store snapshot into a zip file.
package archive

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jacksmith/casepack/internal/model"
	"github.com/jacksmith/casepack/internal/ops"
)

const (
	// DefaultBaseName is used when no archive name is given.
	DefaultBaseName = "testcases"
	// Ext is the archive extension enforced by FileName.
	Ext = ".zip"
)

// ErrNothingToExport is returned when the snapshot has no test cases.
var ErrNothingToExport = errors.New("no test cases to export")

// Result describes a written archive.
type Result struct {
	Path       string
	TestCases  int
	ExtraFiles int
	Bytes      int64
}

// FileName returns name with a .zip extension, or the default name when
// name is blank.
func FileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultBaseName
	}
	if !strings.EqualFold(filepath.Ext(name), Ext) {
		name += Ext
	}
	return name
}

// Write streams snap to w as a zip archive: <id>.in and <id>.out for each
// test case in ID order, then each extra file under its own name.
// Bodies are written byte for byte.
func Write(ctx context.Context, w io.Writer, snap ops.Snapshot) error {
	zw := zip.NewWriter(w)
	modified := time.Now()

	for _, tc := range snap.TestCases {
		if err := ctx.Err(); err != nil {
			zw.Close()
			return err
		}
		if err := writeEntry(zw, model.InputName(tc.ID), tc.Input, modified); err != nil {
			zw.Close()
			return err
		}
		if err := writeEntry(zw, model.OutputName(tc.ID), tc.Output, modified); err != nil {
			zw.Close()
			return err
		}
	}
	for _, f := range snap.ExtraFiles {
		if err := writeEntry(zw, f.Name, f.Content, modified); err != nil {
			zw.Close()
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish archive: %w", err)
	}
	return nil
}

func writeEntry(zw *zip.Writer, name, body string, modified time.Time) error {
	hdr := &zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: modified,
	}
	ew, err := zw.CreateHeader(hdr)
	if err != nil {
		return fmt.Errorf("failed to add %s: %w", name, err)
	}
	if _, err := io.WriteString(ew, body); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// Export writes snap to path. The archive is built in a temp file in the
// target directory and renamed into place; a failed export leaves no file.
func Export(ctx context.Context, path string, snap ops.Snapshot) (*Result, error) {
	if len(snap.TestCases) == 0 {
		return nil, ErrNothingToExport
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tcm-export-*.zip")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := Write(ctx, tmp, snap); err != nil {
		tmp.Close()
		return nil, err
	}
	// CreateTemp opens with 0600.
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to set archive permissions: %w", err)
	}
	info, err := tmp.Stat()
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to stat archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to close archive: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}

	return &Result{
		Path:       path,
		TestCases:  len(snap.TestCases),
		ExtraFiles: len(snap.ExtraFiles),
		Bytes:      info.Size(),
	}, nil
}

// Outcome is delivered once an asynchronous export finishes.
type Outcome struct {
	Result *Result
	Err    error
}

// ExportAsync runs Export in the background and delivers its outcome on the
// returned channel, which is closed afterwards. The snapshot is already a
// copy, so the caller may keep mutating its store.
func ExportAsync(ctx context.Context, path string, snap ops.Snapshot) <-chan Outcome {
	done := make(chan Outcome, 1)
	go func() {
		defer close(done)
		res, err := Export(ctx, path, snap)
		done <- Outcome{Result: res, Err: err}
	}()
	return done
}
