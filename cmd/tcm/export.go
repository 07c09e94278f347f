package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jacksmith/casepack/internal/archive"
	"github.com/jacksmith/casepack/internal/cli"
	"github.com/jacksmith/casepack/internal/logger"
	"github.com/jacksmith/casepack/internal/model"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [name]",
	Short: "Write test cases to a zip archive",
	Long: `Write every test case to a zip archive as <id>.in and <id>.out, in id
order, followed by any extra files.

The archive name defaults to archive_name from .tcmconfig.yaml ("testcases")
and gets a .zip extension when it has none. Extra files are attached for this
export only with --extra name=path, or --extra path to keep the file's own
name.

Examples:
  tcm export
  tcm export problem-a
  tcm export --extra checker.py --extra README.txt=notes.md`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

var exportExtras []string

func init() {
	exportCmd.Flags().StringArrayVar(&exportExtras, "extra", nil, "attach an extra file as name=path or path (can be repeated)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	extras, err := readExtraFiles(exportExtras)
	if err != nil {
		return err
	}

	return withSession(func(ctx context.Context, sess *session) error {
		for _, f := range extras {
			if err := sess.store.AddExtraFile(f.Name, f.Content); err != nil {
				return &cli.ValidationError{Field: "--extra", Message: err.Error()}
			}
		}

		name := sess.cfg.ArchiveName
		if len(args) > 0 {
			name = args[0]
		}
		res, err := archive.Export(ctx, archive.FileName(name), sess.store.Snapshot())
		return reportExport(ctx, os.Stdout, sess.log, res, err)
	})
}

// readExtraFiles loads each --extra value. "name=path" stores the file
// under name; a bare path uses the file's base name.
func readExtraFiles(specs []string) ([]model.ExtraFile, error) {
	var files []model.ExtraFile
	for _, spec := range specs {
		name, path, found := strings.Cut(spec, "=")
		if !found {
			path = spec
			name = filepath.Base(spec)
		}
		if strings.TrimSpace(path) == "" {
			return nil, &cli.ValidationError{Field: "--extra", Message: fmt.Sprintf("%q has no path", spec)}
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read extra file %s: %w", path, err)
		}
		files = append(files, model.ExtraFile{Name: name, Content: string(data)})
	}
	return files, nil
}

// reportExport prints the outcome of an export. Failures other than an
// empty store are logged and reported generically.
func reportExport(ctx context.Context, w io.Writer, log logger.Logger, res *archive.Result, err error) error {
	if err != nil {
		if errors.Is(err, archive.ErrNothingToExport) {
			return cli.WithHint(err, "Add test cases with 'tcm add' or 'tcm batch' first.")
		}
		log.Error(ctx, "export failed", map[string]interface{}{"error": err.Error()})
		return errors.New("export failed")
	}

	msg := fmt.Sprintf("Exported %s", plural(res.TestCases, "test case"))
	if res.ExtraFiles > 0 {
		msg += fmt.Sprintf(" and %s", plural(res.ExtraFiles, "extra file"))
	}
	fmt.Fprintf(w, "%s to %s (%d bytes)\n", msg, res.Path, res.Bytes)
	return nil
}
