package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jacksmith/casepack/internal/archive"
	"github.com/jacksmith/casepack/internal/cli"
	"github.com/jacksmith/casepack/internal/ops"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <archive>",
	Short: "Add the test cases of a zip archive",
	Long: `Add the test cases found in a zip archive written by 'tcm export' or any
archive using the same <id>.in / <id>.out layout.

Test cases are appended in the archive's id order and get new ids. Other
files in the archive are listed but not kept; attach them with
'tcm export --extra' or the shell's attach command.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	contents, err := archive.ReadFile(args[0])
	if err != nil {
		return err
	}

	return withSession(func(ctx context.Context, sess *session) error {
		if err := importTestCases(sess.store, os.Stdout, args[0], contents); err != nil {
			return err
		}
		if len(contents.ExtraFiles) > 0 {
			fmt.Println(cli.Gray(fmt.Sprintf("Skipped %s: %s", plural(len(contents.ExtraFiles), "extra file"), extraNames(contents))))
		}
		return sess.save(ctx)
	})
}

// importTestCases appends the archive's test cases to store.
func importTestCases(store *ops.Store, w io.Writer, path string, contents *archive.Contents) error {
	if len(contents.TestCases) == 0 {
		return &cli.ValidationError{Message: fmt.Sprintf("no test cases found in %s", path)}
	}
	pairs := contents.Pairs()
	for _, p := range pairs {
		if err := checkBodies(path, p.Input, p.Output); err != nil {
			return err
		}
	}
	first := store.NextID()
	n := store.AddBatch(pairs)
	fmt.Fprintf(w, "Imported %s (%s) from %s\n", plural(n, "test case"), idRange(first, n), path)
	return nil
}

func extraNames(contents *archive.Contents) string {
	names := make([]string, 0, len(contents.ExtraFiles))
	for _, f := range contents.ExtraFiles {
		names = append(names, f.Name)
	}
	return strings.Join(names, ", ")
}
