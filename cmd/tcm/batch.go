package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jacksmith/casepack/internal/cli"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch [file|-]",
	Short: "Add test cases from marked-up text",
	Long: `Recover input/output pairs from text and add one test case per pair.

Each pair starts with an inN: line and continues with an outN: line; the
lines after each marker are the body. Markers are case-insensitive and
must sit alone on their line. Text before the first marker, an outN: line
with no open input, and a trailing input with no output are ignored. A
second inN: line before the outN: line starts that input over.

  in1:
  3
  10 20 30
  out1:
  60

Reads the named file, standard input for "-", or $EDITOR with -i.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBatch,
}

var batchInteractive bool

func init() {
	batchCmd.Flags().BoolVarP(&batchInteractive, "interactive", "i", false, "paste the text in $EDITOR")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	text, err := readBatchText(args)
	if err != nil {
		return err
	}
	if err := checkBodies("the batch text", text); err != nil {
		return err
	}

	return withSession(func(ctx context.Context, sess *session) error {
		first := sess.store.NextID()
		n, err := sess.store.AddBatchText(text)
		if err != nil {
			return batchError(err)
		}
		if err := sess.save(ctx); err != nil {
			return err
		}
		fmt.Printf("Added %s (%s)\n", plural(n, "test case"), idRange(first, n))
		return nil
	})
}

func readBatchText(args []string) (string, error) {
	switch {
	case batchInteractive:
		if len(args) > 0 {
			return "", &cli.ValidationError{Message: "-i cannot be combined with a file argument"}
		}
		return cli.EditText("", "batch")
	case len(args) == 0:
		return "", &cli.ValidationError{Message: "give a file, - for standard input, or -i"}
	case args[0] == "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read standard input: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		return string(data), nil
	}
}
