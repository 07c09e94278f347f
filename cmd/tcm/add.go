package main

import (
	"context"
	"fmt"

	"github.com/jacksmith/casepack/internal/cli"
	"github.com/jacksmith/casepack/internal/model"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [input] [output]",
	Short: "Add a test case",
	Long: `Add a test case with the next free id.

With no arguments the test case starts empty. Bodies given as arguments are
stored exactly as written; use -i to type them in $EDITOR instead.

Examples:
  tcm add
  tcm add $'3\n10 20 30\n' $'60\n'
  tcm add -i`,
	Args: cobra.MaximumNArgs(2),
	RunE: runAdd,
}

var addInteractive bool

func init() {
	addCmd.Flags().BoolVarP(&addInteractive, "interactive", "i", false, "write input and output in $EDITOR")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	var pair model.Pair
	if len(args) > 0 {
		pair.Input = args[0]
	}
	if len(args) > 1 {
		pair.Output = args[1]
	}

	if addInteractive {
		if len(args) > 0 {
			return &cli.ValidationError{Message: "-i cannot be combined with body arguments"}
		}
		var err error
		if pair.Input, err = cli.EditText("", "new-in"); err != nil {
			return err
		}
		if pair.Output, err = cli.EditText("", "new-out"); err != nil {
			return err
		}
	}

	if err := checkBodies("the test case", pair.Input, pair.Output); err != nil {
		return err
	}

	return withSession(func(ctx context.Context, sess *session) error {
		id := sess.store.NextID()
		sess.store.AddBatch([]model.Pair{pair})
		if err := sess.save(ctx); err != nil {
			return err
		}
		fmt.Printf("Added test case #%d\n", id)
		return nil
	})
}
