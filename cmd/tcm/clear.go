package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jacksmith/casepack/internal/cli"
	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every test case",
	Long:  `Delete every test case after confirmation and reset the next id to 1.`,
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

var clearYes bool

var errNothingToClear = &cli.ValidationError{Message: "nothing to delete: there are no test cases"}

func init() {
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "do not ask for confirmation")
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, args []string) error {
	return withSession(func(ctx context.Context, sess *session) error {
		n := sess.store.Len()
		if n == 0 {
			return errNothingToClear
		}

		if !clearYes {
			ok, err := cli.Confirm(os.Stdin, os.Stdout, fmt.Sprintf("Delete all %s?", plural(n, "test case")))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Aborted.")
				return nil
			}
		}

		sess.store.ClearAll()
		if err := sess.save(ctx); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", plural(n, "test case"))
		return nil
	})
}
