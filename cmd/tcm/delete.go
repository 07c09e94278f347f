package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jacksmith/casepack/internal/cli"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a test case",
	Long: `Delete a test case after confirmation.

Remaining test cases keep their ids; the next id becomes one more than the
largest id left, or 1 when none are left.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeTestCaseIDs,
	RunE:              runDelete,
}

var deleteYes bool

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "do not ask for confirmation")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	return withSession(func(ctx context.Context, sess *session) error {
		tc, err := lookupTestCase(sess.store, args[0])
		if err != nil {
			return err
		}

		if !deleteYes {
			ok, err := cli.Confirm(os.Stdin, os.Stdout, fmt.Sprintf("Delete test case #%d?", tc.ID))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Aborted.")
				return nil
			}
		}

		sess.store.DeleteTestCase(tc.ID)
		if err := sess.save(ctx); err != nil {
			return err
		}
		fmt.Printf("Deleted test case #%d\n", tc.ID)
		return nil
	})
}
