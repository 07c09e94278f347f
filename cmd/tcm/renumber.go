package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var renumberCmd = &cobra.Command{
	Use:   "renumber",
	Short: "Recompute the next test case id",
	Long: `Sort test cases by id and set the next id to one more than the largest
id in use. Existing ids are not changed, so gaps left by deletions remain.`,
	Args: cobra.NoArgs,
	RunE: runRenumber,
}

func init() {
	rootCmd.AddCommand(renumberCmd)
}

func runRenumber(cmd *cobra.Command, args []string) error {
	return withSession(func(ctx context.Context, sess *session) error {
		sess.store.Renumber()
		if err := sess.save(ctx); err != nil {
			return err
		}
		fmt.Printf("Next id is #%d\n", sess.store.NextID())
		return nil
	})
}
