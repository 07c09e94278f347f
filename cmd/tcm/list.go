package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jacksmith/casepack/internal/cli"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List test cases",
	Long: `List test cases in ascending id order.

Each row shows the line and character counts of the input and output and a
one-line preview of both bodies.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	return withSession(func(ctx context.Context, sess *session) error {
		renderList(os.Stdout, sess.store.TestCases(), 0)
		if n := sess.store.Len(); n > 0 {
			fmt.Println(cli.Gray(fmt.Sprintf("%s, next id #%d", plural(n, "test case"), sess.store.NextID())))
		}
		return nil
	})
}
