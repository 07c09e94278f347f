package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jacksmith/casepack/internal/cli"
	"github.com/jacksmith/casepack/internal/model"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a test case",
	Long: `Show the input and output of a test case.

The id may be written as 3 or #3. With --field the raw body is printed
with no decoration, which is handy for piping into a program:

  tcm show 2 --field input | ./solution`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeTestCaseIDs,
	RunE:              runShow,
}

var showField string

func init() {
	showCmd.Flags().StringVar(&showField, "field", "", "print only this body (input or output)")
	showCmd.RegisterFlagCompletionFunc("field", completeFields)
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	var field model.Field
	if showField != "" {
		f, err := model.ParseField(showField)
		if err != nil {
			return &cli.ValidationError{Message: err.Error()}
		}
		field = f
	}

	return withSession(func(ctx context.Context, sess *session) error {
		tc, err := lookupTestCase(sess.store, args[0])
		if err != nil {
			return err
		}
		if field != "" {
			fmt.Print(tc.Text(field))
			return nil
		}
		renderTestCase(os.Stdout, tc)
		return nil
	})
}
