package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jacksmith/casepack/internal/cli"
	"github.com/jacksmith/casepack/internal/model"
	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set <id>",
	Short: "Replace the input or output of a test case",
	Long: `Replace one or both bodies of a test case.

Bodies can come from a flag value, from a file (--input-file, --output-file,
"-" for standard input), or from $EDITOR with -i, which opens each body that
was not given another way. An empty value is allowed and clears the body.

Examples:
  tcm set 2 --output $'60\n'
  tcm set 2 --input-file big.in
  tcm set 2 -i`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeTestCaseIDs,
	RunE:              runSet,
}

// textFlag is a string flag that remembers whether it was given, so an
// explicit empty value can clear a body.
type textFlag struct {
	value string
	set   bool
}

func (f *textFlag) String() string { return f.value }
func (f *textFlag) Type() string   { return "string" }

func (f *textFlag) Set(v string) error {
	f.value = v
	f.set = true
	return nil
}

var (
	setInput       textFlag
	setOutput      textFlag
	setInputFile   string
	setOutputFile  string
	setInteractive bool
)

func init() {
	setCmd.Flags().Var(&setInput, "input", "new input text")
	setCmd.Flags().Var(&setOutput, "output", "new output text")
	setCmd.Flags().StringVar(&setInputFile, "input-file", "", "read the new input from a file (- for stdin)")
	setCmd.Flags().StringVar(&setOutputFile, "output-file", "", "read the new output from a file (- for stdin)")
	setCmd.Flags().BoolVarP(&setInteractive, "interactive", "i", false, "edit the bodies in $EDITOR")
	rootCmd.AddCommand(setCmd)
}

func runSet(cmd *cobra.Command, args []string) error {
	if setInputFile == "-" && setOutputFile == "-" {
		return &cli.ValidationError{Message: "only one body can be read from standard input"}
	}
	if setInput.set && setInputFile != "" {
		return &cli.ValidationError{Message: "--input and --input-file are mutually exclusive"}
	}
	if setOutput.set && setOutputFile != "" {
		return &cli.ValidationError{Message: "--output and --output-file are mutually exclusive"}
	}

	return withSession(func(ctx context.Context, sess *session) error {
		tc, err := lookupTestCase(sess.store, args[0])
		if err != nil {
			return err
		}

		updates := make(map[model.Field]string)
		if err := collectBody(updates, model.FieldInput, setInput, setInputFile); err != nil {
			return err
		}
		if err := collectBody(updates, model.FieldOutput, setOutput, setOutputFile); err != nil {
			return err
		}

		if setInteractive {
			for _, f := range []model.Field{model.FieldInput, model.FieldOutput} {
				if _, done := updates[f]; done {
					continue
				}
				text, err := cli.EditText(tc.Text(f), model.EntryName(tc.ID, f))
				if err != nil {
					return err
				}
				updates[f] = text
			}
		}

		if len(updates) == 0 {
			return &cli.ValidationError{Message: "nothing to set: use --input, --output, their -file forms, or -i"}
		}
		for f, text := range updates {
			if err := checkBodies("the new "+string(f), text); err != nil {
				return err
			}
		}

		for _, f := range []model.Field{model.FieldInput, model.FieldOutput} {
			if text, ok := updates[f]; ok {
				sess.store.UpdateField(tc.ID, f, text)
				fmt.Printf("Updated %s of #%d (%s)\n", f, tc.ID, model.Summary(text))
			}
		}
		return sess.save(ctx)
	})
}

func collectBody(updates map[model.Field]string, f model.Field, flag textFlag, path string) error {
	switch {
	case flag.set:
		updates[f] = flag.value
	case path == "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read standard input: %w", err)
		}
		updates[f] = string(data)
	case path != "":
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		updates[f] = string(data)
	}
	return nil
}
