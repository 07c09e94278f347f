package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jacksmith/casepack/internal/archive"
	"github.com/jacksmith/casepack/internal/cli"
	"github.com/jacksmith/casepack/internal/model"
	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive session",
	Long: `Start an interactive session over the workspace's test cases.

Commands can be shortened to any unique prefix. A test case can be selected
so that show, set, edit and delete act on it without an id. Extra files
attached in the shell are included in exports but are not saved when the
session ends. Every change to test cases is saved immediately.

Type help inside the shell for the command list.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, args []string) error {
	return withSession(func(ctx context.Context, sess *session) error {
		return newShell(sess, os.Stdin, os.Stdout).run(ctx)
	})
}

// bodyTerminator ends a multi-line body typed into the shell.
const bodyTerminator = "."

var shellCommands = []string{
	"add", "attach", "batch", "clear", "delete", "detach", "edit", "export",
	"files", "help", "import", "list", "quit", "renumber", "select", "set", "show", "unselect",
}

var shellAliases = map[string]string{
	"exit": "quit",
	"ls":   "list",
	"rm":   "delete",
	"?":    "help",
}

const shellHelp = `Commands (any unique prefix works):
  list                      list test cases (* marks the selection)
  add [input] [output]      add a test case
  batch                     paste inN:/outN: text, end with a line "."
  select <id> | unselect    choose the test case other commands act on
  show [id]                 show a test case
  set <input|output> [text] replace a body of the selection; without text,
                            type lines and end with a line "."
  edit <input|output>       edit a body of the selection in $EDITOR
  delete [id]               delete a test case (asks first)
  clear                     delete every test case (asks first)
  renumber                  recompute the next id
  files                     list extra files
  attach <name> [path]      add an extra file from path, or type it and end with "."
  detach <name>             remove an extra file
  export [name]             write the zip archive in the background
  import <archive>          add the test cases and extra files of a zip archive
  help | quit`

type shell struct {
	sess    *session
	in      *bufio.Scanner
	out     io.Writer
	exports []<-chan archive.Outcome
	done    bool
}

func newShell(sess *session, in io.Reader, out io.Writer) *shell {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &shell{sess: sess, in: sc, out: out}
}

func (sh *shell) run(ctx context.Context) error {
	fmt.Fprintln(sh.out, "tcm shell. Type help for commands, quit to leave.")
	for !sh.done {
		sh.reapExports(ctx, false)
		sh.prompt()

		line, ok := sh.readLine()
		if !ok {
			fmt.Fprintln(sh.out)
			break
		}
		words, err := cli.SplitLine(line)
		if err != nil {
			sh.fail(err)
			continue
		}
		if len(words) == 0 {
			continue
		}
		if err := sh.exec(ctx, words[0], words[1:]); err != nil {
			sh.fail(err)
		}
	}
	sh.reapExports(ctx, true)
	return sh.in.Err()
}

func (sh *shell) prompt() {
	if tc, ok := sh.sess.store.Selected(); ok {
		fmt.Fprintf(sh.out, "tcm #%d> ", tc.ID)
		return
	}
	fmt.Fprint(sh.out, "tcm> ")
}

func (sh *shell) readLine() (string, bool) {
	if !sh.in.Scan() {
		return "", false
	}
	return strings.TrimSuffix(sh.in.Text(), "\r"), true
}

// readBody reads lines up to a line holding only "." and returns them, each
// ending in a newline. End of input also ends the body.
func (sh *shell) readBody(what string) string {
	fmt.Fprintf(sh.out, "Enter %s, end with a line %q:\n", what, bodyTerminator)
	var b strings.Builder
	for {
		line, ok := sh.readLine()
		if !ok || line == bodyTerminator {
			return b.String()
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
}

func (sh *shell) confirm(prompt string) bool {
	fmt.Fprintf(sh.out, "%s [y/N] ", prompt)
	line, ok := sh.readLine()
	return ok && cli.IsYes(line)
}

func (sh *shell) fail(err error) {
	fmt.Fprintln(sh.out, cli.Red(cli.FormatError(err)))
}

func (sh *shell) exec(ctx context.Context, word string, args []string) error {
	name, ok := shellAliases[strings.ToLower(word)]
	if !ok {
		var err error
		if name, err = cli.MatchCommand(word, shellCommands); err != nil {
			return cli.WithHint(err, "Type help for the command list.")
		}
	}

	store := sh.sess.store
	switch name {
	case "help":
		fmt.Fprintln(sh.out, shellHelp)
		return nil

	case "quit":
		sh.done = true
		return nil

	case "list":
		sel, _ := store.Selected()
		renderList(sh.out, store.TestCases(), sel.ID)
		return nil

	case "add":
		if len(args) > 2 {
			return &cli.ValidationError{Message: "usage: add [input] [output]"}
		}
		var pair model.Pair
		if len(args) > 0 {
			pair.Input = args[0]
		}
		if len(args) > 1 {
			pair.Output = args[1]
		}
		if err := checkBodies("the test case", pair.Input, pair.Output); err != nil {
			return err
		}
		id := store.NextID()
		store.AddBatch([]model.Pair{pair})
		fmt.Fprintf(sh.out, "Added test case #%d\n", id)
		return sh.sess.save(ctx)

	case "batch":
		text := sh.readBody("the batch text")
		if err := checkBodies("the batch text", text); err != nil {
			return err
		}
		first := store.NextID()
		n, err := store.AddBatchText(text)
		if err != nil {
			return batchError(err)
		}
		fmt.Fprintf(sh.out, "Added %s (%s)\n", plural(n, "test case"), idRange(first, n))
		return sh.sess.save(ctx)

	case "select":
		if len(args) != 1 {
			return &cli.ValidationError{Message: "usage: select <id>"}
		}
		tc, err := lookupTestCase(store, args[0])
		if err != nil {
			return err
		}
		store.Select(tc.ID)
		fmt.Fprintf(sh.out, "Selected #%d\n", tc.ID)
		return nil

	case "unselect":
		store.ClearSelection()
		return nil

	case "show":
		tc, err := sh.target(args)
		if err != nil {
			return err
		}
		renderTestCase(sh.out, tc)
		return nil

	case "set":
		tc, field, err := sh.selectedField(args, 2)
		if err != nil {
			return err
		}
		var text string
		if len(args) > 1 {
			text = args[1]
		} else {
			text = sh.readBody(fmt.Sprintf("the new %s of #%d", field, tc.ID))
		}
		if err := checkBodies("the new "+string(field), text); err != nil {
			return err
		}
		store.UpdateField(tc.ID, field, text)
		fmt.Fprintf(sh.out, "Updated %s of #%d (%s)\n", field, tc.ID, model.Summary(text))
		return sh.sess.save(ctx)

	case "edit":
		tc, field, err := sh.selectedField(args, 1)
		if err != nil {
			return err
		}
		text, err := cli.EditText(tc.Text(field), model.EntryName(tc.ID, field))
		if err != nil {
			return err
		}
		if err := checkBodies("the new "+string(field), text); err != nil {
			return err
		}
		store.UpdateField(tc.ID, field, text)
		fmt.Fprintf(sh.out, "Updated %s of #%d (%s)\n", field, tc.ID, model.Summary(text))
		return sh.sess.save(ctx)

	case "delete":
		tc, err := sh.target(args)
		if err != nil {
			return err
		}
		if !sh.confirm(fmt.Sprintf("Delete test case #%d?", tc.ID)) {
			fmt.Fprintln(sh.out, "Aborted.")
			return nil
		}
		store.DeleteTestCase(tc.ID)
		fmt.Fprintf(sh.out, "Deleted test case #%d\n", tc.ID)
		return sh.sess.save(ctx)

	case "clear":
		n := store.Len()
		if n == 0 && len(store.ExtraFiles()) == 0 {
			return errNothingToClear
		}
		if !sh.confirm(fmt.Sprintf("Delete all %s and extra files?", plural(n, "test case"))) {
			fmt.Fprintln(sh.out, "Aborted.")
			return nil
		}
		store.ClearAll()
		fmt.Fprintln(sh.out, "Cleared.")
		return sh.sess.save(ctx)

	case "renumber":
		store.Renumber()
		fmt.Fprintf(sh.out, "Next id is #%d\n", store.NextID())
		return sh.sess.save(ctx)

	case "files":
		renderExtraFiles(sh.out, store.ExtraFiles())
		return nil

	case "attach":
		return sh.attach(args)

	case "detach":
		if len(args) != 1 {
			return &cli.ValidationError{Message: "usage: detach <name>"}
		}
		if !store.DeleteExtraFile(args[0]) {
			return &cli.NotFoundError{Kind: "extra file", Name: args[0]}
		}
		fmt.Fprintf(sh.out, "Removed extra file %s\n", args[0])
		return nil

	case "import":
		if len(args) != 1 {
			return &cli.ValidationError{Message: "usage: import <archive>"}
		}
		contents, err := archive.ReadFile(args[0])
		if err != nil {
			return err
		}
		if err := importTestCases(store, sh.out, args[0], contents); err != nil {
			return err
		}
		for _, f := range contents.ExtraFiles {
			if err := store.AddExtraFile(f.Name, f.Content); err != nil {
				sh.fail(err)
				continue
			}
			fmt.Fprintf(sh.out, "Attached extra file %s (%s)\n", f.Name, model.Summary(f.Content))
		}
		return sh.sess.save(ctx)

	case "export":
		if len(args) > 1 {
			return &cli.ValidationError{Message: "usage: export [name]"}
		}
		if store.Len() == 0 {
			return cli.WithHint(archive.ErrNothingToExport, "Add test cases with add or batch first.")
		}
		name := sh.sess.cfg.ArchiveName
		if len(args) == 1 {
			name = args[0]
		}
		path := archive.FileName(name)
		sh.exports = append(sh.exports, archive.ExportAsync(ctx, path, store.Snapshot()))
		fmt.Fprintf(sh.out, "Exporting to %s...\n", path)
		return nil
	}
	return fmt.Errorf("unhandled command %q", name)
}

// target resolves an optional id argument, falling back to the selection.
func (sh *shell) target(args []string) (model.TestCase, error) {
	switch len(args) {
	case 0:
		tc, ok := sh.sess.store.Selected()
		if !ok {
			return model.TestCase{}, &cli.ValidationError{Message: "no test case selected: give an id or use select"}
		}
		return tc, nil
	case 1:
		return lookupTestCase(sh.sess.store, args[0])
	}
	return model.TestCase{}, &cli.ValidationError{Message: "expected at most one id"}
}

// selectedField returns the selection and the field named by args[0].
func (sh *shell) selectedField(args []string, maxArgs int) (model.TestCase, model.Field, error) {
	if len(args) == 0 || len(args) > maxArgs {
		return model.TestCase{}, "", &cli.ValidationError{Message: "name a field: input or output"}
	}
	field, err := model.ParseField(args[0])
	if err != nil {
		return model.TestCase{}, "", &cli.ValidationError{Message: err.Error()}
	}
	tc, ok := sh.sess.store.Selected()
	if !ok {
		return model.TestCase{}, "", &cli.ValidationError{Message: "no test case selected: use select <id> first"}
	}
	return tc, field, nil
}

func (sh *shell) attach(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return &cli.ValidationError{Message: "usage: attach <name> [path]"}
	}
	name := args[0]
	var content string
	if len(args) == 2 {
		data, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("failed to read extra file %s: %w", args[1], err)
		}
		content = string(data)
	} else {
		content = sh.readBody("the content of " + name)
	}
	if err := sh.sess.store.AddExtraFile(name, content); err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "Attached extra file %s (%s)\n", name, model.Summary(content))
	return nil
}

// reapExports reports finished background exports. With wait set it blocks
// until every pending export is done.
func (sh *shell) reapExports(ctx context.Context, wait bool) {
	pending := sh.exports[:0]
	for _, ch := range sh.exports {
		var (
			outcome  archive.Outcome
			finished bool
		)
		if wait {
			outcome, finished = <-ch, true
		} else {
			select {
			case outcome = <-ch:
				finished = true
			default:
			}
		}
		if !finished {
			pending = append(pending, ch)
			continue
		}
		if err := reportExport(ctx, sh.out, sh.sess.log, outcome.Result, outcome.Err); err != nil {
			sh.fail(err)
		}
	}
	sh.exports = pending
}
