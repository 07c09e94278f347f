package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jacksmith/casepack/internal/cli"
	"github.com/jacksmith/casepack/internal/model"
)

// renderList prints one row per test case: id, input and output counters,
// and short previews of both bodies.
func renderList(w io.Writer, cases []model.TestCase, selected int) {
	if len(cases) == 0 {
		fmt.Fprintln(w, "No test cases.")
		return
	}

	table := cli.NewTable()
	for _, tc := range cases {
		id := fmt.Sprintf("#%d", tc.ID)
		if tc.ID == selected {
			id = cli.Green("*" + id)
		} else {
			id = cli.Yellow(id)
		}
		table.AddRow(
			id,
			model.Summary(tc.Input),
			model.Summary(tc.Output),
			cli.Gray(cli.Preview(tc.Input, cli.DefaultPreviewWidth)+" -> "+cli.Preview(tc.Output, cli.DefaultPreviewWidth)),
		)
	}
	table.Render(w)
}

// renderTestCase prints both bodies of a test case under labelled headers.
func renderTestCase(w io.Writer, tc model.TestCase) {
	fmt.Fprintf(w, "%s\n", cli.Yellow(fmt.Sprintf("Test case #%d", tc.ID)))
	renderBody(w, "Input", model.InputName(tc.ID), tc.Input)
	renderBody(w, "Output", model.OutputName(tc.ID), tc.Output)
}

func renderBody(w io.Writer, label, entry, body string) {
	fmt.Fprintf(w, "%s %s\n", cli.Gray(fmt.Sprintf("--- %s (%s)", label, entry)), cli.Gray(model.Summary(body)))
	if body == "" {
		fmt.Fprintln(w, cli.Gray("(empty)"))
		return
	}
	fmt.Fprint(w, body)
	if !strings.HasSuffix(body, "\n") {
		fmt.Fprintln(w)
	}
}

// renderExtraFiles lists extra files with their sizes.
func renderExtraFiles(w io.Writer, files []model.ExtraFile) {
	if len(files) == 0 {
		fmt.Fprintln(w, "No extra files.")
		return
	}
	table := cli.NewTable()
	for _, f := range files {
		table.AddRow(f.Name, model.Summary(f.Content))
	}
	table.Render(w)
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// idRange formats the ids assigned by a batch, e.g. "#3" or "#3-#5".
func idRange(first, n int) string {
	if n == 1 {
		return fmt.Sprintf("#%d", first)
	}
	return fmt.Sprintf("#%d-#%d", first, first+n-1)
}
