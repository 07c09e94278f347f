package batch

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jacksmith/casepack/internal/model"
	"golang.org/x/tools/txtar"
)

var writeTxtarGolden = flag.Bool("write-txtar-golden", false, "If true, rewrites the expected pairs in testdata/*.txtar")

// batchFile is the archive member holding the text fed to Parse.
// Every other member is an expected <n>.in / <n>.out body, numbered from 1
// in the order Parse returns pairs.
const batchFile = "batch.txt"

func TestTxtarParse(t *testing.T) {
	files, err := filepath.Glob("testdata/*.txtar")
	if err != nil {
		t.Fatalf("failed to find txtar files in testdata: %v", err)
	}
	if len(files) == 0 {
		t.Skip("no txtar files found")
	}

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			runTxtarTest(t, file)
		})
	}
}

func runTxtarTest(t *testing.T, file string) {
	archive, err := txtar.ParseFile(file)
	if err != nil {
		t.Fatalf("failed to parse txtar file %s: %v", file, err)
	}

	var text string
	found := false
	want := map[string]string{}
	for _, f := range archive.Files {
		if f.Name == batchFile {
			text = string(f.Data)
			found = true
			continue
		}
		want[f.Name] = strings.TrimSuffix(string(f.Data), "\n")
	}
	if !found {
		t.Fatalf("%s has no %s member", file, batchFile)
	}

	pairs := Parse(text)
	got := map[string]string{}
	for i, p := range pairs {
		got[model.InputName(i+1)] = p.Input
		got[model.OutputName(i+1)] = p.Output
	}

	if *writeTxtarGolden {
		writeGolden(t, file, archive, pairs)
		return
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func writeGolden(t *testing.T, file string, archive *txtar.Archive, pairs []model.Pair) {
	t.Helper()

	out := &txtar.Archive{Comment: archive.Comment}
	for _, f := range archive.Files {
		if f.Name == batchFile {
			out.Files = append(out.Files, f)
		}
	}
	for i, p := range pairs {
		out.Files = append(out.Files,
			txtar.File{Name: model.InputName(i + 1), Data: []byte(p.Input + "\n")},
			txtar.File{Name: model.OutputName(i + 1), Data: []byte(p.Output + "\n")},
		)
	}

	if err := os.WriteFile(file, txtar.Format(out), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", file, err)
	}
}
