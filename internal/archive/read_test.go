package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/jacksmith/casepack/internal/model"
	"github.com/jacksmith/casepack/internal/ops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildZip(t *testing.T, entries ...string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for i := 0; i+1 < len(entries); i += 2 {
		w, err := zw.Create(entries[i])
		require.NoError(t, err)
		_, err = w.Write([]byte(entries[i+1]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestReadRoundTrip(t *testing.T) {
	snap := ops.Snapshot{
		TestCases: []model.TestCase{
			{ID: 2, Input: "3\n10 20 30\n", Output: "60\n"},
			{ID: 5, Input: "", Output: "x"},
			{ID: 10, Input: "5\r\n1 2 3 4 5", Output: "15"},
		},
		ExtraFiles: []model.ExtraFile{{Name: "checker.py", Content: "print(1)\n"}},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(context.Background(), &buf, snap))

	got, err := Read(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	assert.Equal(t, snap.TestCases, got.TestCases)
	assert.Equal(t, snap.ExtraFiles, got.ExtraFiles)
	assert.Equal(t, []model.Pair{
		{Input: "3\n10 20 30\n", Output: "60\n"},
		{Input: "", Output: "x"},
		{Input: "5\r\n1 2 3 4 5", Output: "15"},
	}, got.Pairs())
}

func TestReadLooseArchive(t *testing.T) {
	data := buildZip(t,
		"README", "hi",
		"3.out", "three",
		"1.in", "one",
		"data/", "",
		"1.in", "duplicate",
		"0.in", "zero",
		"7.IN", "upper",
	)

	got, err := Read(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	assert.Equal(t, []model.TestCase{
		{ID: 1, Input: "one"},
		{ID: 3, Output: "three"},
	}, got.TestCases)

	var names []string
	for _, f := range got.ExtraFiles {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"README", "0.in", "7.IN"}, names)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.zip")
	_, err := Export(context.Background(), path, ops.Snapshot{
		TestCases: []model.TestCase{{ID: 1, Input: "a", Output: "b"}},
	})
	require.NoError(t, err)

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []model.TestCase{{ID: 1, Input: "a", Output: "b"}}, got.TestCases)
	assert.Empty(t, got.ExtraFiles)
}

func TestReadNotAZip(t *testing.T) {
	data := []byte("in1:\n1\nout1:\n2\n")
	_, err := Read(bytes.NewReader(data), int64(len(data)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read archive")

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.zip"))
	require.Error(t, err)
}
