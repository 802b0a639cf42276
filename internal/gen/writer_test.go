package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	files := []GeneratedFile{
		{Filename: "a_record.go", Content: []byte("package a\n")},
		{Filename: "b_record.go", Content: []byte("package a\n")},
	}

	require.NoError(t, WriteFiles(files, dir))

	for _, f := range files {
		data, err := os.ReadFile(filepath.Join(dir, f.Filename))
		require.NoError(t, err)
		assert.Equal(t, f.Content, data)
	}
}

func TestCompareAndPrune(t *testing.T) {
	dir := t.TempDir()
	header := Header(DefaultTool)

	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), filePerm))
	}

	write("same_record.go", header+"\n\npackage a\n")
	write("changed_record.go", header+"\n\npackage a\n")
	write("old_record.go", header+"\n\npackage a\n")
	write("hand_record.go", "package a\n")
	write("types.go", header+"\n\npackage a\n")

	files := []GeneratedFile{
		{Filename: "same_record.go", Content: []byte(header + "\n\npackage a\n")},
		{Filename: "changed_record.go", Content: []byte(header + "\n\npackage a\n\nvar x = 1\n")},
		{Filename: "new_record.go", Content: []byte(header + "\n\npackage a\n")},
	}

	drifts, err := Compare(files, dir, header)
	require.NoError(t, err)
	assert.Equal(t, []FileDrift{
		{Filename: "changed_record.go", Drift: DriftChanged},
		{Filename: "new_record.go", Drift: DriftMissing},
		{Filename: "old_record.go", Drift: DriftStale},
	}, drifts)

	removed, err := Prune(files, dir, header)
	require.NoError(t, err)
	assert.Equal(t, []string{"old_record.go"}, removed)

	assert.NoFileExists(t, filepath.Join(dir, "old_record.go"))
	assert.FileExists(t, filepath.Join(dir, "hand_record.go"))
	assert.FileExists(t, filepath.Join(dir, "types.go"))
}

func TestCompare_MissingDir(t *testing.T) {
	files := []GeneratedFile{{Filename: "a_record.go", Content: []byte("package a\n")}}

	drifts, err := Compare(files, filepath.Join(t.TempDir(), "none"), Header(DefaultTool))
	require.NoError(t, err)
	assert.Equal(t, []FileDrift{{Filename: "a_record.go", Drift: DriftMissing}}, drifts)
}

func TestDrift_String(t *testing.T) {
	assert.Equal(t, "up to date", DriftNone.String())
	assert.Equal(t, "stale", DriftStale.String())
	assert.Equal(t, "unknown", Drift(42).String())
}
