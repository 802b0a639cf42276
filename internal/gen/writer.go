package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"record-generator/internal/common"
	"record-generator/internal/plan"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes all generated files to the output directory.
// It creates the directory if it doesn't exist.
func WriteFiles(files []GeneratedFile, outputDir string) error {
	err := os.MkdirAll(outputDir, dirPerm)
	if err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, file := range files {
		outputPath := filepath.Join(outputDir, file.Filename)

		err := os.WriteFile(outputPath, file.Content, filePerm)
		if err != nil {
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}
	}

	return nil
}

// Drift describes how a generated file differs from the one on disk.
type Drift int

const (
	DriftNone    Drift = iota // up to date
	DriftMissing              // missing
	DriftChanged              // changed
	DriftStale                // stale
)

// String returns the drift name.
func (d Drift) String() string {
	switch d {
	case DriftNone:
		return "up to date"
	case DriftMissing:
		return "missing"
	case DriftChanged:
		return "changed"
	case DriftStale:
		return "stale"
	default:
		return common.UnknownStr
	}
}

// FileDrift reports one out-of-date file.
type FileDrift struct {
	Filename string
	Drift    Drift
}

// Compare reports the files of outputDir that do not match files: missing
// or different ones, and stale generated files that no record produces any
// more. Stale files are recognized by the plan.FileSuffix name and header.
func Compare(files []GeneratedFile, outputDir, header string) ([]FileDrift, error) {
	var drifts []FileDrift

	want := make(map[string]bool, len(files))

	for _, file := range files {
		want[file.Filename] = true

		current, err := os.ReadFile(filepath.Join(outputDir, file.Filename))

		switch {
		case errors.Is(err, fs.ErrNotExist):
			drifts = append(drifts, FileDrift{Filename: file.Filename, Drift: DriftMissing})
		case err != nil:
			return nil, fmt.Errorf("reading %s: %w", file.Filename, err)
		case !bytes.Equal(current, file.Content):
			drifts = append(drifts, FileDrift{Filename: file.Filename, Drift: DriftChanged})
		}
	}

	stale, err := generatedFiles(outputDir, header)
	if err != nil {
		return nil, err
	}

	for _, name := range stale {
		if !want[name] {
			drifts = append(drifts, FileDrift{Filename: name, Drift: DriftStale})
		}
	}

	return drifts, nil
}

// Prune removes generated files of outputDir that are not in files and
// returns their names.
func Prune(files []GeneratedFile, outputDir, header string) ([]string, error) {
	drifts, err := Compare(files, outputDir, header)
	if err != nil {
		return nil, err
	}

	var removed []string

	for _, d := range drifts {
		if d.Drift != DriftStale {
			continue
		}

		if err := os.Remove(filepath.Join(outputDir, d.Filename)); err != nil {
			return removed, fmt.Errorf("removing %s: %w", d.Filename, err)
		}

		removed = append(removed, d.Filename)
	}

	return removed, nil
}

// generatedFiles lists the files of dir written by a generator with header.
func generatedFiles(dir, header string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var names []string

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), plan.FileSuffix) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", e.Name(), err)
		}

		if bytes.HasPrefix(data, []byte(header)) {
			names = append(names, e.Name())
		}
	}

	return names, nil
}
