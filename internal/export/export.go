// Package export turns the backend's state into the downloadable
// game_params.json file.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/zeebo/xxh3"

	"github.com/gamecfg/gamecfg/internal/constants"
)

// Indent is the indentation used for exported files.
const Indent = "  "

// StateSource fetches the raw state document.
type StateSource interface {
	State(ctx context.Context) (json.RawMessage, error)
}

// Pretty re-indents raw JSON with two spaces. Key order and number literals
// are kept exactly as the backend sent them; no trailing newline is added.
func Pretty(raw []byte) ([]byte, error) {
	raw = bytes.TrimSpace(raw)
	if !json.Valid(raw) {
		return nil, errors.New("state is not valid JSON")
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", Indent); err != nil {
		return nil, fmt.Errorf("failed to indent state: %w", err)
	}
	return buf.Bytes(), nil
}

// Digest returns the xxh3 hash of data.
func Digest(data []byte) uint64 {
	return xxh3.Hash(data)
}

// Writer saves exported state under a fixed filename.
type Writer struct {
	Dir      string
	Filename string
}

// NewWriter returns a Writer, defaulting empty fields.
func NewWriter(dir, filename string) *Writer {
	if dir == "" {
		dir = constants.DefaultExportDir
	}
	if filename == "" {
		filename = constants.ExportFilename
	}
	return &Writer{Dir: dir, Filename: filename}
}

// Path returns the destination file path.
func (w *Writer) Path() string {
	return filepath.Join(w.Dir, w.Filename)
}

// Unchanged reports whether the destination already holds exactly data.
func (w *Writer) Unchanged(data []byte) bool {
	existing, err := os.ReadFile(w.Path())
	if err != nil {
		return false
	}
	return Digest(existing) == Digest(data)
}

// Write replaces the destination with data. The content is written to a
// temporary file in the same directory and renamed into place, so readers
// never see a partial file.
func (w *Writer) Write(data []byte) (string, error) {
	//nolint:gosec // G301: export directory is user-facing
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	tmp, err := os.CreateTemp(w.Dir, "."+w.Filename+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if _, statErr := os.Stat(tmpName); !errors.Is(statErr, fs.ErrNotExist) {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("failed to write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	//nolint:gosec // G302: exported file is meant to be shared
	if err := os.Chmod(tmpName, 0644); err != nil {
		return "", fmt.Errorf("failed to set permissions: %w", err)
	}

	path := w.Path()
	if err := os.Rename(tmpName, path); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", path, err)
	}
	return path, nil
}

// Result describes a completed download.
type Result struct {
	Path    string
	Bytes   int
	Digest  uint64
	Skipped bool
}

// Download fetches the state from src, pretty-prints it and saves it. When
// skipUnchanged is set and the file already holds identical content, nothing
// is written.
func Download(ctx context.Context, src StateSource, w *Writer, skipUnchanged bool) (*Result, error) {
	raw, err := src.State(ctx)
	if err != nil {
		return nil, err
	}

	data, err := Pretty(raw)
	if err != nil {
		return nil, err
	}

	res := &Result{Path: w.Path(), Bytes: len(data), Digest: Digest(data)}
	if skipUnchanged && w.Unchanged(data) {
		res.Skipped = true
		return res, nil
	}

	if res.Path, err = w.Write(data); err != nil {
		return nil, err
	}
	return res, nil
}
