// Package store persists ordered record lists as a single JSON document.
//
// Every mutation rewrites the whole file. A missing file loads as an empty list; a file that
// no longer parses also loads as an empty list, but the result is flagged as Recovered so the
// caller can warn before the next save overwrites what was there.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// LoadResult is the outcome of reading a store file.
type LoadResult[T any] struct {
	Records   []T
	Recovered bool
	Warning   string
}

// OverwriteWarning is set on results that were recovered, for callers about to save over the
// unreadable file.
func (r LoadResult[T]) OverwriteWarning() string {
	if !r.Recovered {
		return ""
	}
	return r.Warning + "; it has now been overwritten"
}

// FileStore reads and replaces a list of T kept in one JSON file.
type FileStore[T any] struct {
	path   string
	logger *zap.Logger
}

func NewFileStore[T any](path string, logger *zap.Logger) *FileStore[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore[T]{path: path, logger: logger}
}

func (s *FileStore[T]) Path() string {
	return s.path
}

// Load reads the backing file. Only I/O failures other than a missing file are returned as
// errors; malformed content yields an empty, Recovered result.
func (s *FileStore[T]) Load() (LoadResult[T], error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return LoadResult[T]{Records: []T{}}, nil
	}
	if err != nil {
		return LoadResult[T]{}, fmt.Errorf("failed to read store %s: %w", s.path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return LoadResult[T]{Records: []T{}}, nil
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		warning := fmt.Sprintf("%s could not be parsed and was treated as empty: %v", s.path, err)
		s.logger.Warn("Recovered corrupt store as empty",
			zap.String("path", s.path),
			zap.Error(err))
		return LoadResult[T]{Records: []T{}, Recovered: true, Warning: warning}, nil
	}
	if records == nil {
		records = []T{}
	}
	return LoadResult[T]{Records: records}, nil
}

// Save replaces the file content with records. The document is written to a temporary file
// next to the target and renamed over it.
func (s *FileStore[T]) Save(records []T) error {
	if records == nil {
		records = []T{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close store: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace store %s: %w", s.path, err)
	}

	s.logger.Debug("Store saved", zap.String("path", s.path), zap.Int("records", len(records)))
	return nil
}
