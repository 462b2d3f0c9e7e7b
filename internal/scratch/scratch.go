// Package scratch provides request-scoped scratch directories. The converter
// spills extracted images here so a failed run leaves inspectable artifacts;
// the pipeline removes the space on both success and failure.
package scratch

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidName indicates a scratch file name is empty or escapes the space.
var ErrInvalidName = errors.New("invalid scratch file name")

// Space is a temporary directory owned by a single pipeline run.
type Space struct {
	dir    string
	logger *slog.Logger
}

// New creates a fresh scratch directory under baseDir.
func New(baseDir string, logger *slog.Logger) (*Space, error) {
	dir, err := os.MkdirTemp(baseDir, "docpress-*")
	if err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}

	return &Space{
		dir:    dir,
		logger: logger.With("system", "scratch", "dir", dir),
	}, nil
}

// Dir returns the absolute path of the scratch directory.
func (s *Space) Dir() string {
	return s.dir
}

// Store writes data under the given file name and returns its full path.
// Names must be bare file names; anything resolving outside the space is
// rejected with ErrInvalidName.
func (s *Space) Store(name string, data []byte) (string, error) {
	if name == "" {
		return "", ErrInvalidName
	}

	path := filepath.Join(s.dir, name)
	if !strings.HasPrefix(path, s.dir+string(filepath.Separator)) {
		return "", ErrInvalidName
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return "", fmt.Errorf("write scratch file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("rename scratch file: %w", err)
	}

	return path, nil
}

// Cleanup removes the scratch directory and everything in it.
func (s *Space) Cleanup() {
	if err := os.RemoveAll(s.dir); err != nil {
		s.logger.Warn("scratch cleanup failed", "error", err)
	}
}
