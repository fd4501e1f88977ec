// Package input reads document bytes from disk and classifies the failures
// the report needs to distinguish: missing file, permission denied, and a
// path that names a directory.
package input

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mcncl/jsonlens/internal/errors"
)

// Meta describes the file a document was read from.
type Meta struct {
	Path      string
	SizeBytes int64
}

// ReadFile reads the file at path and returns its contents with metadata.
// When absolute is true the reported path is resolved to an absolute one.
// The returned Meta carries whatever was established before a failure, so
// error reports can still name the file.
func ReadFile(path string, absolute bool) ([]byte, Meta, error) {
	if strings.TrimSpace(path) == "" {
		return nil, Meta{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}

	meta := Meta{Path: path}
	if absolute {
		if abs, err := filepath.Abs(path); err == nil {
			meta.Path = abs
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, meta, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", path),
				errors.ErrFileNotFound,
			)
		}
		if os.IsPermission(err) {
			return nil, meta, errors.NewInputError(
				fmt.Sprintf("permission denied reading file '%s'", path),
				errors.ErrPermissionDenied,
			)
		}
		return nil, meta, errors.NewInputError(
			fmt.Sprintf("failed to access file '%s'", path),
			err,
		)
	}
	if info.IsDir() {
		return nil, meta, errors.NewInputError(
			fmt.Sprintf("path '%s' is a directory, not a file", path),
			errors.ErrNotAFile,
		)
	}
	meta.SizeBytes = info.Size()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, meta, errors.NewInputError(
				fmt.Sprintf("permission denied reading file '%s'", path),
				errors.ErrPermissionDenied,
			)
		}
		return nil, meta, errors.NewInputError(
			fmt.Sprintf("failed to read file '%s'", path),
			err,
		)
	}
	return data, meta, nil
}
