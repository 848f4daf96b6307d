// Package errs translates object-store failures into io/fs errors.
package errs

import (
	"fmt"
	"io/fs"
	"syscall"

	"github.com/minio/minio-go/v7"
)

// Translate converts MinIO error responses to io/fs sentinels so callers can
// classify them with errors.Is. Unknown failures are wrapped unchanged.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return fs.ErrNotExist
	case "AccessDenied":
		return fs.ErrPermission
	case "XMinioStorageFull":
		return fmt.Errorf("minio: %w", syscall.ENOSPC)
	}

	return fmt.Errorf("minio: %w", err)
}

// PathError wraps err in a *fs.PathError. It returns nil for a nil err.
func PathError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &fs.PathError{Op: op, Path: path, Err: err}
}

// PathErrorf creates a *fs.PathError with a formatted cause.
func PathErrorf(op, path, format string, args ...interface{}) error {
	return &fs.PathError{Op: op, Path: path, Err: fmt.Errorf(format, args...)}
}
