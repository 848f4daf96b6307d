package core

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

var (
	// ErrNotExist is returned when a file or directory does not exist.
	// Re-exported from io/fs for convenience.
	ErrNotExist = fs.ErrNotExist

	// ErrExist is returned when a file or directory already exists.
	// Re-exported from io/fs for convenience.
	ErrExist = fs.ErrExist

	// ErrPermission is returned when permission is denied.
	// Re-exported from io/fs for convenience.
	ErrPermission = fs.ErrPermission

	// ErrClosed is returned when an operation is performed on a closed file.
	// Re-exported from io/fs for convenience.
	ErrClosed = fs.ErrClosed

	// ErrUnsupported is returned when an operation is not supported by the
	// provider, for example Rename on object storage. It aliases the
	// standard library's errors.ErrUnsupported.
	ErrUnsupported = errors.ErrUnsupported

	// ErrCrossDevice is returned when a rename would cross a volume boundary.
	// It wraps syscall.EXDEV so it matches errors from the operating system.
	ErrCrossDevice = fmt.Errorf("cross-device rename: %w", syscall.EXDEV)
)
