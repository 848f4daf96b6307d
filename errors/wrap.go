package errors

import (
	"errors"
	"fmt"
)

// Wrap wraps an error with a code and message while preserving the original error.
// The wrapped error is accessible via Unwrap() and compatible with errors.Is and errors.As.
//
// If the wrapped error is already an Error, its classification and path are
// preserved. Returns nil if err is nil.
//
// Example:
//
//	if err := host.Mkdir(dst, perm); err != nil {
//	    return errors.Wrap(err, errors.CodeIO, "create destination directory")
//	}
func Wrap(err error, code ErrorCode, message string) Error {
	if err == nil {
		return nil
	}

	wrapped := &opError{
		code:           code,
		classification: getDefaultClassification(code),
		message:        message,
		cause:          err,
	}

	var inner Error
	if errors.As(err, &inner) {
		wrapped.classification = inner.Classification()
		wrapped.path = inner.Path()
	}

	return wrapped
}

// Wrapf wraps an error with a formatted message while preserving the original error.
// Returns nil if err is nil.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) Error {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}
