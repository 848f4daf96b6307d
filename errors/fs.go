package errors

import (
	"context"
	stderrors "errors"
	"io/fs"
	"syscall"
)

// CodeOf classifies a raw provider error into an ErrorCode.
//
// It recognizes the io/fs sentinels, context cancellation, the standard
// library's ErrUnsupported (which core.ErrUnsupported aliases) and
// cross-device rename failures (EXDEV). Errors that are already an Error keep
// their code. Anything else is CodeIO.
func CodeOf(err error) ErrorCode {
	switch {
	case err == nil:
		return CodeUnknown
	case isError(err):
		return GetCode(err)
	case stderrors.Is(err, syscall.EXDEV):
		return CodeCrossDevice
	case stderrors.Is(err, syscall.ENOTEMPTY):
		// Checked before fs.ErrExist, which ENOTEMPTY also matches on unix.
		return CodeNotEmpty
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return CodeCancelled
	case stderrors.Is(err, fs.ErrNotExist):
		return CodeNotFound
	case stderrors.Is(err, fs.ErrExist):
		return CodeAlreadyExists
	case stderrors.Is(err, fs.ErrPermission):
		return CodePermission
	case stderrors.Is(err, fs.ErrInvalid):
		return CodeInvalidInput
	case stderrors.Is(err, stderrors.ErrUnsupported):
		return CodeNotImplemented
	default:
		return CodeIO
	}
}

// FromFS wraps a provider error with the code chosen by CodeOf and records
// the path from an *fs.PathError in the chain when present.
// Returns nil if err is nil.
//
// Example:
//
//	if err := host.Remove(p); err != nil {
//	    return errors.FromFS(err, "remove file")
//	}
func FromFS(err error, message string) Error {
	if err == nil {
		return nil
	}

	wrapped := Wrap(err, CodeOf(err), message)
	if wrapped.Path() != "" {
		return wrapped
	}

	var pathErr *fs.PathError
	if stderrors.As(err, &pathErr) {
		return WithPath(wrapped, pathErr.Path)
	}

	return wrapped
}

func isError(err error) bool {
	var e Error
	return stderrors.As(err, &e)
}
