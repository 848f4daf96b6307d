package errors

import (
	stderrors "errors"
)

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard library errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard library errors.As.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// GetCode extracts the ErrorCode from an error.
// Returns CodeUnknown if the error is nil or not an Error.
//
// Example:
//
//	if errors.GetCode(outcome.Err) == errors.CodeNotFound {
//	    // Source vanished
//	}
func GetCode(err error) ErrorCode {
	if err == nil {
		return CodeUnknown
	}

	var e Error
	if stderrors.As(err, &e) {
		return e.Code()
	}

	return CodeUnknown
}

// GetPath extracts the path from the outermost Error in the chain.
// Returns "" if the error is nil or carries no path.
func GetPath(err error) string {
	var e Error
	if stderrors.As(err, &e) {
		return e.Path()
	}
	return ""
}

// GetClassification extracts the ErrorClassification from an error.
// Returns ClassificationPermanent if the error is nil or not an Error.
func GetClassification(err error) ErrorClassification {
	if err == nil {
		return ClassificationPermanent
	}

	var e Error
	if stderrors.As(err, &e) {
		return e.Classification()
	}

	return ClassificationPermanent
}

// IsRetryable returns true if the error is classified as retryable.
// Returns false if the error is nil or not an Error.
func IsRetryable(err error) bool {
	return GetClassification(err).IsRetryable()
}
