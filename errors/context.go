package errors

import "errors"

// toOpError converts any error into an *opError so attributes can be layered on.
// Errors that are not already an Error become CodeUnknown.
func toOpError(err error) *opError {
	if own, ok := err.(*opError); ok {
		return own.clone()
	}

	var other Error
	if errors.As(err, &other) {
		return &opError{
			code:           other.Code(),
			classification: other.Classification(),
			message:        other.Message(),
			path:           other.Path(),
			context:        other.Context(),
			cause:          other.Unwrap(),
		}
	}

	return &opError{
		code:           CodeUnknown,
		classification: ClassificationPermanent,
		message:        err.Error(),
		cause:          err,
	}
}

// WithPath returns a copy of err that records the filesystem path involved.
// Returns nil if err is nil.
//
// Example:
//
//	err := errors.WithPath(errors.New(errors.CodeNotFound, "no such file"), "/data/a.txt")
func WithPath(err error, path string) Error {
	if err == nil {
		return nil
	}
	e := toOpError(err)
	e.path = path
	return e
}

// WithContext adds a single context field to an error.
// Existing context fields are preserved. Returns nil if err is nil.
//
// Example:
//
//	err = errors.WithContext(err, "strategy", "rename")
func WithContext(err error, key string, value interface{}) Error {
	if err == nil {
		return nil
	}
	e := toOpError(err)
	if e.context == nil {
		e.context = make(map[string]interface{}, 1)
	}
	e.context[key] = value
	return e
}

// WithContextMap adds multiple context fields to an error.
// New fields override existing ones with the same key. Returns nil if err is nil.
func WithContextMap(err error, ctx map[string]interface{}) Error {
	if err == nil {
		return nil
	}
	e := toOpError(err)
	if e.context == nil {
		e.context = make(map[string]interface{}, len(ctx))
	}
	for k, v := range ctx {
		e.context[k] = v
	}
	return e
}

// WithClassification overrides the classification of an error.
// Returns nil if err is nil.
func WithClassification(err error, classification ErrorClassification) Error {
	if err == nil {
		return nil
	}
	e := toOpError(err)
	e.classification = classification
	return e
}
