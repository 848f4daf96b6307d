package errors

import "fmt"

// opError is the concrete implementation of Error.
// It is private to enforce construction through package functions.
type opError struct {
	code           ErrorCode
	classification ErrorClassification
	message        string
	path           string
	context        map[string]interface{}
	cause          error
}

// Error returns the string representation of the error.
// Format: "[CODE] message" with " (path)" and ": cause" appended when present.
func (e *opError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.code, e.message)
	if e.path != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.path)
	}
	if e.cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.cause)
	}
	return msg
}

// Code returns the error code.
func (e *opError) Code() ErrorCode {
	return e.code
}

// Classification returns the error classification.
func (e *opError) Classification() ErrorClassification {
	return e.classification
}

// Message returns the error message.
func (e *opError) Message() string {
	return e.message
}

// Path returns the path the error relates to.
func (e *opError) Path() string {
	return e.path
}

// Context returns a copy of the context map, or nil if none was attached.
func (e *opError) Context() map[string]interface{} {
	if e.context == nil {
		return nil
	}
	ctx := make(map[string]interface{}, len(e.context))
	for k, v := range e.context {
		ctx[k] = v
	}
	return ctx
}

// Unwrap returns the wrapped error for standard library compatibility.
func (e *opError) Unwrap() error {
	return e.cause
}

// clone returns a shallow copy with its own context map.
func (e *opError) clone() *opError {
	c := *e
	c.context = e.Context()
	return &c
}
