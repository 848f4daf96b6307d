package errors

// Error extends the standard error interface with structured information
// about a failed filesystem operation.
type Error interface {
	error

	// Code returns the error code identifying the type of failure.
	Code() ErrorCode

	// Classification returns whether the failure is retryable or permanent.
	Classification() ErrorClassification

	// Message returns the human-readable error message.
	Message() string

	// Path returns the filesystem path the failure relates to, or "" if none.
	Path() string

	// Context returns attached metadata as a read-only map.
	// Returns nil if no context has been attached.
	Context() map[string]interface{}

	// Unwrap returns the wrapped error for errors.Is and errors.As compatibility.
	Unwrap() error
}
