package errors

// ErrorCode represents a specific failure condition.
// Error codes are string-based for debuggability and log output.
type ErrorCode string

const (
	// Resource errors.

	// CodeNotFound indicates a path does not exist.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeAlreadyExists indicates a path already exists and cannot be created again.
	CodeAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// CodeNotEmpty indicates a directory still has children.
	CodeNotEmpty ErrorCode = "NOT_EMPTY"

	// Permission errors.

	// CodePermission indicates the host refused access to a path.
	CodePermission ErrorCode = "PERMISSION_DENIED"

	// Validation errors.

	// CodeInvalidInput indicates the caller passed an unusable argument,
	// such as a special file where a file or directory was expected.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// CodeInvalidConfig indicates a configuration error prevents the operation.
	CodeInvalidConfig ErrorCode = "INVALID_CONFIGURATION"

	// Capability errors.

	// CodeNotImplemented indicates the host or library does not provide the
	// requested capability (for example an unknown digest algorithm).
	CodeNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// CodeCrossDevice indicates a rename crossed a volume boundary.
	CodeCrossDevice ErrorCode = "CROSS_DEVICE"

	// Runtime errors.

	// CodeIO indicates a read, write or metadata operation failed mid-stream.
	CodeIO ErrorCode = "IO_ERROR"

	// CodeCancelled indicates the caller cancelled the operation.
	CodeCancelled ErrorCode = "CANCELLED"

	// CodeInternal indicates an internal error occurred.
	CodeInternal ErrorCode = "INTERNAL_ERROR"

	// Generic errors.

	// CodeUnknown indicates an unknown or unclassified error occurred.
	CodeUnknown ErrorCode = "UNKNOWN"
)
