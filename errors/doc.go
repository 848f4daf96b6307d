// Package errors provides structured failure reasons for filesystem operations.
//
// Tree mutations and content hashing never propagate raw I/O errors to their
// callers. Instead, every failure is recovered at the operation boundary and
// carried as an Error: a code identifying what went wrong, the path involved,
// a retry classification and the wrapped cause. The package stays compatible
// with the standard library (errors.Is, errors.As, errors.Unwrap).
//
// # Creating errors
//
//	err := errors.New(errors.CodeNotFound, "source does not exist")
//	err = errors.WithPath(err, "/sdcard/DCIM")
//
// # Translating provider errors
//
// Providers return *fs.PathError values wrapping io/fs sentinels. FromFS maps
// them onto codes so callers can branch on a stable vocabulary:
//
//	if err := host.Remove(p); err != nil {
//	    return errors.FromFS(err, "remove failed")
//	}
//
// # Error codes
//
//   - Resource: CodeNotFound, CodeAlreadyExists, CodeNotEmpty
//   - Permission: CodePermission
//   - Validation: CodeInvalidInput, CodeInvalidConfig
//   - Capability: CodeNotImplemented, CodeCrossDevice
//   - Runtime: CodeIO, CodeCancelled, CodeInternal
//   - Generic: CodeUnknown
//
// # Classification
//
// Each code has a default classification. Retryable errors (CodeIO,
// CodeCancelled) describe conditions that may clear up on their own; every
// other code is permanent. No operation in this module retries on its own;
// the classification is advice for the caller.
package errors
