// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeNotFound,
//	    "failed to resolve measured element",
//	    cause,
//	    map[string]interface{}{
//	        "uuid": elementUUID,
//	        "kind": elementKind,
//	    },
//	)
package errors
