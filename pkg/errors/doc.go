// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeTimeout,
//	    "failed to query cellular modem",
//	    ctx.Err(),
//	    map[string]interface{}{
//	        "device": devicePath,
//	        "command": "AT+QENG",
//	    },
//	)
package errors
