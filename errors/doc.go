// Package errors provides structured error types for texbridge.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the offending file system path, a detail message and the
// cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseConfig, errors.KindInvalidData).
//		Path(cfgPath).
//		Detail("exactly one default bundle must be configured, found %d", n).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NotFound(errors.PhaseConfig, "configuration file", path)
//	err := errors.IO(errors.PhaseHeader, "read generated header", path, cause)
//
// All errors implement the standard error interface and support errors.Is/As.
// errors.Is matches on Phase and Kind, so callers can test categories:
//
//	if errors.Is(err, &errors.Error{Phase: errors.PhaseConfig, Kind: errors.KindNotFound}) { ... }
package errors
