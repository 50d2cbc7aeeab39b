package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseConfig   Phase = "config"   // persistent configuration
	PhaseBundle   Phase = "bundle"   // bundle resolution
	PhaseSession  Phase = "session"  // session construction
	PhaseRun      Phase = "run"      // engine execution
	PhaseHeader   Phase = "header"   // deployment header transform
	PhaseBoundary Phase = "boundary" // C ABI boundary
)

// Kind categorizes the error
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindNotCached    Kind = "not_cached"
	KindInvalidInput Kind = "invalid_input"
	KindInvalidData  Kind = "invalid_data"
	KindIO           Kind = "io"
	KindNetwork      Kind = "network"
	KindEngineFailed Kind = "engine_failed"
	KindUnsupported  Kind = "unsupported"
	KindAlreadyUsed  Kind = "already_used"
)

// Error is the structured error type used throughout texbridge
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Path != "" {
		b.WriteString(" at ")
		b.WriteString(e.Path)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the file system path the error refers to
func (b *Builder) Path(path string) *Builder {
	b.err.Path = path
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// InvalidData creates an invalid data error for a file that could not be understood
func InvalidData(phase Phase, path, detail string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
		Cause:  cause,
	}
}

// IO creates a file system error
func IO(phase Phase, op, path string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindIO,
		Path:   path,
		Detail: op,
		Cause:  cause,
	}
}

// NotCached creates an error for a resource that is only available remotely
// while remote access was not permitted
func NotCached(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotCached,
		Detail: fmt.Sprintf("%s is not cached and remote access is disabled", what),
	}
}

// Network creates a remote access error
func Network(phase Phase, url string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNetwork,
		Detail: fmt.Sprintf("fetch %s", url),
		Value:  url,
		Cause:  cause,
	}
}

// EngineFailed creates an error for an engine run that did not complete
func EngineFailed(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseRun,
		Kind:   KindEngineFailed,
		Detail: detail,
		Cause:  cause,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// AlreadyUsed creates an error for a single-use object used twice
func AlreadyUsed(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAlreadyUsed,
		Detail: fmt.Sprintf("%s can only be used once", what),
	}
}
