package bridge

import (
	"fmt"

	"github.com/wippyai/texbridge/status"
)

// Kind is the severity code passed across the boundary.
// Values must match TEXBRIDGE_KIND_* in texbridge-interface.h.
type Kind uint8

const (
	KindNote    Kind = 0
	KindWarning Kind = 1
	KindError   Kind = 2
)

func (k Kind) String() string {
	switch k {
	case KindNote:
		return "note"
	case KindWarning:
		return "warning"
	case KindError:
		return "error"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Valid reports whether k is one of the defined codes.
func (k Kind) Valid() bool {
	return k <= KindError
}

// Sink receives diagnostics on behalf of the foreign caller.
type Sink interface {
	Report(kind Kind, message string)
	DumpErrorLogs(output []byte)
}

// Releaser is implemented by sinks that hold foreign resources.
type Releaser interface {
	Release()
}

// Translate maps an engine severity to its boundary code.
func Translate(kind status.MessageKind) Kind {
	switch kind {
	case status.Note:
		return KindNote
	case status.Warning:
		return KindWarning
	case status.Error:
		return KindError
	}
	panic(fmt.Sprintf("bridge: no boundary code for %v", kind))
}

// FormatMessage appends the description of err to msg, if there is one.
func FormatMessage(msg string, err error) string {
	if err == nil {
		return msg
	}
	return msg + ": " + err.Error()
}

// Backend adapts a Sink to status.Backend.
type Backend struct {
	sink Sink
}

var _ status.Backend = (*Backend)(nil)

// Take wraps sink. The returned Backend owns sink until Release.
func Take(sink Sink) *Backend {
	return &Backend{sink: sink}
}

// Report formats the message and forwards it with its translated severity.
func (b *Backend) Report(kind status.MessageKind, err error, format string, args ...any) {
	if b.sink == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	b.sink.Report(Translate(kind), FormatMessage(msg, err))
}

// DumpErrorLogs forwards output unchanged.
func (b *Backend) DumpErrorLogs(output []byte) {
	if b.sink == nil {
		return
	}
	b.sink.DumpErrorLogs(output)
}

// Release drops the sink. Reports after Release are discarded.
func (b *Backend) Release() {
	sink := b.sink
	b.sink = nil
	if r, ok := sink.(Releaser); ok {
		r.Release()
	}
}
