// Package status defines the diagnostic capability the engine reports through.
//
// A Backend receives severity-tagged messages while a processing session runs
// and, at most once, the raw failure log of a failed run. Backends are called
// synchronously from the goroutine driving the session, in engine order.
package status

import (
	"fmt"

	"go.uber.org/zap"
)

// MessageKind is the severity of a reported message.
type MessageKind int

const (
	Note MessageKind = iota
	Warning
	Error
)

func (k MessageKind) String() string {
	switch k {
	case Note:
		return "note"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("MessageKind(%d)", int(k))
	}
}

// Backend is implemented by anything that wants to observe engine diagnostics.
type Backend interface {
	// Report delivers one message. format and args are combined with
	// fmt.Sprintf; err, when non-nil, is the failure the message is about.
	Report(kind MessageKind, err error, format string, args ...any)

	// DumpErrorLogs delivers the accumulated engine log after a failure.
	DumpErrorLogs(output []byte)
}

// Notef reports a note.
func Notef(b Backend, format string, args ...any) {
	b.Report(Note, nil, format, args...)
}

// Warnf reports a warning, optionally about err.
func Warnf(b Backend, err error, format string, args ...any) {
	b.Report(Warning, err, format, args...)
}

// Errorf reports an error, optionally about err.
func Errorf(b Backend, err error, format string, args ...any) {
	b.Report(Error, err, format, args...)
}

// NoopBackend discards everything.
type NoopBackend struct{}

func (NoopBackend) Report(MessageKind, error, string, ...any) {}

func (NoopBackend) DumpErrorLogs([]byte) {}

// LoggerBackend routes diagnostics to a zap logger.
type LoggerBackend struct {
	Logger *zap.Logger
}

func (b LoggerBackend) Report(kind MessageKind, err error, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fields := []zap.Field{zap.Stringer("kind", kind)}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	switch kind {
	case Warning:
		b.Logger.Warn(msg, fields...)
	case Error:
		b.Logger.Error(msg, fields...)
	default:
		b.Logger.Info(msg, fields...)
	}
}

func (b LoggerBackend) DumpErrorLogs(output []byte) {
	b.Logger.Error("engine error log", zap.ByteString("log", output))
}
