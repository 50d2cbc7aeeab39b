package status

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type call struct {
	kind MessageKind
	err  error
	msg  string
}

type captureBackend struct {
	calls []call
}

func (c *captureBackend) Report(kind MessageKind, err error, format string, args ...any) {
	c.calls = append(c.calls, call{kind: kind, err: err, msg: format})
}

func (c *captureBackend) DumpErrorLogs([]byte) {}

func TestHelpers(t *testing.T) {
	cause := errors.New("boom")
	b := &captureBackend{}

	Notef(b, "n")
	Warnf(b, nil, "w")
	Errorf(b, cause, "e")

	require.Len(t, b.calls, 3)
	assert.Equal(t, call{kind: Note, msg: "n"}, b.calls[0])
	assert.Equal(t, call{kind: Warning, msg: "w"}, b.calls[1])
	assert.Equal(t, call{kind: Error, err: cause, msg: "e"}, b.calls[2])
}

func TestMessageKindString(t *testing.T) {
	assert.Equal(t, "note", Note.String())
	assert.Equal(t, "warning", Warning.String())
	assert.Equal(t, "error", Error.String())
	assert.Equal(t, "MessageKind(7)", MessageKind(7).String())
}

func TestLoggerBackend(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	b := LoggerBackend{Logger: zap.New(core)}

	b.Report(Note, nil, "loaded %d files", 3)
	b.Report(Warning, nil, "overfull hbox")
	b.Report(Error, errors.New("missing $"), "compile failed")
	b.DumpErrorLogs([]byte("! Missing $ inserted."))

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "loaded 3 files", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, "missing $", entries[2].ContextMap()["error"])
	assert.Equal(t, "! Missing $ inserted.", entries[3].ContextMap()["log"])
}

func TestNoopBackend(t *testing.T) {
	var b Backend = NoopBackend{}
	b.Report(Error, errors.New("x"), "ignored")
	b.DumpErrorLogs([]byte("ignored"))
}
