package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/texbridge/bundle"
	"github.com/wippyai/texbridge/errors"
	"github.com/wippyai/texbridge/status"
)

type fakeEngine struct {
	jobs  []*Job
	files Files
	err   error
}

func (f *fakeEngine) Process(ctx context.Context, job *Job, st status.Backend) (Files, error) {
	f.jobs = append(f.jobs, job)
	status.Notef(st, "processing %s", job.InputName)
	return f.files, f.err
}

type reports struct {
	status.NoopBackend
	kinds []status.MessageKind
	msgs  []string
}

func (r *reports) Report(kind status.MessageKind, err error, format string, args ...any) {
	r.kinds = append(r.kinds, kind)
	r.msgs = append(r.msgs, fmt.Sprintf(format, args...))
}

func newBuilder(e Engine) *SessionBuilder {
	var sb SessionBuilder
	sb.Bundle(&bundle.Bundle{Location: "b.zip", Resolved: "/b.zip", Local: true}).
		PrimaryInputBuffer([]byte(`\documentclass{article}`)).
		TexInputName("texput.tex").
		FormatName("latex").
		FormatCachePath("/cache/formats").
		OutputFormat(FormatPDF).
		Engine(e)
	return &sb
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SessionBuilder)
		kind   errors.Kind
	}{
		{"no bundle", func(b *SessionBuilder) { b.Bundle(nil) }, errors.KindInvalidInput},
		{"no input name", func(b *SessionBuilder) { b.TexInputName("") }, errors.KindInvalidInput},
		{"input name with dir", func(b *SessionBuilder) { b.TexInputName("../x.tex") }, errors.KindInvalidInput},
		{"no format", func(b *SessionBuilder) { b.FormatName("") }, errors.KindInvalidInput},
		{"bad output format", func(b *SessionBuilder) { b.OutputFormat(OutputFormat(99)) }, errors.KindUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sb := newBuilder(&fakeEngine{})
			tt.mutate(sb)
			_, err := sb.Create(status.NoopBackend{})
			assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseSession, Kind: tt.kind})
		})
	}
}

func TestCreate_FreezesConfig(t *testing.T) {
	input := []byte("hello")
	sb := newBuilder(&fakeEngine{})
	sb.PrimaryInputBuffer(input).DoNotWriteOutputFiles()

	sess, err := sb.Create(status.NoopBackend{})
	require.NoError(t, err)

	input[0] = 'j'
	sb.TexInputName("other.tex")

	cfg := sess.Config()
	assert.Equal(t, []byte("hello"), cfg.Input)
	assert.Equal(t, "texput.tex", cfg.InputName)
	assert.False(t, cfg.WriteFiles)
}

func TestCreate_WarnsOnUselessKeep(t *testing.T) {
	st := &reports{}
	sb := newBuilder(&fakeEngine{})
	sb.KeepLogs(true).DoNotWriteOutputFiles()

	_, err := sb.Create(st)
	require.NoError(t, err)
	assert.Equal(t, []status.MessageKind{status.Warning}, st.kinds)
}

func TestRun_InMemory(t *testing.T) {
	engine := &fakeEngine{files: Files{
		"texput.pdf": {Data: []byte("%PDF-1.5")},
		"texput.log": {Data: []byte("log")},
	}}
	sb := newBuilder(engine)
	sb.KeepLogs(false).
		KeepIntermediates(false).
		PrintStdout(false).
		DoNotWriteOutputFiles()

	sess, err := sb.Create(status.NoopBackend{})
	require.NoError(t, err)

	assert.Nil(t, sess.IntoFileData(), "outputs are not available before Run")

	st := &reports{}
	require.NoError(t, sess.Run(st))
	require.Len(t, engine.jobs, 1)
	job := engine.jobs[0]
	assert.Equal(t, "latex", job.FormatName)
	assert.Equal(t, "/cache/formats", job.FormatCachePath)
	assert.False(t, job.PrintStdout)
	assert.Equal(t, []string{"processing texput.tex"}, st.msgs)

	files := sess.IntoFileData()
	require.NotNil(t, files)
	pdf, ok := files.Remove("texput.pdf")
	assert.True(t, ok)
	assert.Equal(t, []byte("%PDF-1.5"), pdf.Data)

	assert.Nil(t, sess.IntoFileData(), "outputs are handed over once")
}

func TestRun_Once(t *testing.T) {
	sess, err := newBuilder(&fakeEngine{}).DoNotWriteOutputFiles().Create(status.NoopBackend{})
	require.NoError(t, err)

	require.NoError(t, sess.Run(status.NoopBackend{}))
	err = sess.Run(status.NoopBackend{})
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseRun, Kind: errors.KindAlreadyUsed})
}

func TestRun_EngineFailureKeepsPartialOutputs(t *testing.T) {
	engine := &fakeEngine{
		files: Files{"texput.log": {Data: []byte("! Emergency stop.")}},
		err:   errors.EngineFailed("engine exited with status 1", nil),
	}
	sess, err := newBuilder(engine).DoNotWriteOutputFiles().Create(status.NoopBackend{})
	require.NoError(t, err)

	err = sess.Run(status.NoopBackend{})
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseRun, Kind: errors.KindEngineFailed})

	files := sess.IntoFileData()
	_, ok := files.Remove("texput.pdf")
	assert.False(t, ok)
	assert.Equal(t, []string{"texput.log"}, files.Names())
}

func TestRun_WritesFiles(t *testing.T) {
	out := t.TempDir()
	engine := &fakeEngine{files: Files{
		"texput.pdf": {Data: []byte("%PDF")},
		"texput.log": {Data: []byte("log")},
		"texput.aux": {Data: []byte("aux")},
	}}
	st := &reports{}
	sess, err := newBuilder(engine).OutputDir(out).KeepLogs(true).Create(st)
	require.NoError(t, err)
	require.NoError(t, sess.Run(st))

	data, err := os.ReadFile(filepath.Join(out, "texput.pdf"))
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), data)

	_, err = os.Stat(filepath.Join(out, "texput.log"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(out, "texput.aux"))
	assert.True(t, os.IsNotExist(err), "intermediates are not written unless kept")

	assert.Len(t, sess.IntoFileData(), 3, "the in-memory set keeps every output")
}

func TestCreate_DefaultEngine(t *testing.T) {
	var sb SessionBuilder
	sess, err := sb.Bundle(&bundle.Bundle{Resolved: "x"}).
		TexInputName("texput.tex").
		FormatName("latex").
		Create(status.NoopBackend{})
	require.NoError(t, err)

	exe, ok := sess.engine.(*ExecEngine)
	require.True(t, ok)
	assert.Equal(t, DefaultProgram, exe.Program)
	assert.Equal(t, ".", sess.Config().OutputDir)
}
