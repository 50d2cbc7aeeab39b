package driver

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/wippyai/texbridge/bundle"
	"github.com/wippyai/texbridge/errors"
	"github.com/wippyai/texbridge/status"
)

// Config is the frozen description of a processing session.
type Config struct {
	Bundle            *bundle.Bundle
	Input             []byte
	InputName         string
	FormatName        string
	FormatCachePath   string
	OutputFormat      OutputFormat
	OutputDir         string
	KeepLogs          bool
	KeepIntermediates bool
	PrintStdout       bool
	WriteFiles        bool
}

// SessionBuilder collects session settings. The zero value is usable and
// matches the engine defaults: PDF output, files written to the current
// directory.
type SessionBuilder struct {
	engine        Engine
	cfg           Config
	doNotWriteSet bool
}

// Bundle sets the support bundle.
func (b *SessionBuilder) Bundle(bnd *bundle.Bundle) *SessionBuilder {
	b.cfg.Bundle = bnd
	return b
}

// PrimaryInputBuffer sets the main input file content.
func (b *SessionBuilder) PrimaryInputBuffer(input []byte) *SessionBuilder {
	b.cfg.Input = input
	return b
}

// TexInputName sets the logical name of the main input file.
func (b *SessionBuilder) TexInputName(name string) *SessionBuilder {
	b.cfg.InputName = name
	return b
}

// FormatName sets the TeX format, e.g. "latex".
func (b *SessionBuilder) FormatName(name string) *SessionBuilder {
	b.cfg.FormatName = name
	return b
}

// FormatCachePath sets the directory for precompiled formats.
func (b *SessionBuilder) FormatCachePath(dir string) *SessionBuilder {
	b.cfg.FormatCachePath = dir
	return b
}

// KeepLogs writes log files alongside the outputs.
func (b *SessionBuilder) KeepLogs(keep bool) *SessionBuilder {
	b.cfg.KeepLogs = keep
	return b
}

// KeepIntermediates writes intermediate files alongside the outputs.
func (b *SessionBuilder) KeepIntermediates(keep bool) *SessionBuilder {
	b.cfg.KeepIntermediates = keep
	return b
}

// PrintStdout forwards the engine's terminal output to the process stdout.
func (b *SessionBuilder) PrintStdout(enabled bool) *SessionBuilder {
	b.cfg.PrintStdout = enabled
	return b
}

// OutputFormat sets the primary output format.
func (b *SessionBuilder) OutputFormat(f OutputFormat) *SessionBuilder {
	b.cfg.OutputFormat = f
	return b
}

// OutputDir sets where files are written when writing is enabled.
func (b *SessionBuilder) OutputDir(dir string) *SessionBuilder {
	b.cfg.OutputDir = dir
	return b
}

// DoNotWriteOutputFiles keeps all outputs in memory.
func (b *SessionBuilder) DoNotWriteOutputFiles() *SessionBuilder {
	b.doNotWriteSet = true
	return b
}

// Engine sets the engine. Without one, an ExecEngine running "tectonic" is used.
func (b *SessionBuilder) Engine(e Engine) *SessionBuilder {
	b.engine = e
	return b
}

// Create validates the settings and returns a session bound to a copy of them.
func (b *SessionBuilder) Create(st status.Backend) (*Session, error) {
	cfg := b.cfg
	cfg.WriteFiles = !b.doNotWriteSet
	cfg.Input = append([]byte(nil), b.cfg.Input...)

	switch {
	case cfg.Bundle == nil:
		return nil, errors.InvalidInput(errors.PhaseSession, "a bundle is required")
	case cfg.InputName == "":
		return nil, errors.InvalidInput(errors.PhaseSession, "an input name is required")
	case cfg.InputName != filepath.Base(cfg.InputName):
		return nil, errors.New(errors.PhaseSession, errors.KindInvalidInput).
			Detail("input name %q must not contain a directory", cfg.InputName).
			Build()
	case cfg.FormatName == "":
		return nil, errors.InvalidInput(errors.PhaseSession, "a format name is required")
	case !cfg.OutputFormat.valid():
		return nil, errors.New(errors.PhaseSession, errors.KindUnsupported).
			Detail("output format %d", int(cfg.OutputFormat)).
			Value(cfg.OutputFormat).
			Build()
	}

	if cfg.WriteFiles && cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	if !cfg.WriteFiles && (cfg.KeepLogs || cfg.KeepIntermediates) {
		status.Warnf(st, nil, "keeping logs or intermediates has no effect when output files are not written")
	}

	engine := b.engine
	if engine == nil {
		engine = NewExecEngine(DefaultProgram)
	}

	Logger().Debug("session created",
		zap.String("input", cfg.InputName),
		zap.String("format", cfg.FormatName),
		zap.Stringer("output", cfg.OutputFormat),
		zap.Bool("write", cfg.WriteFiles))

	return &Session{cfg: cfg, engine: engine}, nil
}

// Session is a single-use engine run.
type Session struct {
	engine Engine
	files  Files
	cfg    Config
	ran    bool
	done   bool
}

// Config returns the session's settings.
func (s *Session) Config() Config {
	return s.cfg
}

// Run executes the engine. It blocks until the engine finishes and may only
// be called once.
func (s *Session) Run(st status.Backend) error {
	if s.ran {
		return errors.AlreadyUsed(errors.PhaseRun, "processing session")
	}
	s.ran = true
	defer func() { s.done = true }()

	job := &Job{
		Bundle:          s.cfg.Bundle,
		Input:           s.cfg.Input,
		InputName:       s.cfg.InputName,
		FormatName:      s.cfg.FormatName,
		FormatCachePath: s.cfg.FormatCachePath,
		OutputFormat:    s.cfg.OutputFormat,
		PrintStdout:     s.cfg.PrintStdout,
	}

	files, err := s.engine.Process(context.Background(), job, st)
	if files == nil {
		files = Files{}
	}
	s.files = files
	if err != nil {
		return err
	}

	if s.cfg.WriteFiles {
		return s.writeFiles(st)
	}
	return nil
}

func (s *Session) writeFiles(st status.Backend) error {
	for _, name := range s.files.Names() {
		if isLog(name) && !s.cfg.KeepLogs {
			continue
		}
		if isIntermediate(name, s.cfg.OutputFormat) && !s.cfg.KeepIntermediates {
			continue
		}
		dst := filepath.Join(s.cfg.OutputDir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return errors.IO(errors.PhaseRun, "create output directory", filepath.Dir(dst), err)
		}
		data := s.files[name].Data
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return errors.IO(errors.PhaseRun, "write output file", dst, err)
		}
		status.Notef(st, "Writing `%s` (%d bytes).", dst, len(data))
	}
	return nil
}

// IntoFileData hands over the produced files. It returns nil until Run has
// returned, and nil on every call after the first.
func (s *Session) IntoFileData() Files {
	if !s.done {
		return nil
	}
	files := s.files
	s.files = nil
	return files
}
