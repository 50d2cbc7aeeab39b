package texbridge

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/texbridge/bridge"
	"github.com/wippyai/texbridge/config"
	"github.com/wippyai/texbridge/driver"
	"github.com/wippyai/texbridge/status"
)

// Fixed session parameters for rendering a markup string.
const (
	InputName    = "texput.tex"
	FormatName   = "latex"
	OutputName   = "texput.pdf"
	OutputFormat = driver.FormatPDF
)

// Artifact is the rendered document extracted from a session's outputs.
type Artifact struct {
	Name string
	Data []byte
	// Found is false when the engine completed without producing Name.
	Found bool
}

// Renderer turns markup into a rendered document using the persistent
// configuration. The zero value is not usable; call New.
type Renderer struct {
	engine    driver.Engine
	configDir string
	cacheDir  string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithConfigDir reads config.toml from dir instead of the user configuration directory.
func WithConfigDir(dir string) Option {
	return func(r *Renderer) {
		r.configDir = dir
	}
}

// WithCacheDir keeps caches under dir instead of the user cache directory.
func WithCacheDir(dir string) Option {
	return func(r *Renderer) {
		r.cacheDir = dir
	}
}

// WithEngine replaces the configured engine program.
func WithEngine(e driver.Engine) Option {
	return func(r *Renderer) {
		r.engine = e
	}
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) openConfig() (*config.Persistent, error) {
	dir := r.configDir
	if dir == "" {
		d, err := config.ConfigDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	cache := r.cacheDir
	if cache == "" {
		c, err := config.CacheDir()
		if err != nil {
			return nil, err
		}
		cache = c
	}
	return config.OpenAt(dir, cache, false)
}

// Render typesets markup and returns the PDF. Diagnostics go to sink, which the
// call owns until it returns; sink is released before Render returns.
//
// The returned error is an *errors.Error whose Phase tells which step failed:
// config, bundle, session or run.
func (r *Renderer) Render(markup string, sink bridge.Sink) (Artifact, error) {
	st := bridge.Take(sink)
	defer st.Release()
	return r.render(markup, st)
}

func (r *Renderer) render(markup string, st status.Backend) (Artifact, error) {
	cfg, err := r.openConfig()
	if err != nil {
		return Artifact{}, err
	}

	bnd, err := cfg.DefaultBundle(false, st)
	if err != nil {
		return Artifact{}, err
	}

	formatCache, err := cfg.FormatCachePath()
	if err != nil {
		return Artifact{}, err
	}

	engine := r.engine
	if engine == nil {
		info := cfg.Engine()
		engine = driver.NewExecEngine(info.Program, info.Args...)
	}

	var sb driver.SessionBuilder
	sb.Bundle(bnd).
		PrimaryInputBuffer([]byte(markup)).
		TexInputName(InputName).
		FormatName(FormatName).
		FormatCachePath(formatCache).
		KeepLogs(false).
		KeepIntermediates(false).
		PrintStdout(false).
		OutputFormat(OutputFormat).
		DoNotWriteOutputFiles().
		Engine(engine)

	sess, err := sb.Create(st)
	if err != nil {
		return Artifact{}, err
	}
	if err := sess.Run(st); err != nil {
		return Artifact{}, err
	}

	files := sess.IntoFileData()
	fd, ok := files.Remove(OutputName)
	if !ok {
		Logger().Debug("session produced no rendered document",
			zap.String("expected", OutputName),
			zap.Strings("outputs", files.Names()))
	}
	return Artifact{Name: OutputName, Data: fd.Data, Found: ok}, nil
}

var defaultRenderer = New()

// RunLatexFromString renders markup with the default Renderer and returns the
// PDF bytes, or an empty slice when the engine produced no PDF.
//
// Any failure to open the configuration, resolve the bundle or format cache,
// create or run the session panics. Callers that need to handle those cases
// should use Renderer.Render.
func RunLatexFromString(markup string, sink bridge.Sink) []byte {
	art, err := defaultRenderer.Render(markup, sink)
	if err != nil {
		Logger().Error("render failed", zap.Error(err))
		panic(fmt.Sprintf("texbridge: %v", err))
	}
	if !art.Found {
		return []byte{}
	}
	return art.Data
}
