// Package header produces the deployment header for libtexbridge.
//
// cgo emits libtexbridge.h with the import "C" preamble copied at the top, so the
// hand-written texbridge-interface.h is included before cgo's own prologue
// defines GoInt, GoSlice and friends. Transform moves that include below the
// prologue and Deploy writes the result into the target directory.
package header

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/texbridge/errors"
)

const (
	// DefaultInclude is the directive for the hand-written interface header.
	DefaultInclude = `#include "texbridge-interface.h"`

	// DefaultMarker closes cgo's runtime-support block in generated headers.
	DefaultMarker = "/* End of boilerplate cgo prologue.  */"

	// DeploymentName is the file name written into the target directory.
	DeploymentName = "texbridge.h"

	// TargetDirEnv overrides the default target directory.
	TargetDirEnv = "TEXBRIDGE_TARGET_DIR"
)

// Options selects the include directive to move and the marker to move it after.
type Options struct {
	Include string
	Marker  string
}

func (o Options) withDefaults() Options {
	if o.Include == "" {
		o.Include = DefaultInclude
	}
	if o.Marker == "" {
		o.Marker = DefaultMarker
	}
	return o
}

// Result is the outcome of Transform.
type Result struct {
	Text string
	// Removed counts include directives removed from the input.
	Removed int
	// Inserted is false when the marker was not found, in which case the
	// include is missing from Text.
	Inserted bool
}

// Transform removes every occurrence of the include directive and reinserts
// it once, on its own line, after the line holding the first marker.
func Transform(src string, opts Options) Result {
	opts = opts.withDefaults()

	res := Result{
		Removed: strings.Count(src, opts.Include),
	}
	text := strings.ReplaceAll(src, opts.Include, "")

	pos := strings.Index(text, opts.Marker)
	if pos < 0 {
		res.Text = text
		return res
	}
	lineEnd := strings.IndexByte(text[pos:], '\n')
	if lineEnd < 0 {
		res.Text = text
		return res
	}
	at := pos + lineEnd + 1

	var b strings.Builder
	b.Grow(len(text) + len(opts.Include) + 2)
	b.WriteString(text[:at])
	b.WriteByte('\n')
	b.WriteString(opts.Include)
	b.WriteByte('\n')
	b.WriteString(text[at:])

	res.Text = b.String()
	res.Inserted = true
	return res
}

// TargetDir returns $TEXBRIDGE_TARGET_DIR, or "target" when unset.
func TargetDir() string {
	if dir := os.Getenv(TargetDirEnv); dir != "" {
		return dir
	}
	return "target"
}

// Deploy reads the generated header, transforms it and writes
// <targetDir>/texbridge.h. It returns the written path.
func Deploy(generatedPath, targetDir string, opts Options) (string, error) {
	src, err := os.ReadFile(generatedPath)
	if err != nil {
		return "", errors.IO(errors.PhaseHeader, "read generated header", generatedPath, err)
	}

	res := Transform(string(src), opts)
	if !res.Inserted {
		Logger().Warn("marker not found, interface include dropped",
			zap.String("generated", generatedPath),
			zap.String("marker", opts.withDefaults().Marker))
	}

	out := filepath.Join(targetDir, DeploymentName)
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return "", errors.IO(errors.PhaseHeader, "create target directory", targetDir, err)
	}
	if err := os.WriteFile(out, []byte(res.Text), 0o644); err != nil {
		return "", errors.IO(errors.PhaseHeader, "write deployment header", out, err)
	}

	Logger().Debug("deployment header written",
		zap.String("path", out),
		zap.Int("removed", res.Removed),
		zap.Bool("inserted", res.Inserted))
	return out, nil
}
