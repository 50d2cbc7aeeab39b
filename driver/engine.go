package driver

import (
	"context"

	"github.com/wippyai/texbridge/bundle"
	"github.com/wippyai/texbridge/status"
)

// Job is everything an Engine needs for one run.
type Job struct {
	Bundle          *bundle.Bundle
	Input           []byte
	InputName       string
	FormatName      string
	FormatCachePath string
	OutputFormat    OutputFormat
	PrintStdout     bool
}

// Engine performs the typesetting for a session.
//
// Process must report diagnostics on st from the calling goroutine only, in
// the order the engine emitted them, and call st.DumpErrorLogs at most once.
// It returns every file the engine produced, excluding the primary input,
// even when the run failed.
type Engine interface {
	Process(ctx context.Context, job *Job, st status.Backend) (Files, error)
}
