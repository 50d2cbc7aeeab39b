package driver

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wippyai/texbridge/errors"
	"github.com/wippyai/texbridge/status"
)

// DefaultProgram is the engine executable used when none is configured.
const DefaultProgram = "tectonic"

// ExecEngine runs a tectonic-compatible command line program in a private
// working directory and collects what it writes there.
type ExecEngine struct {
	// Stdout receives the engine's terminal output when a job asks for it.
	// Defaults to os.Stdout.
	Stdout io.Writer
	// TempDir is the parent of the per-run working directory.
	// Defaults to os.TempDir().
	TempDir string
	Program string
	Args    []string
}

// NewExecEngine creates an engine running program with extra leading args.
func NewExecEngine(program string, args ...string) *ExecEngine {
	return &ExecEngine{Program: program, Args: args}
}

// command builds the argument list for job with outputs going to workDir.
func (e *ExecEngine) command(job *Job, workDir, inputPath string) []string {
	args := append([]string(nil), e.Args...)
	args = append(args,
		"--outfmt", job.OutputFormat.String(),
		"--format", job.FormatName,
		"--keep-logs",
		"--keep-intermediates",
		"--outdir", workDir,
	)
	if b := job.Bundle; b != nil {
		if b.Local {
			args = append(args, "--bundle", b.Resolved)
		} else {
			args = append(args, "--web-bundle", b.Resolved)
		}
	}
	if job.PrintStdout {
		args = append(args, "--print")
	}
	return append(args, inputPath)
}

// Process runs the program once. The engine prints notes on stdout and
// warnings and errors on stderr; both streams are parsed and the diagnostics
// reported on the calling goroutine while it runs. Within a stream, reports
// keep the engine's order. Stdout lines that are not diagnostics go to Stdout
// when the job asks for them.
func (e *ExecEngine) Process(ctx context.Context, job *Job, st status.Backend) (Files, error) {
	workDir, err := os.MkdirTemp(e.TempDir, "texbridge-*")
	if err != nil {
		return nil, errors.IO(errors.PhaseRun, "create working directory", e.TempDir, err)
	}
	defer os.RemoveAll(workDir)

	inputPath := filepath.Join(workDir, job.InputName)
	if err := os.WriteFile(inputPath, job.Input, 0o644); err != nil {
		return nil, errors.IO(errors.PhaseRun, "write primary input", inputPath, err)
	}

	cmd := exec.CommandContext(ctx, e.Program, e.command(job, workDir, inputPath)...)
	cmd.Dir = workDir
	cmd.Env = os.Environ()
	if job.FormatCachePath != "" {
		cmd.Env = append(cmd.Env, "TECTONIC_CACHE_DIR="+filepath.Dir(job.FormatCachePath))
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errors.EngineFailed("attach engine stdout", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, errors.EngineFailed("attach engine stderr", err)
	}

	Logger().Debug("starting engine",
		zap.String("program", e.Program),
		zap.Strings("args", cmd.Args[1:]))

	if err := cmd.Start(); err != nil {
		return nil, errors.EngineFailed(fmt.Sprintf("start %s", e.Program), err)
	}

	events := make(chan event)
	var g errgroup.Group
	g.Go(func() error {
		return drainChatter(stderr, events, nil)
	})
	g.Go(func() error {
		return drainChatter(stdout, events, e.stdoutFor(job))
	})

	var drainErr error
	go func() {
		drainErr = g.Wait()
		close(events)
	}()

	for ev := range events {
		st.Report(ev.kind, ev.err, "%s", ev.msg)
	}

	runErr := cmd.Wait()

	files, collectErr := collectOutputs(workDir, job.InputName)

	if runErr != nil {
		e.dumpLog(workDir, job.InputName, st)
		var exitErr *exec.ExitError
		if stderrors.As(runErr, &exitErr) {
			return files, errors.EngineFailed(
				fmt.Sprintf("engine exited with status %d", exitErr.ExitCode()), runErr)
		}
		return files, errors.EngineFailed("engine did not complete", runErr)
	}
	if drainErr != nil {
		return files, errors.EngineFailed("read engine output", drainErr)
	}
	if collectErr != nil {
		return files, collectErr
	}

	Logger().Debug("engine finished", zap.Strings("outputs", files.Names()))
	return files, nil
}

// drainChatter parses r until EOF. After a parse failure the rest of r is
// discarded so the engine never blocks on a full pipe.
func drainChatter(r io.Reader, out chan<- event, other io.Writer) error {
	if err := parseChatter(r, out, other); err != nil {
		_, _ = io.Copy(io.Discard, r)
		return err
	}
	return nil
}

func (e *ExecEngine) stdoutFor(job *Job) io.Writer {
	if !job.PrintStdout {
		return io.Discard
	}
	if e.Stdout != nil {
		return e.Stdout
	}
	return os.Stdout
}

// dumpLog delivers the engine log of a failed run, if the engine wrote one.
func (e *ExecEngine) dumpLog(workDir, inputName string, st status.Backend) {
	stem := strings.TrimSuffix(inputName, filepath.Ext(inputName))
	data, err := os.ReadFile(filepath.Join(workDir, stem+".log"))
	if err != nil {
		Logger().Debug("no engine log to dump", zap.Error(err))
		return
	}
	st.DumpErrorLogs(data)
}

// collectOutputs reads every regular file under dir except the primary input.
func collectOutputs(dir, inputName string) (Files, error) {
	files := Files{}
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if name == inputName {
			return nil
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		files[name] = FileData{Data: data}
		return nil
	})
	if err != nil {
		return files, errors.IO(errors.PhaseRun, "collect engine outputs", dir, err)
	}
	return files, nil
}
