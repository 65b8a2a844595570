// Package applescript runs generated scripts through an external
// interpreter such as osascript.
package applescript

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultInterpreter    = "osascript"
	DefaultMaxOutputBytes = 50 << 20

	// maxDiagnosticBytes bounds captured stderr; only the head is kept.
	maxDiagnosticBytes = 64 << 10

	stagePrefix = "mailbridge-"
	stageSuffix = ".applescript"
)

// ErrOutputTooLarge is wrapped by ExecutionError when stdout exceeds the capture limit.
var ErrOutputTooLarge = errors.New("script output exceeds capture limit")

// ExecutionError reports a failed interpreter run. Diagnostic carries the
// interpreter's stderr text when it produced any.
type ExecutionError struct {
	Diagnostic string
	Err        error
}

func (e *ExecutionError) Error() string {
	msg := e.Diagnostic
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = "script execution failed"
	}
	return "AppleScript error: " + msg
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// Options configures a Runner. Zero values select the defaults.
type Options struct {
	Interpreter    string
	StagingDir     string
	Timeout        time.Duration // zero means no timeout
	MaxOutputBytes int64
}

// Runner stages each script in its own file, runs the interpreter on it and
// removes the file again on every exit path.
type Runner struct {
	interpreter string
	stagingDir  string
	timeout     time.Duration
	maxOutput   int64
}

// NewRunner creates a Runner from opts.
func NewRunner(opts Options) *Runner {
	r := &Runner{
		interpreter: opts.Interpreter,
		stagingDir:  opts.StagingDir,
		timeout:     opts.Timeout,
		maxOutput:   opts.MaxOutputBytes,
	}
	if r.interpreter == "" {
		r.interpreter = DefaultInterpreter
	}
	if r.stagingDir == "" {
		r.stagingDir = os.TempDir()
	}
	if r.maxOutput <= 0 {
		r.maxOutput = DefaultMaxOutputBytes
	}
	return r
}

// Interpreter returns the interpreter command the runner invokes.
func (r *Runner) Interpreter() string { return r.interpreter }

// StagingDir returns the directory scripts are staged in.
func (r *Runner) StagingDir() string { return r.stagingDir }

// Run executes src and returns its stdout with trailing whitespace removed.
// Every failure is reported as an *ExecutionError.
func (r *Runner) Run(ctx context.Context, src string) (string, error) {
	path, err := r.stage(src)
	if err != nil {
		return "", &ExecutionError{Err: err}
	}
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			slog.Warn("applescript: remove staged script failed", "path", path, "err", err)
		}
	}()

	runCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, r.interpreter, path)
	cmd.WaitDelay = time.Second

	stdout := &cappedBuffer{limit: r.maxOutput}
	stderr := &cappedBuffer{limit: maxDiagnosticBytes}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	start := time.Now()
	runErr := cmd.Run()
	slog.Debug("applescript: run finished", "script", filepath.Base(path), "duration", time.Since(start), "bytes", stdout.Len())

	if r.timeout > 0 && errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return "", &ExecutionError{
			Diagnostic: fmt.Sprintf("script timed out after %v", r.timeout),
			Err:        runCtx.Err(),
		}
	}
	if runErr != nil {
		return "", &ExecutionError{Diagnostic: strings.TrimSpace(stderr.String()), Err: runErr}
	}
	if stdout.Overflowed() {
		return "", &ExecutionError{Err: fmt.Errorf("%w (%d bytes)", ErrOutputTooLarge, r.maxOutput)}
	}
	return strings.TrimRight(stdout.String(), " \t\r\n"), nil
}

// stage writes src to a fresh, uniquely named file in the staging directory.
func (r *Runner) stage(src string) (string, error) {
	if err := os.MkdirAll(r.stagingDir, 0o700); err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}
	path := filepath.Join(r.stagingDir, stagePrefix+uuid.NewString()+stageSuffix)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", fmt.Errorf("stage script: %w", err)
	}
	if _, err := f.WriteString(src); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("stage script: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("stage script: %w", err)
	}
	return path, nil
}

// IsStagedScript reports whether name looks like a file created by stage.
func IsStagedScript(name string) bool {
	return strings.HasPrefix(name, stagePrefix) && strings.HasSuffix(name, stageSuffix)
}
