// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"syscall"

	"github.com/matt-FFFFFF/shorty/internal/commandspec"
	"github.com/matt-FFFFFF/shorty/internal/ctxlog"
	"github.com/matt-FFFFFF/shorty/internal/signalbroker"
)

const (
	maxBufferSize  = 8 * 1024 * 1024 // 8MB
	signalExitBase = 128
)

var (
	// ErrCommandNotFound is returned when a program is not found in PATH.
	ErrCommandNotFound = errors.New("command not found")
	// ErrInvalidSpec is returned for the zero value of commandspec.Spec.
	ErrInvalidSpec = errors.New("invalid command spec")
	// ErrCouldNotStartProcess is returned when the process could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrFailedToCreatePipe is returned when the stdout pipe could not be created.
	ErrFailedToCreatePipe = errors.New("failed to create pipe")
	// ErrFailedToReadBuffer is returned when the captured output could not be read.
	ErrFailedToReadBuffer = errors.New("failed to read buffer")
	// ErrBufferOverflow is returned when captured output exceeds the max size.
	ErrBufferOverflow = fmt.Errorf("output exceeds max size of %d bytes", maxBufferSize)
	// ErrSignalReceived is returned when a signal was forwarded to the child.
	ErrSignalReceived = errors.New("signal received")
	// ErrDuplicateSignalReceived is returned when a second identical signal killed the child.
	ErrDuplicateSignalReceived = errors.New("duplicate signal received, process forcefully terminated")
	// ErrContextDone is returned when the context ended before the child did.
	ErrContextDone = errors.New("context done, process killed")
)

// Result is the outcome of running a spec.
type Result struct {
	// ExitCode is the child's exit status, 128+n when it died from signal n,
	// or -1 when it never started.
	ExitCode int
	Error    error
}

// Started reports whether the child process was started.
func (r Result) Started() bool {
	return !errors.Is(r.Error, ErrCommandNotFound) &&
		!errors.Is(r.Error, ErrCouldNotStartProcess) &&
		!errors.Is(r.Error, ErrInvalidSpec)
}

// Runner starts command specs as child processes.
type Runner struct {
	// Dir is the working directory of the child. Empty means the current directory.
	Dir string
	// Stdin, Stdout and Stderr default to the process's own.
	Stdin  *os.File
	Stdout *os.File
	Stderr *os.File

	sigCh chan os.Signal // allows injecting signals in tests
}

// New returns a runner using the process's own stdio.
func New() *Runner {
	return &Runner{}
}

// Run runs spec with inherited stdio and waits for it to exit.
func (r *Runner) Run(ctx context.Context, spec commandspec.Spec) Result {
	return r.run(ctx, spec, r.stdout())
}

// Output runs spec and returns what it wrote to stdout. Stderr is inherited.
func (r *Runner) Output(ctx context.Context, spec commandspec.Spec) ([]byte, Result) {
	rOut, wOut, err := os.Pipe()
	if err != nil {
		return nil, Result{ExitCode: -1, Error: errors.Join(ErrFailedToCreatePipe, err)}
	}

	type readResult struct {
		b   []byte
		err error
	}

	read := make(chan readResult, 1)

	go func() {
		b, err := readAllUpToMax(ctx, rOut, maxBufferSize)
		// Drain whatever is left so the child never blocks on a full pipe.
		_, _ = io.Copy(io.Discard, rOut)
		_ = rOut.Close()
		read <- readResult{b: b, err: err}
	}()

	res := r.run(ctx, spec, wOut)
	_ = wOut.Close()

	out := <-read
	if out.err != nil {
		res.Error = errors.Join(res.Error, out.err)
	}

	return out.b, res
}

func (r *Runner) run(ctx context.Context, spec commandspec.Spec, stdout *os.File) Result {
	logger := ctxlog.Logger(ctx).With("form", spec.Form().String())

	if !spec.Valid() {
		return Result{ExitCode: -1, Error: ErrInvalidSpec}
	}

	path, argv, err := r.command(ctx, spec)
	if err != nil {
		logger.Debug("command lookup failed", "error", err)
		return Result{ExitCode: -1, Error: err}
	}

	logger.Debug("starting process", "path", path, "argv", argv, "cwd", r.Dir)

	sigCh := r.sigCh
	if sigCh == nil {
		sigCh = signalbroker.New(ctx)
		defer signalbroker.Stop(ctx, sigCh)
	}

	ps, err := os.StartProcess(path, argv, &os.ProcAttr{
		Dir:   r.Dir,
		Env:   os.Environ(),
		Files: []*os.File{r.stdin(), stdout, r.stderr()},
	})
	if err != nil {
		return Result{ExitCode: -1, Error: errors.Join(ErrCouldNotStartProcess, err)}
	}

	logger.Debug("process started", "pid", ps.Pid)

	done := make(chan struct{})
	reason := make(chan error, 1)

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()
		watchdog(ctx, ps, sigCh, done, reason)
	}()

	state, psErr := ps.Wait()

	close(done)
	wg.Wait()

	res := Result{
		ExitCode: exitCode(state),
		Error:    psErr,
	}

	select {
	case e := <-reason:
		res.Error = errors.Join(res.Error, e)
	default:
	}

	logger.Debug("process finished", "exitCode", res.ExitCode, "error", res.Error)

	return res
}

// watchdog forwards signals to the child until done is closed. The second
// signal of a kind, or the end of ctx, kills the child.
func watchdog(ctx context.Context, ps *os.Process, sigCh <-chan os.Signal, done <-chan struct{}, reason chan error) {
	seen := make(map[os.Signal]struct{})

	report := func(err error) {
		select {
		case reason <- err:
		default:
		}
	}

	for {
		select {
		case s := <-sigCh:
			if _, ok := seen[s]; ok {
				ctxlog.Info(ctx, "received duplicate signal, killing process", "signal", s.String())
				killPs(ctx, ps)
				// Replace the first signal's reason.
				select {
				case <-reason:
				default:
				}

				report(ErrDuplicateSignalReceived)

				return
			}

			seen[s] = struct{}{}

			if !forwarded(s) {
				ctxlog.Debug(ctx, "not forwarding signal, the terminal delivers it to the process group", "signal", s.String())
				report(ErrSignalReceived)

				continue
			}

			ctxlog.Info(ctx, "forwarding signal", "signal", s.String())

			if err := ps.Signal(s); err != nil {
				ctxlog.Info(ctx, "failed to send signal", "signal", s.String(), "error", err)
			}

			report(ErrSignalReceived)

		case <-ctx.Done():
			ctxlog.Info(ctx, "context done, killing process")
			killPs(ctx, ps)
			report(ErrContextDone)

			return

		case <-done:
			return
		}
	}
}

// forwarded reports whether s is relayed to the child. Keyboard signals
// already reach the child through the foreground process group.
func forwarded(s os.Signal) bool {
	switch s {
	case os.Interrupt, syscall.SIGINT, syscall.SIGQUIT:
		return false
	default:
		return true
	}
}

func (r *Runner) command(ctx context.Context, spec commandspec.Spec) (string, []string, error) {
	if spec.IsShell() {
		shell, args := shellArgs(ctx, spec.Line())
		return shell, slices.Concat([]string{filepath.Base(shell)}, args), nil
	}

	path, err := LookPath(spec.Name())
	if err != nil {
		return "", nil, err
	}

	return path, spec.Argv(), nil
}

func (r *Runner) stdin() *os.File {
	if r.Stdin != nil {
		return r.Stdin
	}

	return os.Stdin
}

func (r *Runner) stdout() *os.File {
	if r.Stdout != nil {
		return r.Stdout
	}

	return os.Stdout
}

func (r *Runner) stderr() *os.File {
	if r.Stderr != nil {
		return r.Stderr
	}

	return os.Stderr
}

func exitCode(state *os.ProcessState) int {
	if state == nil {
		return -1
	}

	if code := state.ExitCode(); code >= 0 {
		return code
	}

	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return signalExitBase + int(ws.Signal())
	}

	return -1
}

func readAllUpToMax(ctx context.Context, r io.Reader, maxBufferSize int64) ([]byte, error) {
	var buf bytes.Buffer

	n, err := io.CopyN(&buf, r, maxBufferSize+1)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Join(ErrFailedToReadBuffer, err)
	}

	if n > maxBufferSize {
		ctxlog.Debug(ctx, "captured output truncated", "bytesRead", n, "maxBytes", maxBufferSize)

		return buf.Bytes()[:maxBufferSize], ErrBufferOverflow
	}

	return buf.Bytes(), nil
}

func killPs(ctx context.Context, ps *os.Process) {
	if err := ps.Kill(); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			ctxlog.Debug(ctx, "process already done", "pid", ps.Pid)
			return
		}

		ctxlog.Error(ctx, "process kill error", "pid", ps.Pid, "error", err)

		return
	}

	ctxlog.Info(ctx, "process killed", "pid", ps.Pid)
}
