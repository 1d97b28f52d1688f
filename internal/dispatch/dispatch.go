// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package dispatch runs one invocation: it resolves the verb, reports usage
// and configuration errors, and hands the resulting command to an executor.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/matt-FFFFFF/shorty/internal/color"
	"github.com/matt-FFFFFF/shorty/internal/commandregistry"
	"github.com/matt-FFFFFF/shorty/internal/ctxlog"
	"github.com/matt-FFFFFF/shorty/internal/params"
	"github.com/matt-FFFFFF/shorty/internal/runner"
	"github.com/matt-FFFFFF/shorty/internal/scripts"
)

// Exit codes of shorty itself. Child exit codes are passed through.
const (
	ExitOK            = 0
	ExitFailure       = 1
	ExitConfiguration = 78 // EX_CONFIG
	ExitCannotExecute = 126
	ExitNotFound      = 127
)

// Dispatcher runs invocations against a registry.
type Dispatcher struct {
	reg      *commandregistry.Registry
	exec     commandregistry.Executor
	params   commandregistry.ParamSource
	out      io.Writer
	errOut   io.Writer
	manifest string
	dryRun   bool
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithExecutor sets the executor commands are handed to.
func WithExecutor(e commandregistry.Executor) Option {
	return func(d *Dispatcher) { d.exec = e }
}

// WithParams sets the parameter file source.
func WithParams(src commandregistry.ParamSource) Option {
	return func(d *Dispatcher) { d.params = src }
}

// WithOutput sets the writers for regular and error output.
func WithOutput(out, errOut io.Writer) Option {
	return func(d *Dispatcher) {
		d.out = out
		d.errOut = errOut
	}
}

// WithManifest sets the package.json path used by the script listing.
func WithManifest(path string) Option {
	return func(d *Dispatcher) { d.manifest = path }
}

// WithDryRun prints commands instead of running them.
func WithDryRun(v bool) Option {
	return func(d *Dispatcher) { d.dryRun = v }
}

// New creates a dispatcher. By default commands run through runner.New with
// the process's stdout and stderr.
func New(reg *commandregistry.Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		reg:      reg,
		exec:     runner.New(),
		out:      os.Stdout,
		errOut:   os.Stderr,
		manifest: scripts.DefaultManifest,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Dispatch runs inv and returns the exit code for the process.
func (d *Dispatcher) Dispatch(ctx context.Context, inv commandregistry.Invocation) int {
	logger := ctxlog.Logger(ctx).With("verb", inv.Verb)

	res, err := d.reg.Resolve(ctx, inv, d.params)
	if err != nil {
		return d.resolveFailed(ctx, inv, err)
	}

	if res.Rule.IsBuiltin() {
		logger.Debug("dispatching builtin", "token", res.Rule.Token)
		return d.builtin(ctx, res.Rule, inv)
	}

	logger.Debug("dispatching", "token", res.Rule.Token, "spec", res.Spec.String(), "form", res.Spec.Form().String())

	d.println(res.Preview)

	if d.dryRun {
		d.println(res.Spec)
		return ExitOK
	}

	result := d.exec.Run(ctx, res.Spec)

	return d.exitCode(ctx, res.Rule, result)
}

func (d *Dispatcher) resolveFailed(ctx context.Context, inv commandregistry.Invocation, err error) int {
	var uerr *commandregistry.UsageError

	switch {
	case errors.Is(err, commandregistry.ErrUnknownVerb):
		ctxlog.Debug(ctx, "unknown verb, printing help", "verb", inv.Verb)

		if err := d.reg.WriteHelp(d.out); err != nil {
			ctxlog.Error(ctx, "cannot write help", "error", err)
		}

		return ExitOK

	case errors.As(err, &uerr):
		d.println(color.Line{}.Label("Usage:"))
		d.println(uerr.Hint)

		return ExitOK

	case isConfiguration(err):
		d.configurationError(err)
		return ExitConfiguration

	default:
		ctxlog.Error(ctx, "cannot resolve verb", "verb", inv.Verb, "error", err)
		return ExitFailure
	}
}

func (d *Dispatcher) builtin(ctx context.Context, rule *commandregistry.Rule, inv commandregistry.Invocation) int {
	err := rule.Builtin(ctx, d, inv)

	switch {
	case err == nil:
		return ExitOK
	case isConfiguration(err):
		d.configurationError(err)
		return ExitConfiguration
	default:
		// The builtin has already told the user.
		ctxlog.Debug(ctx, "builtin failed", "token", rule.Token, "error", err)
		return ExitFailure
	}
}

func (d *Dispatcher) exitCode(ctx context.Context, rule *commandregistry.Rule, result runner.Result) int {
	switch {
	case errors.Is(result.Error, runner.ErrCommandNotFound):
		if rule.TolerateNotFound {
			ctxlog.Debug(ctx, "command not found, tolerated", "token", rule.Token)
			return ExitOK
		}

		fmt.Fprintln(d.errOut, result.Error) //nolint:errcheck

		return ExitNotFound

	case !result.Started():
		fmt.Fprintln(d.errOut, result.Error) //nolint:errcheck
		return ExitCannotExecute

	case result.ExitCode < 0:
		ctxlog.Warn(ctx, "child process ended abnormally", "error", result.Error)
		return ExitFailure
	}

	if result.Error != nil {
		ctxlog.Debug(ctx, "child process finished with error", "exitCode", result.ExitCode, "error", result.Error)
	}

	return result.ExitCode
}

func (d *Dispatcher) configurationError(err error) {
	fmt.Fprintln(d.errOut, color.Line{}.Label("Configuration error:").Plain(" "+causeOf(err))) //nolint:errcheck
}

func (d *Dispatcher) println(v fmt.Stringer) {
	fmt.Fprintln(d.out, v) //nolint:errcheck
}

func isConfiguration(err error) bool {
	return errors.Is(err, params.ErrConfiguration) || errors.Is(err, scripts.ErrReadManifest)
}

// causeOf drops ErrConfiguration from a joined error so the message reads as
// the underlying problem.
func causeOf(err error) string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok { //nolint:errorlint
		var parts []error

		for _, e := range joined.Unwrap() {
			if e == params.ErrConfiguration { //nolint:errorlint
				continue
			}

			parts = append(parts, e)
		}

		if len(parts) > 0 {
			return errors.Join(parts...).Error()
		}
	}

	return err.Error()
}
