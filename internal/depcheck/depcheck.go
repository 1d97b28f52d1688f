// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package depcheck runs the depcheck dependency analyser in the background and
// summarises its JSON report.
package depcheck

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/matt-FFFFFF/shorty/internal/commandspec"
	"github.com/matt-FFFFFF/shorty/internal/ctxlog"
	"github.com/matt-FFFFFF/shorty/internal/runner"
)

const (
	// Program is the analyser executable.
	Program = "depcheck"
	// IgnorePattern excludes type packages from the report.
	IgnorePattern = "@types/*"
)

var (
	// ErrAnalysis is returned when the analyser could not produce a report.
	ErrAnalysis = errors.New("dependency check failed")
	// ErrDecodeReport is returned when the analyser output is not a report.
	ErrDecodeReport = errors.New("cannot decode depcheck report")
)

// Capturer runs a spec and returns its stdout.
type Capturer interface {
	Output(ctx context.Context, spec commandspec.Spec) ([]byte, runner.Result)
}

// Report is the part of the depcheck JSON output shorty summarises.
type Report struct {
	Dependencies    []string            `yaml:"dependencies"`
	DevDependencies []string            `yaml:"devDependencies"`
	Missing         map[string][]string `yaml:"missing"`
}

// Clean reports whether no issues were found.
func (r *Report) Clean() bool {
	return len(r.Dependencies) == 0 && len(r.DevDependencies) == 0 && len(r.Missing) == 0
}

// Summary returns one line per kind of issue, with names sorted.
func (r *Report) Summary() []string {
	if r.Clean() {
		return []string{"No dependency issues found."}
	}

	var lines []string

	if len(r.Dependencies) > 0 {
		lines = append(lines, "Unused dependencies: "+strings.Join(sorted(r.Dependencies), ", "))
	}

	if len(r.DevDependencies) > 0 {
		lines = append(lines, "Unused devDependencies: "+strings.Join(sorted(r.DevDependencies), ", "))
	}

	if len(r.Missing) > 0 {
		missing := make([]string, 0, len(r.Missing))
		for _, name := range slices.Sorted(maps.Keys(r.Missing)) {
			missing = append(missing, fmt.Sprintf("%s (%s)", name, strings.Join(sorted(r.Missing[name]), ", ")))
		}

		lines = append(lines, "Missing dependencies: "+strings.Join(missing, ", "))
	}

	return lines
}

// Spec returns the command that analyses dir.
func Spec(dir string) commandspec.Spec {
	if dir == "" {
		dir = "."
	}

	return commandspec.Program(Program, dir, "--ignores", IgnorePattern, "--json")
}

// Task is a running analysis.
type Task struct {
	done   chan struct{}
	report *Report
	err    error
}

// Start launches the analysis of dir in the background.
// The task is detached from ctx cancellation and has no timeout.
func Start(ctx context.Context, exec Capturer, dir string) *Task {
	t := &Task{done: make(chan struct{})}
	ctx = context.WithoutCancel(ctx)

	go func() {
		defer close(t.done)

		t.report, t.err = analyse(ctx, exec, dir)
	}()

	return t
}

// Done is closed once the task has settled.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task settles.
func (t *Task) Wait() (*Report, error) {
	<-t.done
	return t.report, t.err
}

func analyse(ctx context.Context, exec Capturer, dir string) (*Report, error) {
	spec := Spec(dir)
	ctxlog.Debug(ctx, "starting dependency analysis", "spec", spec.String())

	out, res := exec.Output(ctx, spec)
	if !res.Started() {
		return nil, errors.Join(ErrAnalysis, res.Error)
	}

	report, err := Decode(out)
	if err != nil {
		// depcheck exits non-zero when it finds issues, so the exit code
		// only matters when there is no report.
		return nil, errors.Join(ErrAnalysis, err, res.Error, fmt.Errorf("exit code %d", res.ExitCode))
	}

	ctxlog.Debug(ctx, "dependency analysis finished", "exitCode", res.ExitCode, "clean", report.Clean())

	return report, nil
}

// Decode parses depcheck JSON output.
func Decode(out []byte) (*Report, error) {
	if len(strings.TrimSpace(string(out))) == 0 {
		return nil, fmt.Errorf("%w: empty output", ErrDecodeReport)
	}

	var r Report
	if err := yaml.Unmarshal(out, &r); err != nil {
		return nil, errors.Join(ErrDecodeReport, err)
	}

	return &r, nil
}

func sorted(s []string) []string {
	res := slices.Clone(s)
	slices.Sort(res)

	return res
}
