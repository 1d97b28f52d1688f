// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package params

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matt-FFFFFF/shorty/internal/ctxlog"
	"github.com/spf13/afero"
)

// FileName is the name of the parameter file next to the executable.
const FileName = "shorty.params"

var (
	// ErrConfiguration is returned when the parameter file is missing, unreadable or too short.
	ErrConfiguration = errors.New("configuration error")
	// ErrNoLocation is returned when no parameter file location is known.
	ErrNoLocation = errors.New("no parameter file location")
	// ErrIndexOutOfRange is returned when the file has fewer lines than requested.
	ErrIndexOutOfRange = errors.New("parameter file has too few lines")
	// ErrBlankValue is returned when the requested line is blank.
	ErrBlankValue = errors.New("parameter file line is blank")
)

// FsFactory returns the filesystem local parameter files are read from.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// executable is stubbed in tests.
var executable = os.Executable

// DefaultPath returns the parameter file path in the directory of the running executable.
func DefaultPath() (string, error) {
	exe, err := executable()
	if err != nil {
		return "", errors.Join(ErrConfiguration, ErrNoLocation, err)
	}

	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	return filepath.Join(filepath.Dir(exe), FileName), nil
}

// File is the parsed parameter file.
type File struct {
	Location string
	lines    []string
}

// Parse splits content into parameter lines.
func Parse(location string, content []byte) File {
	raw := strings.Split(string(content), "\n")
	if n := len(raw); n > 0 && strings.TrimSpace(raw[n-1]) == "" {
		raw = raw[:n-1]
	}

	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = strings.TrimSpace(strings.TrimSuffix(l, "\r"))
	}

	return File{Location: location, lines: lines}
}

// Len returns the number of lines.
func (f File) Len() int { return len(f.lines) }

// Lines returns a copy of the lines.
func (f File) Lines() []string { return slices.Clone(f.lines) }

// Value returns the value at line index.
func (f File) Value(index int) (string, error) {
	v, err := Lookup(f.lines, index)
	if err != nil {
		return "", fmt.Errorf("%s: %w", f.Location, err)
	}

	return v, nil
}

// Lookup returns lines[index], failing with ErrConfiguration when the line
// does not exist or is blank.
func Lookup(lines []string, index int) (string, error) {
	if index < 0 || index >= len(lines) {
		return "", errors.Join(
			ErrConfiguration,
			fmt.Errorf("%w: %d line(s), line %d requested", ErrIndexOutOfRange, len(lines), index+1),
		)
	}

	if lines[index] == "" {
		return "", errors.Join(ErrConfiguration, fmt.Errorf("%w: line %d", ErrBlankValue, index+1))
	}

	return lines[index], nil
}

// Source loads the parameter file from Location on demand.
type Source struct {
	Location string
}

// Load reads and parses the parameter file.
func (s Source) Load(ctx context.Context) (File, error) {
	if s.Location == "" {
		return File{}, errors.Join(ErrConfiguration, ErrNoLocation)
	}

	var (
		content []byte
		err     error
	)

	if IsRemote(s.Location) {
		ctxlog.Debug(ctx, "fetching parameter file", "location", s.Location)
		content, err = getURL(ctx, s.Location)
	} else {
		ctxlog.Debug(ctx, "reading parameter file", "path", s.Location)
		content, err = afero.ReadFile(FsFactory(), s.Location)
	}

	if err != nil {
		return File{}, errors.Join(ErrConfiguration, fmt.Errorf("cannot read parameter file %s: %w", s.Location, err))
	}

	return Parse(s.Location, content), nil
}

// Lines reads the parameter file and returns its lines.
func (s Source) Lines(ctx context.Context) ([]string, error) {
	f, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	return f.Lines(), nil
}
