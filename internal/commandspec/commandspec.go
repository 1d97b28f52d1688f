// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package commandspec describes a fully resolved command that is ready to run.
//
// A Spec is either a single line handed to the system shell, or a program name
// plus a list of literal arguments. User supplied values must only ever be
// carried by the program form, where each value stays one argv element and is
// never seen by a shell parser.
package commandspec

import (
	"slices"
	"strconv"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Form is the shape of a Spec.
type Form int

const (
	// FormInvalid is the zero value.
	FormInvalid Form = iota
	// FormShell is a line interpreted by the system shell.
	FormShell
	// FormProgram is a program name plus literal arguments.
	FormProgram
)

// String returns the form name.
func (f Form) String() string {
	switch f {
	case FormShell:
		return "shell"
	case FormProgram:
		return "program"
	default:
		return "invalid"
	}
}

// Spec is the resolved representation of what the execution collaborator runs.
type Spec struct {
	form    Form
	line    string
	program string
	args    []string
}

// Shell returns a Spec for a shell-interpreted line.
func Shell(line string) Spec {
	return Spec{form: FormShell, line: line}
}

// Program returns a Spec for program name with literal arguments.
func Program(name string, args ...string) Spec {
	return Spec{form: FormProgram, program: name, args: slices.Clone(args)}
}

// Form returns the form of the spec.
func (s Spec) Form() Form { return s.form }

// IsShell reports whether the spec is a shell line.
func (s Spec) IsShell() bool { return s.form == FormShell }

// Valid reports whether the spec can be executed.
func (s Spec) Valid() bool {
	switch s.form {
	case FormShell:
		return strings.TrimSpace(s.line) != ""
	case FormProgram:
		return s.program != ""
	default:
		return false
	}
}

// Line returns the shell line, or "" for program specs.
func (s Spec) Line() string { return s.line }

// Name returns the program name, or "" for shell specs.
func (s Spec) Name() string { return s.program }

// Args returns a copy of the program arguments.
func (s Spec) Args() []string { return slices.Clone(s.args) }

// Argv returns the program name followed by its arguments.
// For shell specs it returns the line as a single element.
func (s Spec) Argv() []string {
	if s.form == FormShell {
		return []string{s.line}
	}

	return slices.Concat([]string{s.program}, s.args)
}

// String renders the spec as a line that can be pasted into a shell.
// Program arguments are quoted so that each one stays a single word.
func (s Spec) String() string {
	if s.form != FormProgram {
		return s.line
	}

	words := make([]string, 0, len(s.args)+1)
	for _, w := range s.Argv() {
		words = append(words, Quote(w))
	}

	return strings.Join(words, " ")
}

// Quote quotes a single word for bash. Words that cannot be quoted,
// such as those containing NUL bytes, fall back to Go quoting.
func Quote(word string) string {
	q, err := syntax.Quote(word, syntax.LangBash)
	if err != nil {
		return strconv.Quote(word)
	}

	return q
}
