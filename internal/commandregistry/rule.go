// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package commandregistry

import (
	"context"
	"io"

	"github.com/matt-FFFFFF/shorty/internal/commandspec"
	"github.com/matt-FFFFFF/shorty/internal/runner"
)

// Group controls where a verb is listed in help.
type Group int

const (
	// GroupPrimary holds the build, serve and git verbs.
	GroupPrimary Group = iota
	// GroupPackages holds the package manager verbs.
	GroupPackages
)

// String returns the help heading of the group.
func (g Group) String() string {
	switch g {
	case GroupPrimary:
		return "Commands:"
	case GroupPackages:
		return "Package manager (yarn):"
	default:
		return "Other:"
	}
}

// Source is where the value of a Word comes from.
type Source int

const (
	// FromLiteral uses Word.Text as is.
	FromLiteral Source = iota
	// FromArg appends the first positional argument to Word.Text.
	FromArg
	// FromParam appends the selected parameter file line to Word.Text.
	FromParam
)

// Word is one argv element of a program template.
type Word struct {
	Text     string
	From     Source
	Optional bool
}

// Lit returns a literal word.
func Lit(text string) Word { return Word{Text: text} }

// ArgWord returns a word filled from the positional argument.
func ArgWord() Word { return Word{From: FromArg} }

// OptionalArgWord returns a word filled from the positional argument, omitted when it is absent.
func OptionalArgWord() Word { return Word{From: FromArg, Optional: true} }

// ParamWord returns a word filled from the parameter file, prefixed with text.
func ParamWord(prefix string) Word { return Word{Text: prefix, From: FromParam} }

// Template describes the command a rule resolves to.
// Exactly one of Shell or Program is set.
type Template struct {
	Shell   string
	Program string
	Words   []Word
}

// ArgSpec describes the positional argument of a verb.
type ArgSpec struct {
	Placeholder string
	Required    bool
}

// Choice maps a discriminator token to a parameter file line index.
// An empty Token is the entry used when the discriminator is absent.
type Choice struct {
	Token string
	Line  int
}

// Selector is the exhaustive discriminator table of a verb that reads the parameter file.
type Selector struct {
	Placeholder string
	Choices     []Choice
	// Fixed selectors ignore the command line and always use the "" entry.
	Fixed bool
}

// Line returns the line index for the discriminator token.
func (s *Selector) Line(token string) (int, bool) {
	if s.Fixed {
		token = ""
	}

	for _, c := range s.Choices {
		if c.Token == token {
			return c.Line, true
		}
	}

	return 0, false
}

// Accepted returns the discriminator tokens accepted on the command line.
func (s *Selector) Accepted() []string {
	res := make([]string, 0, len(s.Choices))

	for _, c := range s.Choices {
		if c.Token != "" {
			res = append(res, c.Token)
		}
	}

	return res
}

// ParamSource supplies parameter file lines.
type ParamSource interface {
	Lines(ctx context.Context) ([]string, error)
}

// Executor runs command specs.
type Executor interface {
	Run(ctx context.Context, spec commandspec.Spec) runner.Result
	Output(ctx context.Context, spec commandspec.Spec) ([]byte, runner.Result)
}

// Session is what a builtin verb gets to work with.
type Session interface {
	Out() io.Writer
	ErrOut() io.Writer
	Registry() *Registry
	ManifestPath() string
	Executor() Executor
	Params() ParamSource
}

// BuiltinFunc runs a verb in process.
// Configuration errors are reported by the caller; other errors are expected
// to have been reported to the user by the builtin itself.
type BuiltinFunc func(ctx context.Context, s Session, inv Invocation) error

// Rule declares one verb.
type Rule struct {
	Token       string
	Name        string
	Description string
	Group       Group
	Template    Template
	Arg         *ArgSpec
	Selector    *Selector
	// TolerateNotFound swallows a launch failure caused by a missing program.
	TolerateNotFound bool
	Builtin          BuiltinFunc
}

// IsBuiltin reports whether the rule runs in process.
func (r *Rule) IsBuiltin() bool { return r.Builtin != nil }

// NeedsParams reports whether resolving the rule reads the parameter file.
func (r *Rule) NeedsParams() bool {
	if r.Selector == nil {
		return false
	}

	for _, w := range r.Template.Words {
		if w.From == FromParam {
			return true
		}
	}

	return false
}

// Invocation is the verb and positional arguments of one command line.
type Invocation struct {
	Verb string
	Args []string
}

// NewInvocation splits command line tokens into verb and arguments.
func NewInvocation(tokens []string) Invocation {
	if len(tokens) == 0 {
		return Invocation{}
	}

	args := make([]string, len(tokens)-1)
	copy(args, tokens[1:])

	return Invocation{Verb: tokens[0], Args: args}
}

// Arg returns the i-th positional argument, or "" when absent.
func (inv Invocation) Arg(i int) string {
	if i < 0 || i >= len(inv.Args) {
		return ""
	}

	return inv.Args[i]
}
