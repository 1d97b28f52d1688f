// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package commandregistry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/matt-FFFFFF/shorty/internal/color"
	"github.com/matt-FFFFFF/shorty/internal/commandspec"
	"github.com/matt-FFFFFF/shorty/internal/params"
)

// ErrNoParamSource is returned when a verb needs the parameter file and no source was given.
var ErrNoParamSource = errors.New("no parameter source")

// UsageError reports an invocation that does not match the verb's rule.
type UsageError struct {
	Verb string
	Hint color.Line
}

// Error implements the error interface.
func (e *UsageError) Error() string {
	return fmt.Sprintf("usage: %s", strings.TrimSpace(e.Hint.Text()))
}

// Resolution is the outcome of resolving an invocation.
type Resolution struct {
	Rule *Rule
	// Spec is invalid for builtin rules.
	Spec commandspec.Spec
	// Preview is the coloured command line shown before execution.
	Preview color.Line
	// ParamLine is the parameter file line used, or -1.
	ParamLine int
}

// Resolve turns an invocation into a command spec.
// The invocation is validated before the parameter source is consulted.
func (r *Registry) Resolve(ctx context.Context, inv Invocation, src ParamSource) (*Resolution, error) {
	rule, ok := r.Lookup(inv.Verb)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVerb, inv.Verb)
	}

	arg := inv.Arg(0)

	if rule.Arg != nil && rule.Arg.Required && arg == "" {
		return nil, r.usageError(rule)
	}

	res := &Resolution{
		Rule:      rule,
		ParamLine: -1,
	}

	if s := rule.Selector; s != nil {
		idx, ok := s.Line(arg)
		if !ok {
			return nil, r.usageError(rule)
		}

		res.ParamLine = idx
	}

	if rule.IsBuiltin() {
		return res, nil
	}

	if rule.Template.Shell != "" {
		res.Spec = commandspec.Shell(rule.Template.Shell)
		res.Preview = shellLine(rule.Template.Shell)

		return res, nil
	}

	var value string

	if rule.NeedsParams() {
		v, err := paramValue(ctx, src, res.ParamLine)
		if err != nil {
			return nil, err
		}

		value = v
	}

	argv := make([]string, 0, len(rule.Template.Words))
	preview := color.Line{}.Command(rule.Template.Program)

	for _, w := range rule.Template.Words {
		switch w.From {
		case FromLiteral:
			argv = append(argv, w.Text)
			preview = wordSegment(preview.Plain(" "), w.Text)
		case FromArg:
			if arg == "" && w.Optional {
				continue
			}

			argv = append(argv, w.Text+arg)
			preview = prefixSegment(preview.Plain(" "), w.Text).Placeholder(arg)
		case FromParam:
			argv = append(argv, w.Text+value)
			preview = prefixSegment(preview.Plain(" "), w.Text).Placeholder(value)
		}
	}

	res.Spec = commandspec.Program(rule.Template.Program, argv...)
	res.Preview = preview

	return res, nil
}

func paramValue(ctx context.Context, src ParamSource, index int) (string, error) {
	if src == nil {
		return "", errors.Join(params.ErrConfiguration, ErrNoParamSource)
	}

	lines, err := src.Lines(ctx)
	if err != nil {
		if errors.Is(err, params.ErrConfiguration) {
			return "", err
		}

		return "", errors.Join(params.ErrConfiguration, err)
	}

	return params.Lookup(lines, index)
}

func (r *Registry) usageError(rule *Rule) *UsageError {
	return &UsageError{
		Verb: rule.Token,
		Hint: r.helpLine(rule, len(rule.Token)+1),
	}
}
