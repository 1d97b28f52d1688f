// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package commandregistry

import (
	"fmt"
	"io"
	"strings"

	"github.com/matt-FFFFFF/shorty/internal/color"
)

// WriteHelp prints every verb, primary group first.
func (r *Registry) WriteHelp(w io.Writer) error {
	width := tokenWidth(r.rules)

	for _, g := range []Group{GroupPrimary, GroupPackages} {
		if err := r.writeGroup(w, g, width); err != nil {
			return err
		}
	}

	return nil
}

// WriteGroupHelp prints the verbs of one group.
func (r *Registry) WriteGroupHelp(w io.Writer, g Group) error {
	return r.writeGroup(w, g, tokenWidth(r.Group(g)))
}

func (r *Registry) writeGroup(w io.Writer, g Group, width int) error {
	rules := r.Group(g)
	if len(rules) == 0 {
		return nil
	}

	if _, err := fmt.Fprintln(w, color.Line{}.Label(g.String())); err != nil {
		return err
	}

	for _, rule := range rules {
		if _, err := fmt.Fprintln(w, r.helpLine(rule, width)); err != nil {
			return err
		}
	}

	return nil
}

// helpLine renders "token: synopsis" with the token right aligned to width.
func (r *Registry) helpLine(rule *Rule, width int) color.Line {
	l := color.Line{}.Label(fmt.Sprintf("%*s: ", width, rule.Token))
	l = append(l, Synopsis(rule)...)

	if s := rule.Selector; s != nil && !s.Fixed {
		if accepted := s.Accepted(); len(accepted) > 0 {
			l = l.Plain(" ").Placeholder("[" + strings.Join(accepted, "|") + "]")
		}
	}

	return l
}

// Synopsis renders the template of a rule with placeholder names in place of values.
func Synopsis(rule *Rule) color.Line {
	tpl := rule.Template

	switch {
	case rule.IsBuiltin():
		return shellLine(rule.Description)
	case tpl.Shell != "":
		return shellLine(tpl.Shell)
	}

	l := color.Line{}.Command(tpl.Program)

	for _, w := range tpl.Words {
		l = l.Plain(" ")

		switch w.From {
		case FromLiteral:
			l = wordSegment(l, w.Text)
		case FromArg:
			name := "arg"
			if rule.Arg != nil && rule.Arg.Placeholder != "" {
				name = rule.Arg.Placeholder
			}

			if w.Optional {
				name = "[" + name + "]"
			}

			l = prefixSegment(l, w.Text).Placeholder(name)
		case FromParam:
			name := "value"
			if rule.Selector != nil && rule.Selector.Placeholder != "" {
				name = rule.Selector.Placeholder
			}

			l = prefixSegment(l, w.Text).Placeholder(name)
		}
	}

	return l
}

// shellLine colours a literal command line: words up to the first flag are
// the command, the rest are flags.
func shellLine(s string) color.Line {
	fields := strings.Fields(s)

	split := len(fields)

	for i, f := range fields {
		if strings.HasPrefix(f, "-") {
			split = i
			break
		}
	}

	var l color.Line

	if split > 0 {
		l = l.Command(strings.Join(fields[:split], " "))
	}

	if split < len(fields) {
		if split > 0 {
			l = l.Plain(" ")
		}

		l = l.Flag(strings.Join(fields[split:], " "))
	}

	return l
}

func wordSegment(l color.Line, word string) color.Line {
	if strings.HasPrefix(word, "-") {
		return l.Flag(word)
	}

	return l.Command(word)
}

func prefixSegment(l color.Line, prefix string) color.Line {
	if prefix == "" {
		return l
	}

	return wordSegment(l, prefix)
}

func tokenWidth(rules []*Rule) int {
	width := 0

	for _, r := range rules {
		width = max(width, len(r.Token))
	}

	return width
}
