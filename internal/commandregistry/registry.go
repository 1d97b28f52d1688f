// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package commandregistry

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

var (
	// ErrUnknownVerb is returned when a verb is not registered.
	ErrUnknownVerb = errors.New("unknown verb")
	// ErrDuplicateVerb is returned when a token or name is registered twice.
	ErrDuplicateVerb = errors.New("duplicate verb")
	// ErrInvalidRule is returned when a rule cannot be registered.
	ErrInvalidRule = errors.New("invalid rule")
	// ErrUnsafeTemplate is returned when a shell template would need user or file supplied values.
	ErrUnsafeTemplate = errors.New("shell templates may only contain literal text")
)

// Registry holds the registered verbs in declaration order.
type Registry struct {
	rules []*Rule
	index map[string]*Rule
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		index: make(map[string]*Rule),
	}
}

// Register validates and adds rules. Either all rules are added or none.
func (r *Registry) Register(rules ...Rule) error {
	var result *multierror.Error

	pending := make(map[string]struct{})

	for i := range rules {
		rule := &rules[i]

		if err := validate(rule); err != nil {
			result = multierror.Append(result, err)
		}

		for _, key := range []string{rule.Token, rule.Name} {
			if key == "" {
				continue
			}

			_, seen := pending[key]
			if _, exists := r.index[key]; exists || seen {
				result = multierror.Append(result, fmt.Errorf("%w: %s", ErrDuplicateVerb, key))

				continue
			}

			pending[key] = struct{}{}
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return err
	}

	for i := range rules {
		rule := rules[i]
		r.rules = append(r.rules, &rule)
		r.index[rule.Token] = &rule

		if rule.Name != "" {
			r.index[rule.Name] = &rule
		}
	}

	return nil
}

// MustRegister is Register for static catalogues. It panics on error.
func (r *Registry) MustRegister(rules ...Rule) *Registry {
	if err := r.Register(rules...); err != nil {
		panic(err)
	}

	return r
}

// Lookup finds a rule by token or long name.
func (r *Registry) Lookup(verb string) (*Rule, bool) {
	rule, ok := r.index[verb]
	return rule, ok
}

// Rules returns every rule in declaration order.
func (r *Registry) Rules() []*Rule {
	res := make([]*Rule, len(r.rules))
	copy(res, r.rules)

	return res
}

// Group returns the rules of one group in declaration order.
func (r *Registry) Group(g Group) []*Rule {
	var res []*Rule

	for _, rule := range r.rules {
		if rule.Group == g {
			res = append(res, rule)
		}
	}

	return res
}

func validate(rule *Rule) error {
	var result *multierror.Error

	if rule.Token == "" {
		return fmt.Errorf("%w: empty token", ErrInvalidRule)
	}

	tpl := rule.Template
	hasShell := tpl.Shell != ""
	hasProgram := tpl.Program != ""

	switch {
	case rule.Builtin != nil && (hasShell || hasProgram):
		result = multierror.Append(result, fmt.Errorf("%w: %s: builtin with a template", ErrInvalidRule, rule.Token))
	case rule.Builtin == nil && hasShell == hasProgram:
		result = multierror.Append(result, fmt.Errorf("%w: %s: exactly one of shell or program is required", ErrInvalidRule, rule.Token))
	}

	if hasShell {
		if rule.Arg != nil || rule.Selector != nil || len(tpl.Words) > 0 {
			result = multierror.Append(result, fmt.Errorf("%w: %s", ErrUnsafeTemplate, rule.Token))
		}
	}

	var argWords, paramWords int

	for _, w := range tpl.Words {
		switch w.From {
		case FromArg:
			argWords++
		case FromParam:
			paramWords++
		}
	}

	if argWords > 0 && rule.Arg == nil {
		result = multierror.Append(result, fmt.Errorf("%w: %s: argument word without an argument", ErrInvalidRule, rule.Token))
	}

	if paramWords > 0 && rule.Selector == nil {
		result = multierror.Append(result, fmt.Errorf("%w: %s: parameter word without a selector", ErrInvalidRule, rule.Token))
	}

	if s := rule.Selector; s != nil {
		if _, ok := s.Line(""); !ok {
			result = multierror.Append(result, fmt.Errorf("%w: %s: selector has no default entry", ErrInvalidRule, rule.Token))
		}

		// The discriminator and the argument share the first position.
		if !s.Fixed && rule.Arg != nil {
			result = multierror.Append(result, fmt.Errorf("%w: %s: argument and discriminator both read position 1", ErrInvalidRule, rule.Token))
		}

		for _, c := range s.Choices {
			if c.Line < 0 {
				result = multierror.Append(result, fmt.Errorf("%w: %s: negative line %d", ErrInvalidRule, rule.Token, c.Line))
			}
		}
	}

	return result.ErrorOrNil()
}
