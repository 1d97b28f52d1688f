// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package verbs

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/matt-FFFFFF/shorty/internal/color"
	"github.com/matt-FFFFFF/shorty/internal/commandregistry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticParams []string

func (p staticParams) Lines(context.Context) ([]string, error) { return p, nil }

var sample = staticParams{"pkgA", "pkgB", "4200", "4201", "4202", "4203"}

var helpOrder = []string{
	"b", "c", "d", "ng", "gc", "l", "ul", "sc", "s", "t", "v", "w", "h",
	"y", "gadd", "grm", "yi", "yadd", "yr", "ya", "yg", "yo", "ys",
}

func resolve(t *testing.T, tokens ...string) (*commandregistry.Resolution, error) {
	t.Helper()
	return Default().Resolve(context.Background(), commandregistry.NewInvocation(tokens), sample)
}

func TestDefaultDeclarationOrder(t *testing.T) {
	var tokens []string
	for _, r := range Default().Rules() {
		tokens = append(tokens, r.Token)
	}

	assert.Equal(t, helpOrder, tokens)
}

func TestHelpListsEveryTokenOnce(t *testing.T) {
	restore := color.SetEnabled(false)
	defer restore()

	var buf bytes.Buffer
	require.NoError(t, Default().WriteHelp(&buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Equal(t, "Commands:", lines[0])

	var tokens []string

	for _, l := range lines {
		tok, _, ok := strings.Cut(strings.TrimSpace(l), ": ")
		if !ok {
			continue
		}

		tokens = append(tokens, tok)
	}

	assert.Equal(t, helpOrder, tokens)
	assert.Contains(t, lines, "Package manager (yarn):")
}

func TestResolveCatalogue(t *testing.T) {
	tests := []struct {
		tokens []string
		shell  string
		argv   []string
	}{
		{tokens: []string{"b"}, shell: "ng build"},
		{tokens: []string{"c"}, shell: "cost-of-modules --no-install --include-dev"},
		{tokens: []string{"ng"}, shell: "npm ls -g --depth=0"},
		{tokens: []string{"gc", "abc123"}, argv: []string{"git", "cherry-pick", "abc123"}},
		{tokens: []string{"l"}, argv: []string{"yarn", "link", "pkgA"}},
		{tokens: []string{"l", "s"}, argv: []string{"yarn", "link", "pkgA"}},
		{tokens: []string{"l", "c"}, argv: []string{"yarn", "link", "pkgB"}},
		{tokens: []string{"ul", "c"}, argv: []string{"yarn", "unlink", "pkgB"}},
		{tokens: []string{"s"}, argv: []string{"ng", "serve", "--port=4200", "--disable-host-check"}},
		{tokens: []string{"s", "1"}, argv: []string{"ng", "serve", "--port=4200", "--disable-host-check"}},
		{tokens: []string{"s", "2"}, argv: []string{"ng", "serve", "--port=4201", "--disable-host-check"}},
		{tokens: []string{"s", "3"}, argv: []string{"ng", "serve", "--port=4202", "--disable-host-check"}},
		{tokens: []string{"t"}, argv: []string{"ng", "test", "--port=4203"}},
		{tokens: []string{"t", "lib"}, argv: []string{"ng", "test", "lib", "--port=4203"}},
		{tokens: []string{"v"}, shell: "ng version"},
		{tokens: []string{"w"}, shell: "ng build --watch"},
		{tokens: []string{"gadd", "npm-check"}, argv: []string{"yarn", "global", "add", "npm-check"}},
		{tokens: []string{"grm", "npm-check"}, argv: []string{"yarn", "global", "remove", "npm-check"}},
		{tokens: []string{"yi", "left-pad; rm -rf ."}, argv: []string{"yarn", "add", "left-pad; rm -rf ."}},
		{tokens: []string{"yadd", "jest"}, argv: []string{"yarn", "add", "jest", "-D"}},
		{tokens: []string{"yr", "jest"}, argv: []string{"yarn", "remove", "jest"}},
		{tokens: []string{"ya"}, shell: "yarn audit"},
		{tokens: []string{"yg"}, shell: "yarn global list"},
		{tokens: []string{"yo"}, argv: []string{"yarn", "outdated"}},
		{tokens: []string{"ys"}, shell: "yarn start"},
		{tokens: []string{"serve", "2"}, argv: []string{"ng", "serve", "--port=4201", "--disable-host-check"}},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.tokens, " "), func(t *testing.T) {
			res, err := resolve(t, tt.tokens...)
			require.NoError(t, err)

			if tt.shell != "" {
				assert.True(t, res.Spec.IsShell())
				assert.Equal(t, tt.shell, res.Spec.Line())

				return
			}

			assert.False(t, res.Spec.IsShell())
			assert.Equal(t, tt.argv, res.Spec.Argv())
		})
	}
}

func TestOneArgumentVerbsRequireTheirArgument(t *testing.T) {
	for _, verb := range []string{"gc", "gadd", "grm", "yi", "yadd", "yr"} {
		t.Run(verb, func(t *testing.T) {
			_, err := resolve(t, verb)

			var uerr *commandregistry.UsageError
			require.True(t, errors.As(err, &uerr))
			assert.Equal(t, verb, uerr.Verb)
		})
	}
}

func TestDiscriminatorValidation(t *testing.T) {
	for _, tokens := range [][]string{{"s", "9"}, {"s", "0"}, {"l", "x"}, {"ul", "1"}} {
		_, err := resolve(t, tokens...)

		var uerr *commandregistry.UsageError
		assert.True(t, errors.As(err, &uerr), tokens)
	}
}

func TestOnlyOutdatedToleratesNotFound(t *testing.T) {
	for _, r := range Default().Rules() {
		assert.Equal(t, r.Token == "yo", r.TolerateNotFound, r.Token)
	}
}

func TestUserInputNeverReachesAShell(t *testing.T) {
	for _, r := range Default().Rules() {
		if r.Template.Shell == "" {
			continue
		}

		assert.Nil(t, r.Arg, r.Token)
		assert.Nil(t, r.Selector, r.Token)
	}
}

func TestBuiltins(t *testing.T) {
	for _, tok := range []string{"d", "sc", "h", "y"} {
		rule, ok := Default().Lookup(tok)
		require.True(t, ok)
		assert.True(t, rule.IsBuiltin(), tok)
	}
}
