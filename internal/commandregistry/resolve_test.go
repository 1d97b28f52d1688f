// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package commandregistry

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/matt-FFFFFF/shorty/internal/color"
	"github.com/matt-FFFFFF/shorty/internal/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeParams struct {
	lines []string
	err   error
	calls int
}

func (f *fakeParams) Lines(context.Context) ([]string, error) {
	f.calls++
	return f.lines, f.err
}

func testRegistry() *Registry {
	return New().MustRegister(
		Rule{Token: "b", Name: "build", Template: Template{Shell: "ng build"}},
		Rule{
			Token:    "gc",
			Name:     "cherry-pick",
			Template: Template{Program: "git", Words: []Word{Lit("cherry-pick"), ArgWord()}},
			Arg:      &ArgSpec{Placeholder: "commit-hash", Required: true},
		},
		Rule{
			Token:    "l",
			Name:     "link",
			Template: Template{Program: "yarn", Words: []Word{Lit("link"), ParamWord("")}},
			Selector: &Selector{
				Placeholder: "link-target",
				Choices:     []Choice{{Token: "", Line: 0}, {Token: "s", Line: 0}, {Token: "c", Line: 1}},
			},
		},
		Rule{
			Token:    "s",
			Name:     "serve",
			Template: Template{Program: "ng", Words: []Word{Lit("serve"), ParamWord("--port="), Lit("--disable-host-check")}},
			Selector: &Selector{
				Placeholder: "port",
				Choices:     []Choice{{Token: "", Line: 2}, {Token: "1", Line: 2}, {Token: "2", Line: 3}, {Token: "3", Line: 4}},
			},
		},
		Rule{
			Token:    "t",
			Name:     "test",
			Template: Template{Program: "ng", Words: []Word{Lit("test"), OptionalArgWord(), ParamWord("--port=")}},
			Arg:      &ArgSpec{Placeholder: "project"},
			Selector: &Selector{Placeholder: "test-port", Fixed: true, Choices: []Choice{{Token: "", Line: 5}}},
		},
		Rule{
			Token:    "yi",
			Name:     "add",
			Group:    GroupPackages,
			Template: Template{Program: "yarn", Words: []Word{Lit("add"), ArgWord()}},
			Arg:      &ArgSpec{Placeholder: "package-name", Required: true},
		},
		Rule{Token: "h", Name: "help", Description: "help", Builtin: noopBuiltin},
	)
}

func sampleParams() *fakeParams {
	return &fakeParams{lines: []string{"pkgA", "pkgB", "4200", "4201", "4202", "4203"}}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		tokens   []string
		wantArgv []string
		wantLine int
	}{
		{name: "cherry-pick", tokens: []string{"gc", "abc123"}, wantArgv: []string{"git", "cherry-pick", "abc123"}, wantLine: -1},
		{name: "long name alias", tokens: []string{"cherry-pick", "abc123"}, wantArgv: []string{"git", "cherry-pick", "abc123"}, wantLine: -1},
		{name: "link default", tokens: []string{"l"}, wantArgv: []string{"yarn", "link", "pkgA"}, wantLine: 0},
		{name: "link shared", tokens: []string{"l", "s"}, wantArgv: []string{"yarn", "link", "pkgA"}, wantLine: 0},
		{name: "link client", tokens: []string{"l", "c"}, wantArgv: []string{"yarn", "link", "pkgB"}, wantLine: 1},
		{name: "serve default", tokens: []string{"s"}, wantArgv: []string{"ng", "serve", "--port=4200", "--disable-host-check"}, wantLine: 2},
		{name: "serve 1", tokens: []string{"s", "1"}, wantArgv: []string{"ng", "serve", "--port=4200", "--disable-host-check"}, wantLine: 2},
		{name: "serve 2", tokens: []string{"s", "2"}, wantArgv: []string{"ng", "serve", "--port=4201", "--disable-host-check"}, wantLine: 3},
		{name: "serve 3", tokens: []string{"s", "3"}, wantArgv: []string{"ng", "serve", "--port=4202", "--disable-host-check"}, wantLine: 4},
		{name: "test without project", tokens: []string{"t"}, wantArgv: []string{"ng", "test", "--port=4203"}, wantLine: 5},
		{name: "test with project", tokens: []string{"t", "app"}, wantArgv: []string{"ng", "test", "app", "--port=4203"}, wantLine: 5},
		{name: "extra arguments are ignored", tokens: []string{"gc", "abc123", "def456"}, wantArgv: []string{"git", "cherry-pick", "abc123"}, wantLine: -1},
		{
			name:     "hostile argument stays one element",
			tokens:   []string{"yi", "left-pad; rm -rf ."},
			wantArgv: []string{"yarn", "add", "left-pad; rm -rf ."},
			wantLine: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := testRegistry().Resolve(context.Background(), NewInvocation(tt.tokens), sampleParams())
			require.NoError(t, err)
			assert.False(t, res.Spec.IsShell())
			assert.Equal(t, tt.wantArgv, res.Spec.Argv())
			assert.Equal(t, tt.wantLine, res.ParamLine)
		})
	}
}

func TestResolveServeDefaultMatchesOne(t *testing.T) {
	reg := testRegistry()

	a, err := reg.Resolve(context.Background(), NewInvocation([]string{"s"}), sampleParams())
	require.NoError(t, err)

	b, err := reg.Resolve(context.Background(), NewInvocation([]string{"s", "1"}), sampleParams())
	require.NoError(t, err)

	assert.Equal(t, a.ParamLine, b.ParamLine)
	assert.Equal(t, a.Spec.Argv(), b.Spec.Argv())
}

func TestResolveShell(t *testing.T) {
	src := sampleParams()

	res, err := testRegistry().Resolve(context.Background(), NewInvocation([]string{"b", "ignored"}), src)
	require.NoError(t, err)
	assert.True(t, res.Spec.IsShell())
	assert.Equal(t, "ng build", res.Spec.Line())
	assert.Equal(t, "ng build", res.Preview.Text())
	assert.Zero(t, src.calls, "shell verbs never read the parameter file")
}

func TestResolveBuiltin(t *testing.T) {
	res, err := testRegistry().Resolve(context.Background(), NewInvocation([]string{"h"}), nil)
	require.NoError(t, err)
	assert.True(t, res.Rule.IsBuiltin())
	assert.False(t, res.Spec.Valid())
}

func TestResolveUsageErrors(t *testing.T) {
	tests := []struct {
		name     string
		tokens   []string
		wantHint string
	}{
		{name: "missing commit hash", tokens: []string{"gc"}, wantHint: "gc: git cherry-pick commit-hash"},
		{name: "missing package", tokens: []string{"yi"}, wantHint: "yi: yarn add package-name"},
		{name: "unknown serve variant", tokens: []string{"s", "9"}, wantHint: "s: ng serve --port=port --disable-host-check [1|2|3]"},
		{name: "unknown link target", tokens: []string{"l", "x"}, wantHint: "l: yarn link link-target [s|c]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := sampleParams()

			_, err := testRegistry().Resolve(context.Background(), NewInvocation(tt.tokens), src)

			var uerr *UsageError
			require.True(t, errors.As(err, &uerr), "got %v", err)
			assert.Equal(t, tt.tokens[0], uerr.Verb)
			assert.Equal(t, tt.wantHint, strings.TrimSpace(uerr.Hint.Text()))
			assert.Zero(t, src.calls, "usage is checked before the parameter file is read")
		})
	}
}

func TestResolveUsageErrorWinsOverMissingFile(t *testing.T) {
	src := &fakeParams{err: errors.Join(params.ErrConfiguration, errors.New("missing"))}

	_, err := testRegistry().Resolve(context.Background(), NewInvocation([]string{"s", "9"}), src)

	var uerr *UsageError
	assert.True(t, errors.As(err, &uerr))
	assert.NotErrorIs(t, err, params.ErrConfiguration)
}

func TestResolveConfigurationErrors(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		src    ParamSource
	}{
		{name: "missing file", tokens: []string{"l"}, src: &fakeParams{err: errors.Join(params.ErrConfiguration, errors.New("no such file"))}},
		{name: "unwrapped source error", tokens: []string{"l"}, src: &fakeParams{err: errors.New("boom")}},
		{name: "truncated file", tokens: []string{"s", "3"}, src: &fakeParams{lines: []string{"pkgA", "pkgB", "4200"}}},
		{name: "blank line", tokens: []string{"l", "c"}, src: &fakeParams{lines: []string{"pkgA", ""}}},
		{name: "no source", tokens: []string{"t"}, src: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testRegistry().Resolve(context.Background(), NewInvocation(tt.tokens), tt.src)
			assert.ErrorIs(t, err, params.ErrConfiguration)
		})
	}
}

func TestResolveUnknownVerb(t *testing.T) {
	for _, verb := range []string{"", "zzz", "Build"} {
		_, err := testRegistry().Resolve(context.Background(), Invocation{Verb: verb}, nil)
		assert.ErrorIs(t, err, ErrUnknownVerb, verb)
	}
}

func TestResolvePreview(t *testing.T) {
	res, err := testRegistry().Resolve(context.Background(), NewInvocation([]string{"s", "2"}), sampleParams())
	require.NoError(t, err)

	assert.Equal(t, "ng serve --port=4201 --disable-host-check", res.Preview.Text())
	assert.Equal(t, []string{"4201"}, res.Preview.Segments(color.RolePlaceholder))
	assert.Equal(t, []string{"--port=", "--disable-host-check"}, res.Preview.Segments(color.RoleFlag))
}

func TestUsageErrorMessage(t *testing.T) {
	_, err := testRegistry().Resolve(context.Background(), NewInvocation([]string{"gc"}), nil)
	require.Error(t, err)
	assert.Equal(t, "usage: gc: git cherry-pick commit-hash", err.Error())
}

func TestWriteHelp(t *testing.T) {
	restore := color.SetEnabled(false)
	defer restore()

	var buf bytes.Buffer
	require.NoError(t, testRegistry().WriteHelp(&buf))

	want := strings.Join([]string{
		"Commands:",
		" b: ng build",
		"gc: git cherry-pick commit-hash",
		" l: yarn link link-target [s|c]",
		" s: ng serve --port=port --disable-host-check [1|2|3]",
		" t: ng test [project] --port=test-port",
		" h: help",
		"Package manager (yarn):",
		"yi: yarn add package-name",
		"",
	}, "\n")

	assert.Equal(t, want, buf.String())
}

func TestWriteGroupHelp(t *testing.T) {
	restore := color.SetEnabled(false)
	defer restore()

	var buf bytes.Buffer
	require.NoError(t, testRegistry().WriteGroupHelp(&buf, GroupPackages))
	assert.Equal(t, "Package manager (yarn):\nyi: yarn add package-name\n", buf.String())
}

func TestSynopsisRoles(t *testing.T) {
	rule, ok := testRegistry().Lookup("gc")
	require.True(t, ok)

	l := Synopsis(rule)
	assert.Equal(t, []string{"git", "cherry-pick"}, l.Segments(color.RoleCommand))
	assert.Equal(t, []string{"commit-hash"}, l.Segments(color.RolePlaceholder))

	shell := shellLine("cost-of-modules --no-install --include-dev")
	assert.Equal(t, []string{"cost-of-modules"}, shell.Segments(color.RoleCommand))
	assert.Equal(t, []string{"--no-install --include-dev"}, shell.Segments(color.RoleFlag))
}
