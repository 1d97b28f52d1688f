// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package verbs declares the verbs shorty ships with.
package verbs

import (
	"github.com/matt-FFFFFF/shorty/internal/commandregistry"
)

// Parameter file lines.
const (
	LineSharedLib = 0
	LineClient    = 1
	LineServe1    = 2
	LineServe2    = 3
	LineServe3    = 4
	LineTestPort  = 5
)

var linkSelector = commandregistry.Selector{
	Placeholder: "link-target",
	Choices: []commandregistry.Choice{
		{Token: "", Line: LineSharedLib},
		{Token: "s", Line: LineSharedLib},
		{Token: "c", Line: LineClient},
	},
}

var serveSelector = commandregistry.Selector{
	Placeholder: "port",
	Choices: []commandregistry.Choice{
		{Token: "", Line: LineServe1},
		{Token: "1", Line: LineServe1},
		{Token: "2", Line: LineServe2},
		{Token: "3", Line: LineServe3},
	},
}

var testSelector = commandregistry.Selector{
	Placeholder: "test-port",
	Fixed:       true,
	Choices:     []commandregistry.Choice{{Token: "", Line: LineTestPort}},
}

// Default returns a registry holding every verb.
func Default() *commandregistry.Registry {
	reg := commandregistry.New()
	Register(reg)

	return reg
}

// Register adds every verb to reg. It panics if any is already registered.
func Register(reg *commandregistry.Registry) {
	reg.MustRegister(Primary()...)
	reg.MustRegister(Packages()...)
}

// Primary returns the build, serve and git verbs.
func Primary() []commandregistry.Rule {
	return []commandregistry.Rule{
		shell("b", "build", "ng build"),
		shell("c", "cost-analysis", "cost-of-modules --no-install --include-dev"),
		{
			Token:       "d",
			Name:        "dependency-check",
			Description: "depcheck --ignores @types/*",
			Builtin:     DependencyCheck,
		},
		shell("ng", "global-list", "npm ls -g --depth=0"),
		withArg("gc", "cherry-pick", "commit-hash", "git", "cherry-pick"),
		link("l", "link"),
		link("ul", "unlink"),
		{
			Token:       "sc",
			Name:        "show-scripts",
			Description: "package.json scripts",
			Builtin:     ShowScripts,
		},
		{
			Token: "s",
			Name:  "serve",
			Template: commandregistry.Template{
				Program: "ng",
				Words: []commandregistry.Word{
					commandregistry.Lit("serve"),
					commandregistry.ParamWord("--port="),
					commandregistry.Lit("--disable-host-check"),
				},
			},
			Selector: &serveSelector,
		},
		{
			Token: "t",
			Name:  "test",
			Template: commandregistry.Template{
				Program: "ng",
				Words: []commandregistry.Word{
					commandregistry.Lit("test"),
					commandregistry.OptionalArgWord(),
					commandregistry.ParamWord("--port="),
				},
			},
			Arg:      &commandregistry.ArgSpec{Placeholder: "project"},
			Selector: &testSelector,
		},
		shell("v", "version", "ng version"),
		shell("w", "watch", "ng build --watch"),
		{
			Token:       "h",
			Name:        "help",
			Description: "this list",
			Builtin:     Help,
		},
	}
}

// Packages returns the yarn verbs.
func Packages() []commandregistry.Rule {
	rules := []commandregistry.Rule{
		{
			Token:       "y",
			Name:        "packages",
			Description: "package manager commands",
			Builtin:     PackageHelp,
		},
		withArg("gadd", "global-add", "package-name", "yarn", "global", "add"),
		withArg("grm", "global-remove", "package-name", "yarn", "global", "remove"),
		withArg("yi", "add", "package-name", "yarn", "add"),
		{
			Token: "yadd",
			Name:  "add-dev",
			Template: commandregistry.Template{
				Program: "yarn",
				Words: []commandregistry.Word{
					commandregistry.Lit("add"),
					commandregistry.ArgWord(),
					commandregistry.Lit("-D"),
				},
			},
			Arg: &commandregistry.ArgSpec{Placeholder: "package-name", Required: true},
		},
		withArg("yr", "remove", "package-name", "yarn", "remove"),
		shell("ya", "audit", "yarn audit"),
		shell("yg", "global-packages", "yarn global list"),
		{
			Token: "yo",
			Name:  "outdated",
			Template: commandregistry.Template{
				Program: "yarn",
				Words:   []commandregistry.Word{commandregistry.Lit("outdated")},
			},
			TolerateNotFound: true,
		},
		shell("ys", "start", "yarn start"),
	}

	for i := range rules {
		rules[i].Group = commandregistry.GroupPackages
	}

	return rules
}

func shell(token, name, line string) commandregistry.Rule {
	return commandregistry.Rule{
		Token:    token,
		Name:     name,
		Template: commandregistry.Template{Shell: line},
	}
}

// withArg declares program followed by literal words and a required argument.
func withArg(token, name, placeholder, program string, words ...string) commandregistry.Rule {
	ws := make([]commandregistry.Word, 0, len(words)+1)
	for _, w := range words {
		ws = append(ws, commandregistry.Lit(w))
	}

	ws = append(ws, commandregistry.ArgWord())

	return commandregistry.Rule{
		Token:    token,
		Name:     name,
		Template: commandregistry.Template{Program: program, Words: ws},
		Arg:      &commandregistry.ArgSpec{Placeholder: placeholder, Required: true},
	}
}

func link(token, name string) commandregistry.Rule {
	return commandregistry.Rule{
		Token: token,
		Name:  name,
		Template: commandregistry.Template{
			Program: "yarn",
			Words:   []commandregistry.Word{commandregistry.Lit(name), commandregistry.ParamWord("")},
		},
		Selector: &linkSelector,
	}
}
