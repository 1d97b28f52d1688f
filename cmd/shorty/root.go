// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/matt-FFFFFF/shorty"
	"github.com/matt-FFFFFF/shorty/internal/commandregistry"
	"github.com/matt-FFFFFF/shorty/internal/ctxlog"
	"github.com/matt-FFFFFF/shorty/internal/dispatch"
	"github.com/matt-FFFFFF/shorty/internal/params"
	"github.com/matt-FFFFFF/shorty/internal/scripts"
	"github.com/urfave/cli/v3"
)

const (
	paramsFlag   = "params"
	manifestFlag = "manifest"
	dryRunFlag   = "dry-run"
	paramsEnv    = "SHORTY_PARAMS"
	manifestEnv  = "SHORTY_MANIFEST"
	cliExitStr   = ""
)

// newRootCmd builds the CLI with one subcommand per registered verb.
// executor overrides the default process runner when not nil.
func newRootCmd(reg *commandregistry.Registry, executor commandregistry.Executor) *cli.Command {
	root := &cli.Command{
		Name:      "shorty",
		Usage:     "shorthand for the Angular, yarn, npm and git commands you type all day",
		UsageText: "shorty [global options] <verb> [arg1] [arg2]",
		Description: `shorty maps short verbs to longer toolchain commands.
Link targets and serve ports are read from the parameter file, one value per line,
kept next to the shorty binary (or set with --params). Locations using
go-getter syntax, such as git::https://host/repo//shorty.params, are downloaded first.`,
		Version:         fmt.Sprintf("%s (commit: %s)", shorty.Version, shorty.Commit),
		Writer:          os.Stdout,
		ErrWriter:       os.Stderr,
		Copyright:       "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
		HideHelp:        true,
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     paramsFlag,
				Aliases:  []string{"p"},
				Usage:    "Location of the parameter file. Supports go-getter syntax.",
				Sources:  cli.EnvVars(paramsEnv),
				OnlyOnce: true,
			},
			&cli.StringFlag{
				Name:      manifestFlag,
				Aliases:   []string{"m"},
				Usage:     "The package.json read by the show-scripts verb",
				Value:     scripts.DefaultManifest,
				Sources:   cli.EnvVars(manifestEnv),
				TakesFile: true,
				OnlyOnce:  true,
			},
			&cli.BoolFlag{
				Name:    dryRunFlag,
				Aliases: []string{"n"},
				Usage:   "Print the command instead of running it",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			// No verb matched a subcommand: the dispatcher prints help.
			return dispatchTokens(ctx, cmd, reg, executor, cmd.Args().Slice())
		},
		// An unknown flag in verb position is an unknown verb.
		OnUsageError: func(ctx context.Context, cmd *cli.Command, err error, _ bool) error {
			ctxlog.Debug(ctx, "cannot parse global flags, printing help", "error", err)
			return dispatchTokens(ctx, cmd, reg, executor, nil)
		},
	}

	for _, rule := range reg.Rules() {
		root.Commands = append(root.Commands, verbCmd(rule, reg, executor))
	}

	return root
}

func verbCmd(rule *commandregistry.Rule, reg *commandregistry.Registry, executor commandregistry.Executor) *cli.Command {
	var aliases []string
	if rule.Name != "" {
		aliases = []string{rule.Name}
	}

	return &cli.Command{
		Name:            rule.Token,
		Aliases:         aliases,
		Usage:           commandregistry.Synopsis(rule).Text(),
		Category:        rule.Group.String(),
		SkipFlagParsing: true,
		HideHelp:        true,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			tokens := append([]string{rule.Token}, cmd.Args().Slice()...)
			return dispatchTokens(ctx, cmd, reg, executor, tokens)
		},
	}
}

func dispatchTokens(
	ctx context.Context,
	cmd *cli.Command,
	reg *commandregistry.Registry,
	executor commandregistry.Executor,
	tokens []string,
) error {
	root := cmd.Root()

	opts := []dispatch.Option{
		dispatch.WithParams(params.Source{Location: paramsLocation(ctx, cmd.String(paramsFlag))}),
		dispatch.WithManifest(cmd.String(manifestFlag)),
		dispatch.WithDryRun(cmd.Bool(dryRunFlag)),
		dispatch.WithOutput(writerOr(root.Writer, os.Stdout), writerOr(root.ErrWriter, os.Stderr)),
	}

	if executor != nil {
		opts = append(opts, dispatch.WithExecutor(executor))
	}

	code := dispatch.New(reg, opts...).Dispatch(ctx, commandregistry.NewInvocation(tokens))
	if code != 0 {
		return cli.Exit(cliExitStr, code)
	}

	return nil
}

// paramsLocation returns the configured location, or the file next to the executable.
func paramsLocation(ctx context.Context, configured string) string {
	if configured != "" {
		return configured
	}

	p, err := params.DefaultPath()
	if err != nil {
		// Verbs that need the file report ErrNoLocation.
		ctxlog.Debug(ctx, "cannot locate parameter file", "error", err)
		return ""
	}

	return p
}

func writerOr(w, fallback io.Writer) io.Writer {
	if w == nil {
		return fallback
	}

	return w
}
