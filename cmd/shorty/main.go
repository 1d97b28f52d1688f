// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main is the shorty command-line interface (CLI).
package main

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/shorty/internal/ctxlog"
	"github.com/matt-FFFFFF/shorty/internal/signalbroker"
	"github.com/matt-FFFFFF/shorty/internal/verbs"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)
	defer cancel()

	sigCh := signalbroker.New(ctx)

	go signalbroker.Watch(ctx, sigCh, cancel)

	err := newRootCmd(verbs.Default(), nil).Run(ctx, os.Args) // exit codes are handled by the cli framework

	if ctx.Err() != nil {
		ctxlog.Error(ctx, "command terminated due to cancellation", "error", ctx.Err())
		os.Exit(1)
	}

	if err != nil {
		ctxlog.Error(ctx, "command failed", "error", err)
		os.Exit(1)
	}
}
