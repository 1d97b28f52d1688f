// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package signalbroker relays OS signals to shorty and the child process it runs.
// By default it listens for os.Interrupt, syscall.SIGINT, syscall.SIGTERM and syscall.SIGQUIT.
//
// Watch cancels a context once the same signal has been received twice, the
// convention shorty uses for "stop asking nicely".
package signalbroker

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/matt-FFFFFF/shorty/internal/ctxlog"
)

var termSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
	syscall.SIGQUIT,
	os.Interrupt,
}

// New returns a channel notified of the given signals, or of the termination signals when none are given.
func New(ctx context.Context, sigs ...os.Signal) chan os.Signal {
	ch := make(chan os.Signal, 1)

	if len(sigs) == 0 {
		sigs = termSignals
	}

	ctxlog.Debug(ctx, "signalbroker", "detail", "creating signal broker", "signals", sigs)
	signal.Notify(ch, sigs...)

	return ch
}

// Stop stops relaying signals to ch. The channel is not closed.
func Stop(ctx context.Context, ch chan os.Signal) {
	ctxlog.Debug(ctx, "signalbroker", "detail", "stopping signal broker")
	signal.Stop(ch)
}
