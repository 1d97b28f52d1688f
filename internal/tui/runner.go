// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/shorty/internal/color"
	"github.com/matt-FFFFFF/shorty/internal/ctxlog"
)

// Await runs wait and returns its error. While wait runs a spinner labelled
// label is drawn on out when colour output is enabled; otherwise the label is
// printed once.
func Await(ctx context.Context, out io.Writer, label string, wait func() error) error {
	if !color.Enabled() {
		if _, err := fmt.Fprintln(out, label); err != nil {
			ctxlog.Debug(ctx, "cannot write await label", "error", err)
		}

		return wait()
	}

	program := tea.NewProgram(
		NewModel(label),
		tea.WithOutput(out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)

	errCh := make(chan error, 1)

	go func() {
		err := wait()
		errCh <- err

		program.Send(DoneMsg{Err: err})
	}()

	if _, err := program.Run(); err != nil {
		ctxlog.Debug(ctx, "spinner stopped", "error", err)
	}

	return <-errCh
}
