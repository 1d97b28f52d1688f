// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package verbs

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/shorty/internal/color"
	"github.com/matt-FFFFFF/shorty/internal/commandregistry"
	"github.com/matt-FFFFFF/shorty/internal/ctxlog"
	"github.com/matt-FFFFFF/shorty/internal/depcheck"
	"github.com/matt-FFFFFF/shorty/internal/scripts"
	"github.com/matt-FFFFFF/shorty/internal/tui"
)

const awaitLabel = "Checking dependencies..."

// Help prints every verb.
func Help(_ context.Context, s commandregistry.Session, _ commandregistry.Invocation) error {
	return s.Registry().WriteHelp(s.Out())
}

// PackageHelp prints the package manager verbs.
func PackageHelp(_ context.Context, s commandregistry.Session, _ commandregistry.Invocation) error {
	return s.Registry().WriteGroupHelp(s.Out(), commandregistry.GroupPackages)
}

// ShowScripts prints the scripts of the manifest.
func ShowScripts(_ context.Context, s commandregistry.Session, _ commandregistry.Invocation) error {
	return scripts.List(s.Out(), s.ManifestPath())
}

// DependencyCheck runs depcheck in the current directory and prints a summary.
func DependencyCheck(ctx context.Context, s commandregistry.Session, _ commandregistry.Invocation) error {
	task := depcheck.Start(ctx, s.Executor(), ".")

	var report *depcheck.Report

	err := tui.Await(ctx, s.ErrOut(), awaitLabel, func() error {
		var err error
		report, err = task.Wait()

		return err
	})
	if err != nil {
		ctxlog.Error(ctx, "dependency check failed", "error", err)
		fmt.Fprintln(s.ErrOut(), color.Line{}.Label("Dependency check failed:").Plain(" "+err.Error())) //nolint:errcheck

		return err
	}

	for _, l := range report.Summary() {
		if _, err := fmt.Fprintln(s.Out(), l); err != nil {
			return err
		}
	}

	return nil
}
