// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color renders shorty's terminal output.
//
// Colour is enabled when stdout is a terminal, unless the NO_COLOR environment
// variable is set. FORCE_COLOR enables colour for non-terminal output.
// Terminal detection uses golang.org/x/term.
//
// On top of the raw ANSI codes the package defines four semantic roles used by
// previews, usage hints and the help listing: labels, underlying commands,
// user supplied placeholders and flags.
package color
