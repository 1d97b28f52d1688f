// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package runner starts the child process a verb resolves to.
//
// Program specs are looked up in PATH and started with their argv as given.
// Shell specs are passed to $SHELL -c (cmd.exe /C on Windows). While the child
// runs, SIGTERM is forwarded to it. SIGINT and SIGQUIT are not forwarded: a
// terminal sends them to the whole foreground process group, so the child
// already has them. A second identical signal of any kind kills the child.
package runner
