// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a log/slog logger in a context.Context.
//
// The default logger writes to stderr through PrettyHandler so that log lines
// never mix with the previews and help text shorty prints on stdout.
// The level is read from the SHORTY_LOG_LEVEL environment variable and may be
// DEBUG, INFO, WARN or ERROR. Any other value selects WARN.
package ctxlog
