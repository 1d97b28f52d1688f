// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"golang.org/x/term"
)

const (
	sbPadding = 16 // padding for the strings.Builder
)

// Code represents an ANSI control code for text formatting.
type Code int

const (
	// NoColor is the environment variable that disables color output.
	NoColor = "NO_COLOR"
	// ForceColor is the environment variable that forces color output.
	ForceColor = "FORCE_COLOR"
	reset      = "\033[0m"
	prefix     = "\033["
	suffix     = "m"
)

// Control codes for text formatting.
const (
	Reset Code = iota
	Bold
	Faint
	Italic
	Underline
)

// Foreground text colors.
const (
	FgBlack Code = iota + 30
	FgRed
	FgGreen
	FgYellow
	FgBlue
	FgMagenta
	FgCyan
	FgWhite
)

// Foreground Hi-Intensity text colors.
const (
	FgHiBlack Code = iota + 90
	FgHiRed
	FgHiGreen
	FgHiYellow
	FgHiBlue
	FgHiMagenta
	FgHiCyan
	FgHiWhite
)

var enabled atomic.Bool

func init() {
	enabled.Store(isColorCapable())
}

// ControlString generates a string with ANSI control codes for text formatting.
func ControlString(c ...Code) string {
	sb := strings.Builder{}
	sb.Grow(len(prefix) + len(suffix) + sbPadding)
	writeCodes(&sb, c)

	return sb.String()
}

// Colorize returns a string with ANSI color codes applied.
// It appends the reset code at the end of the string to reset the color.
func Colorize(str string, colorCodes ...Code) string {
	if !enabled.Load() || len(colorCodes) == 0 {
		return str
	}

	sb := strings.Builder{}
	sb.Grow(len(str) + len(prefix) + len(suffix) + len(reset) + sbPadding)
	writeCodes(&sb, colorCodes)
	sb.WriteString(str)
	sb.WriteString(reset)

	return sb.String()
}

func writeCodes(sb *strings.Builder, codes []Code) {
	sb.WriteString(prefix)

	for i, code := range codes {
		if i > 0 {
			sb.WriteString(";")
		}

		sb.WriteString(strconv.Itoa(int(code)))
	}

	sb.WriteString(suffix)
}

// Enabled reports whether color output is enabled.
// It is initialized in package init() from the environment and terminal state.
func Enabled() bool {
	return enabled.Load()
}

// SetEnabled overrides color detection and returns a function restoring the previous value.
func SetEnabled(v bool) (restore func()) {
	prev := enabled.Swap(v)
	return func() { enabled.Store(prev) }
}

func isColorCapable() bool {
	if nc := os.Getenv(NoColor); nc != "" {
		return false
	}

	if fc := os.Getenv(ForceColor); fc != "" {
		return true
	}

	return term.IsTerminal(int(os.Stdout.Fd()))
}
