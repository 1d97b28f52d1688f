// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/matt-FFFFFF/shorty/internal/ctxlog"
)

const (
	goosWindows          = "windows"
	commandSwitchWindows = "/C"
	commandSwitchUnix    = "-c"
	winSystem32          = "System32"
	cmdExe               = "cmd.exe"
	binSh                = "/bin/sh"
	winSystemRootEnv     = "SystemRoot"
	shellEnv             = "SHELL"
	pathExtEnv           = "PATHEXT"
)

// LookPath finds an executable named command in the directories of PATH.
// On Windows the extensions in PATHEXT are tried as well.
func LookPath(command string) (string, error) {
	if command == "" {
		return "", ErrCommandNotFound
	}

	if strings.ContainsRune(command, filepath.Separator) {
		if isExecutable(command) {
			return command, nil
		}

		return "", fmt.Errorf("%w: %s", ErrCommandNotFound, command)
	}

	candidates := []string{command}

	if runtime.GOOS == goosWindows {
		for _, ext := range filepath.SplitList(os.Getenv(pathExtEnv)) {
			candidates = append(candidates, command+strings.ToLower(ext))
		}
	}

	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		if dir == "" {
			continue
		}

		for _, c := range candidates {
			p := filepath.Join(dir, c)
			if isExecutable(p) {
				return p, nil
			}
		}
	}

	return "", fmt.Errorf("%w: %s", ErrCommandNotFound, command)
}

func isExecutable(p string) bool {
	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		return false
	}

	// Windows has no executable bit.
	if runtime.GOOS != goosWindows && info.Mode()&0o111 == 0 {
		return false
	}

	return true
}

// shellArgs returns the shell path and the arguments that make it run line.
func shellArgs(ctx context.Context, line string) (string, []string) {
	if runtime.GOOS == goosWindows {
		return defaultShell(ctx), []string{commandSwitchWindows, line}
	}

	return defaultShell(ctx), []string{commandSwitchUnix, line}
}

func defaultShell(ctx context.Context) string {
	if runtime.GOOS == goosWindows {
		systemRoot := os.Getenv(winSystemRootEnv)
		if systemRoot == "" {
			systemRoot = `C:\Windows`
		}

		return fmt.Sprintf(`%s\%s\%s`, systemRoot, winSystem32, cmdExe)
	}

	if shell := os.Getenv(shellEnv); shell != "" {
		ctxlog.Debug(ctx, "using SHELL environment variable", "shell", shell)
		return shell
	}

	return binSh
}
