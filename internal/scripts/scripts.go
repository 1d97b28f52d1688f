// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package scripts lists the scripts declared in a package.json manifest.
package scripts

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/matt-FFFFFF/shorty/internal/color"
	"github.com/spf13/afero"
)

// DefaultManifest is the manifest read when none is configured.
const DefaultManifest = "package.json"

// ErrReadManifest is returned when the manifest cannot be read.
var ErrReadManifest = errors.New("cannot read manifest")

// FsFactory returns the filesystem manifests are read from.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

var (
	scriptsBlock = regexp.MustCompile(`(?s)"scripts"\s*:\s*\{(.*?)\}`)
	scriptEntry  = regexp.MustCompile(`^\s*"((?:[^"\\]|\\.)*)"\s*:\s*"((?:[^"\\]|\\.)*)"\s*,?\s*$`)
)

// Script is one name and command pair.
type Script struct {
	Name    string
	Command string
}

// Block is the text between `"scripts": {` and the closing brace.
type Block struct {
	Lines []string
}

// Scripts returns the entries of the block that have the "name": "command" form.
func (b Block) Scripts() []Script {
	var res []Script

	for _, l := range b.Lines {
		if m := scriptEntry.FindStringSubmatch(l); m != nil {
			res = append(res, Script{Name: m[1], Command: m[2]})
		}
	}

	return res
}

// Extract finds the scripts block in content.
func Extract(content []byte) (Block, bool) {
	m := scriptsBlock.FindSubmatch(content)
	if m == nil {
		return Block{}, false
	}

	var lines []string

	for _, l := range strings.Split(string(m[1]), "\n") {
		l = strings.TrimRight(l, "\r")
		if strings.TrimSpace(l) == "" {
			continue
		}

		lines = append(lines, l)
	}

	return Block{Lines: lines}, true
}

// List prints the scripts of the manifest at path.
// Entries are printed as coloured "name: command" lines, anything else verbatim.
func List(w io.Writer, path string) error {
	if path == "" {
		path = DefaultManifest
	}

	content, err := afero.ReadFile(FsFactory(), path)
	if err != nil {
		return errors.Join(ErrReadManifest, fmt.Errorf("%s: %w", path, err))
	}

	block, ok := Extract(content)
	if !ok {
		if _, err := fmt.Fprintf(w, "No scripts found in %s\n", path); err != nil {
			return err
		}

		_, err := w.Write(content)

		return err
	}

	for _, l := range block.Lines {
		line := color.Line{}.Plain(l)

		if m := scriptEntry.FindStringSubmatch(l); m != nil {
			line = color.Line{}.Label(m[1] + ": ").Command(m[2])
		}

		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	return nil
}
