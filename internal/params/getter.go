// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package params

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter/v2"
)

const (
	goGetterForcedSeparator = "::"
	goGetterSchemeSeparator = "://"
	goGetterPathSeparator   = "//"
	goGetterRefSeparator    = "?"
	minimumGetterParts      = 3 // scheme, host, and path
)

// ErrFetch is returned when a remote parameter file cannot be downloaded.
var ErrFetch = errors.New("failed to fetch parameter file")

// IsRemote reports whether location uses go-getter syntax rather than a local path.
func IsRemote(location string) bool {
	return strings.Contains(location, goGetterForcedSeparator) ||
		strings.Contains(location, goGetterSchemeSeparator)
}

// getURL downloads the directory holding the file named at the end of url
// and returns the file content. The download directory is removed afterwards.
func getURL(ctx context.Context, url string) ([]byte, error) {
	newURL, fileName := splitFileNameFromGetterURL(url)
	if newURL == "" || fileName == "" {
		return nil, fmt.Errorf("%w: invalid URL format: %s", ErrFetch, url)
	}

	tmpDir, err := os.MkdirTemp("", "shorty-getter-*")
	if err != nil {
		return nil, errors.Join(ErrFetch, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Join(ErrFetch, err)
	}

	client := getter.Client{
		DisableSymlinks: true,
	}

	req := &getter.Request{
		Src:     newURL,
		Dst:     filepath.Join(tmpDir, "g"),
		Pwd:     wd,
		GetMode: getter.ModeDir,
	}

	res, err := client.Get(ctx, req)
	if err != nil {
		return nil, errors.Join(ErrFetch, err)
	}

	b, err := os.ReadFile(filepath.Join(res.Dst, fileName))
	if err != nil {
		return nil, errors.Join(ErrFetch, err)
	}

	return b, nil
}

// splitFileNameFromGetterURL splits the URL into the directory URL and the file name.
// Any ref query parameter is appended to the directory URL.
func splitFileNameFromGetterURL(url string) (string, string) {
	var ref string

	parts := strings.Split(url, goGetterPathSeparator)
	if len(parts) < minimumGetterParts {
		return "", ""
	}

	last := parts[len(parts)-1]
	if i := strings.Index(last, goGetterRefSeparator); i >= 0 {
		ref = last[i+1:]
		last = last[:i]
	}

	if last == "" || filepath.Clean(last) == filepath.Dir(last) {
		return "", ""
	}

	fileName := filepath.Base(last)
	parts[len(parts)-1] = filepath.Dir(last)

	if parts[len(parts)-1] == "." {
		parts = parts[:len(parts)-1]
	}

	newURL := strings.Join(parts, goGetterPathSeparator)
	if ref != "" {
		newURL += goGetterRefSeparator + ref
	}

	return newURL, fileName
}
