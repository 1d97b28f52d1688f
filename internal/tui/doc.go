// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tui shows a spinner while shorty waits on background work, such as
// the dependency analysis. The spinner is a bubbletea program that quits as
// soon as the work settles. Without a colour capable terminal it falls back
// to printing the label once.
package tui
