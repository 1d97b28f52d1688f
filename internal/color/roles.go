// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import "strings"

// Role is the semantic category of a piece of output text.
type Role int

const (
	// RolePlain is uncoloured text.
	RolePlain Role = iota
	// RoleLabel marks verb labels and headings.
	RoleLabel
	// RoleCommand marks the underlying command that runs.
	RoleCommand
	// RolePlaceholder marks user supplied or file supplied values.
	RolePlaceholder
	// RoleFlag marks fixed flags passed to the underlying command.
	RoleFlag
)

var roleCodes = map[Role][]Code{
	RoleLabel:       {FgRed},
	RoleCommand:     {FgYellow},
	RolePlaceholder: {FgMagenta},
	RoleFlag:        {FgGreen},
}

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleLabel:
		return "label"
	case RoleCommand:
		return "command"
	case RolePlaceholder:
		return "placeholder"
	case RoleFlag:
		return "flag"
	default:
		return "plain"
	}
}

// Segment is a run of text sharing one role.
type Segment struct {
	Role Role
	Text string
}

// Line is an ordered list of segments rendered on one line.
type Line []Segment

// Label appends a label segment.
func (l Line) Label(s string) Line { return append(l, Segment{RoleLabel, s}) }

// Command appends a command segment.
func (l Line) Command(s string) Line { return append(l, Segment{RoleCommand, s}) }

// Placeholder appends a placeholder segment.
func (l Line) Placeholder(s string) Line { return append(l, Segment{RolePlaceholder, s}) }

// Flag appends a flag segment.
func (l Line) Flag(s string) Line { return append(l, Segment{RoleFlag, s}) }

// Plain appends an uncoloured segment.
func (l Line) Plain(s string) Line { return append(l, Segment{RolePlain, s}) }

// String renders the line, coloured when color output is enabled.
func (l Line) String() string {
	sb := strings.Builder{}
	for _, seg := range l {
		sb.WriteString(Colorize(seg.Text, roleCodes[seg.Role]...))
	}

	return sb.String()
}

// Text renders the line without any escape codes.
func (l Line) Text() string {
	sb := strings.Builder{}
	for _, seg := range l {
		sb.WriteString(seg.Text)
	}

	return sb.String()
}

// Segments returns the text of every segment with the given role.
func (l Line) Segments(r Role) []string {
	var out []string

	for _, seg := range l {
		if seg.Role == r {
			out = append(out, seg.Text)
		}
	}

	return out
}
