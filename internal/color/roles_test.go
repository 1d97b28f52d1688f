// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLine(t *testing.T) {
	l := Line{}.Label("gc: ").Command("git cherry-pick ").Placeholder("commit-hash")

	t.Run("text has no escapes", func(t *testing.T) {
		defer SetEnabled(true)()
		assert.Equal(t, "gc: git cherry-pick commit-hash", l.Text())
	})

	t.Run("string uses role colours", func(t *testing.T) {
		defer SetEnabled(true)()

		want := "\033[31mgc: \033[0m" + "\033[33mgit cherry-pick \033[0m" + "\033[35mcommit-hash\033[0m"
		assert.Equal(t, want, l.String())
	})

	t.Run("string without colour equals text", func(t *testing.T) {
		defer SetEnabled(false)()
		assert.Equal(t, l.Text(), l.String())
	})

	t.Run("flag and plain segments", func(t *testing.T) {
		defer SetEnabled(true)()

		fl := Line{}.Flag("-D").Plain(" ok")
		assert.Equal(t, "\033[32m-D\033[0m ok", fl.String())
	})
}

func TestLineSegments(t *testing.T) {
	l := Line{}.Command("yarn add ").Placeholder("left-pad").Plain(" ").Flag("-D")
	assert.Equal(t, []string{"left-pad"}, l.Segments(RolePlaceholder))
	assert.Equal(t, []string{"-D"}, l.Segments(RoleFlag))
	assert.Nil(t, l.Segments(RoleLabel))
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "label", RoleLabel.String())
	assert.Equal(t, "command", RoleCommand.String())
	assert.Equal(t, "placeholder", RolePlaceholder.String())
	assert.Equal(t, "flag", RoleFlag.String())
	assert.Equal(t, "plain", RolePlain.String())
}
