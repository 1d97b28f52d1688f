// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DoneMsg tells the model the awaited work has settled.
type DoneMsg struct {
	Err error
}

// Styles holds the styling of the spinner line.
type Styles struct {
	Spinner lipgloss.Style
	Label   lipgloss.Style
}

// NewStyles creates the default styling.
func NewStyles() Styles {
	return Styles{
		Spinner: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Model is the bubbletea model of the spinner line.
type Model struct {
	spinner spinner.Model
	label   string
	styles  Styles
	done    bool
	err     error
}

// NewModel creates a spinner model showing label.
func NewModel(label string) Model {
	styles := NewStyles()

	return Model{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Spinner)),
		label:   label,
		styles:  styles,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case DoneMsg:
		m.done = true
		m.err = msg.Err

		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}

		var cmd tea.Cmd

		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

// View implements tea.Model. The line is cleared once the work has settled.
func (m Model) View() string {
	if m.done {
		return ""
	}

	return m.spinner.View() + " " + m.styles.Label.Render(m.label) + "\n"
}

// Done reports whether the work has settled.
func (m Model) Done() bool { return m.done }

// Err returns the error the work settled with.
func (m Model) Err() error { return m.err }
