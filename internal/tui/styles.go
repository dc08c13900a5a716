// Copyright (c) 2026 Livetable Team
// Livetable - server-rendered data tables
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorSubtle    = lipgloss.Color("240") // Muted gray
	colorHighlight = lipgloss.Color("81")  // Teal
	colorError     = lipgloss.Color("196")
	colorWhite     = lipgloss.Color("231")
)

var (
	docStyle   = lipgloss.NewStyle().Margin(1, 2)
	titleStyle = lipgloss.NewStyle().Foreground(colorHighlight).Bold(true).Padding(0, 1)
	helpStyle  = lipgloss.NewStyle().Foreground(colorSubtle)
	errorStyle = lipgloss.NewStyle().Foreground(colorError)

	statusMessageStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Foreground(colorWhite).
				Background(colorHighlight)
)
