// Package help styling definitions.
// This file defines lipgloss styles for consistent terminal output.

package help

import "github.com/charmbracelet/lipgloss"

// Styles holds all the lipgloss styles used for help rendering.
type Styles struct {
	// Header is the style for "usage:" and section titles (bold).
	Header lipgloss.Style

	// Flag is the style for flag names (cyan).
	Flag lipgloss.Style

	// Placeholder is the style for value placeholders (yellow).
	Placeholder lipgloss.Style

	// Banner frames the epilog.
	Banner lipgloss.Style
}

// DefaultStyles returns the standard styles for help output.
// Colors are dropped automatically when the output is not a terminal.
func DefaultStyles() Styles {
	return Styles{
		Header:      lipgloss.NewStyle().Bold(true),
		Flag:        lipgloss.NewStyle().Foreground(lipgloss.Color("6")), // Cyan
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("3")), // Yellow
		Banner:      bannerStyle(),
	}
}

// PlainStyles returns styles that add no escape codes, for markdown and error output.
func PlainStyles() Styles {
	return Styles{
		Header:      lipgloss.NewStyle(),
		Flag:        lipgloss.NewStyle(),
		Placeholder: lipgloss.NewStyle(),
		Banner:      bannerStyle(),
	}
}

func bannerStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), true, false, true, true).
		PaddingLeft(1)
}
