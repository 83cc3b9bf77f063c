// Package tui renders the styled, non-interactive run summary shown by
// the CLI.
package tui

import "github.com/charmbracelet/lipgloss"

// StyleSet holds the lipgloss styles used by the summary renderer.
type StyleSet struct {
	Header  lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Warning lipgloss.Style
	Dim     lipgloss.Style
}

// DefaultStyles returns the default terminal styles.
func DefaultStyles() *StyleSet {
	return &StyleSet{
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#29b5e8")),
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")),
		Value:   lipgloss.NewStyle().Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("#eab308")),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("#5a5a70")),
	}
}
