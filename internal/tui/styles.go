package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Trigger     lipgloss.Style
	Placeholder lipgloss.Style
	Marker      lipgloss.Style
	Option      lipgloss.Style
	Highlight   lipgloss.Style
	Selected    lipgloss.Style
	Dim         lipgloss.Style
	Status      lipgloss.Style
	Help        lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Trigger:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Marker:      lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Option:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Highlight:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Background(lipgloss.Color("238")).Bold(true),
		Selected:    lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
		Dim:         lipgloss.NewStyle().Faint(true),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Help:        lipgloss.NewStyle().Faint(true),
	}
}
