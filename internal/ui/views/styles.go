package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title        lipgloss.Style
	Dim          lipgloss.Style
	Status       lipgloss.Style
	InfoBox      lipgloss.Style
	Help         lipgloss.Style
	Main         lipgloss.Style
	Label        lipgloss.Style
	FocusedLabel lipgloss.Style
	Value        lipgloss.Style
	FocusedValue lipgloss.Style
	Mode         lipgloss.Style
	StatusError  lipgloss.Style
	Draft        lipgloss.Style
	Finalized    lipgloss.Style
	Voided       lipgloss.Style
	Backdrop     lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		InfoBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1).
			BorderForeground(lipgloss.Color("241")),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Label:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		FocusedLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		Value:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		FocusedValue: lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("238")),
		Mode:         lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		StatusError:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Draft:        lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		Finalized:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Voided:       lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Backdrop:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// StatusStyle returns the badge style for an invoice status
func (s *Styles) StatusStyle(status string) lipgloss.Style {
	switch status {
	case "draft":
		return s.Draft
	case "finalized":
		return s.Finalized
	default:
		return s.Voided
	}
}
