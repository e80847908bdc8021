// Package toast shows short-lived notifications over the main view.
package toast

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Kind selects the notification style
type Kind int

const (
	Info Kind = iota
	Success
	Error
)

const DefaultDuration = 3 * time.Second

// expiredMsg hides the toast with the matching id
type expiredMsg struct {
	id uint64
}

// Model holds at most one visible notification; a newer one replaces it
type Model struct {
	text     string
	kind     Kind
	id       uint64
	duration time.Duration

	errorStyle   lipgloss.Style
	successStyle lipgloss.Style
	infoStyle    lipgloss.Style
}

// New creates a toast model; d <= 0 uses DefaultDuration
func New(d time.Duration) Model {
	if d <= 0 {
		d = DefaultDuration
	}
	base := lipgloss.NewStyle().Padding(0, 1).Bold(true)
	return Model{
		duration:     d,
		errorStyle:   base.Foreground(lipgloss.Color("231")).Background(lipgloss.Color("160")),
		successStyle: base.Foreground(lipgloss.Color("16")).Background(lipgloss.Color("78")),
		infoStyle:    base.Foreground(lipgloss.Color("231")).Background(lipgloss.Color("33")),
	}
}

// Show displays text and returns the command that hides it again
func (m *Model) Show(text string, kind Kind) tea.Cmd {
	m.id++
	m.text = text
	m.kind = kind
	id := m.id
	return tea.Tick(m.duration, func(time.Time) tea.Msg {
		return expiredMsg{id: id}
	})
}

// Update hides the toast once its timer fires. Timers from replaced toasts are ignored.
func (m *Model) Update(msg tea.Msg) bool {
	e, ok := msg.(expiredMsg)
	if !ok {
		return false
	}
	if e.id == m.id {
		m.text = ""
	}
	return true
}

// Visible reports whether a notification is showing
func (m Model) Visible() bool {
	return m.text != ""
}

// Text returns the current notification text
func (m Model) Text() string {
	return m.text
}

// Kind returns the style of the current notification
func (m Model) Kind() Kind {
	return m.kind
}

func (m Model) View() string {
	if m.text == "" {
		return ""
	}
	switch m.kind {
	case Error:
		return m.errorStyle.Render("✗ " + m.text)
	case Success:
		return m.successStyle.Render("✓ " + m.text)
	default:
		return m.infoStyle.Render(m.text)
	}
}
