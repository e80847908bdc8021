package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	dialogs []dialogHelp
}

type dialogHelp struct {
	key   string
	title string
	table string
	field string
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

// AddDialog lists a search dialog binding in the help
func (r *HelpRenderer) AddDialog(key, title, table, field string) {
	r.dialogs = append(r.dialogs, dialogHelp{key: key, title: title, table: table, field: field})
}

// RenderHelpContent renders the help text with colors
func (r *HelpRenderer) RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	line := func(key, desc string) string {
		return fmt.Sprintf("  %s %s\n", keyStyle.Render(key), descStyle.Render(desc))
	}

	var help strings.Builder

	help.WriteString(titleStyle.Render("Invoice Search Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Form"))
	help.WriteString("\n")
	help.WriteString(line("Tab/↓, j", "Next field"))
	help.WriteString(line("S-Tab/↑, k", "Previous field"))
	help.WriteString(line("Backspace", "Clear field"))
	help.WriteString(line("Ctrl+S", "Cycle invoice status (draft, finalized, voided)"))
	help.WriteString("\n")

	if len(r.dialogs) > 0 {
		help.WriteString(sectionStyle.Render("Search Dialogs"))
		help.WriteString("\n")
		for _, d := range r.dialogs {
			help.WriteString(line(d.key, fmt.Sprintf("%s (%s by %s)", d.title, d.table, d.field)))
		}
		help.WriteString("\n")
	}

	help.WriteString(sectionStyle.Render("Inside a Dialog"))
	help.WriteString("\n")
	help.WriteString(line("Enter", "Search, or pick the highlighted row"))
	help.WriteString(line("↑/↓, j/k", "Move between results"))
	help.WriteString(line("PgUp/PgDn", "Page through results"))
	help.WriteString(line("Tab", "Cycle input, results and Close"))
	help.WriteString(line("Esc", "Close without picking"))
	help.WriteString("\n")

	note := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))
	help.WriteString(note.Render("  Rows can only be picked while the invoice is a draft."))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	help.WriteString(line("?", "Toggle this help"))
	help.WriteString(strings.TrimSuffix(line("q", "Quit"), "\n"))

	return help.String()
}

// HelpOps handles help operations
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	configureVimKeyBindings(&config)

	root.SetConfig(config)

	return root.Run()
}

// configureVimKeyBindings adds j/k scrolling on top of ov's defaults
func configureVimKeyBindings(config *oviewer.Config) {
	if config.Keybind == nil {
		config.Keybind = make(map[string][]string)
	}
	config.Keybind["down"] = append(config.Keybind["down"], "j")
	config.Keybind["up"] = append(config.Keybind["up"], "k")
}
