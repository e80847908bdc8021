package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
)

// FieldView is one form field as the renderer sees it
type FieldView struct {
	Name  string
	Label string
	Value string
}

// DialogHint advertises a key that opens a search dialog
type DialogHint struct {
	Key   string
	Title string
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width            int
	Height           int
	Fields           []FieldView
	FocusIndex       int
	InvoiceStatus    string
	Mode             string
	StatusMessage    string
	StatusIsError    bool
	Hints            []DialogHint
	ShowHelp         bool
	HelpContent      string
	HelpScrollOffset int
	Dialog           string // rendered search dialog, "" when closed
	Toast            string
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	popupRender *PopupRenderer
	zones       *zone.Manager
}

// NewRenderer creates a new renderer. zones may be nil.
func NewRenderer(zones *zone.Manager) *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		popupRender: NewPopupRenderer(styles),
		zones:       zones,
	}
}

// FieldZoneID is the bubblezone id of a form field row
func FieldZoneID(name string) string {
	return "field:" + name
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	termHeight := state.Height
	if termHeight <= 0 {
		termHeight = 24
	}

	logo := r.styles.Title.Render("Factura")
	badge := r.styles.StatusStyle(state.InvoiceStatus).Render("[" + state.InvoiceStatus + "]")
	right := badge
	if state.Mode != "" {
		right = r.styles.Mode.Render(state.Mode) + "  " + badge
	}
	paddingWidth := termWidth - 4 - lipgloss.Width(logo) - lipgloss.Width(right)
	if paddingWidth < 2 {
		paddingWidth = 2
	}
	content.WriteString(logo + strings.Repeat(" ", paddingWidth) + right)
	content.WriteString("\n\n")

	content.WriteString(r.renderFields(state))

	if state.StatusMessage != "" {
		style := r.styles.Status
		if state.StatusIsError {
			style = style.Foreground(r.styles.StatusError.GetForeground())
		}
		content.WriteString("\n")
		content.WriteString(style.Render(state.StatusMessage))
	}

	helpText := r.styles.Help.Render(r.hintLine(state.Hints))
	currentLines := strings.Count(content.String(), "\n") + 1
	// container padding is one line top and bottom
	if pad := termHeight - 2 - currentLines - 1; pad > 0 {
		content.WriteString(strings.Repeat("\n", pad))
	}
	content.WriteString("\n")
	content.WriteString(helpText)

	finalContent := r.styles.Main.MaxHeight(termHeight).Render(content.String())

	switch {
	case state.Dialog != "":
		finalContent = r.popupRender.RenderPopupOverlay(finalContent, state.Dialog, termHeight, termWidth)
	case state.ShowHelp:
		help := r.styles.InfoBox.Render(scrollLines(state.HelpContent, termHeight-4, state.HelpScrollOffset))
		finalContent = r.popupRender.RenderPopupOverlay(finalContent, help, termHeight, termWidth)
	}

	if state.Toast != "" {
		x := max(termWidth-lipgloss.Width(state.Toast)-2, 0)
		finalContent = Overlay(finalContent, state.Toast, x, 0, termHeight)
	}
	return finalContent
}

func (r *Renderer) renderFields(state ViewState) string {
	labelWidth := 0
	for _, f := range state.Fields {
		labelWidth = max(labelWidth, lipgloss.Width(f.Label))
	}
	valueWidth := max(state.Width-labelWidth-12, 20)

	var b strings.Builder
	for i, f := range state.Fields {
		focused := i == state.FocusIndex && state.Dialog == ""
		marker := "  "
		labelStyle, valueStyle := r.styles.Label, r.styles.Value
		if focused {
			marker = "› "
			labelStyle, valueStyle = r.styles.FocusedLabel, r.styles.FocusedValue
		}
		value := f.Value
		if value == "" {
			value = r.styles.Dim.Render("—")
		}
		line := marker +
			labelStyle.Width(labelWidth).Render(f.Label) + "  " +
			valueStyle.Render(ansi.Truncate(value, valueWidth, "…"))
		if r.zones != nil {
			line = r.zones.Mark(FieldZoneID(f.Name), line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (r *Renderer) hintLine(hints []DialogHint) string {
	parts := make([]string, 0, len(hints)+3)
	for _, h := range hints {
		parts = append(parts, fmt.Sprintf("%s %s", h.Key, strings.ToLower(h.Title)))
	}
	parts = append(parts, "ctrl+s status", "? help", "q quit")
	return strings.Join(parts, " • ")
}

// scrollLines returns the visible window of content with scroll indicators
func scrollLines(content string, visibleHeight, offset int) string {
	if visibleHeight < 5 {
		visibleHeight = 5
	}
	lines := strings.Split(content, "\n")
	if len(lines) <= visibleHeight {
		return content
	}
	maxOffset := len(lines) - visibleHeight
	offset = min(max(offset, 0), maxOffset)
	visible := append([]string(nil), lines[offset:offset+visibleHeight]...)

	more := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	if offset > 0 {
		visible[0] = more.Render("↑ (more above)")
	}
	if offset < maxOffset {
		visible[len(visible)-1] = more.Render("↓ (more below)")
	}
	return strings.Join(visible, "\n")
}
