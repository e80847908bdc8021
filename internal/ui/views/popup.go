package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopupOverlay centers popup over mainContent, which is greyed out
// behind it. popup is drawn as given; callers apply their own frame.
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popup string, height, width int) string {
	modalW := lipgloss.Width(popup)
	modalH := lipgloss.Height(popup)
	x := max((width-modalW)/2, 0)
	y := max((height-modalH)/2, 0)

	return Overlay(pr.desaturate(mainContent), popup, x, y, height)
}

// Overlay splices the lines of top into base starting at column x, row y.
// Text of base left and right of the box stays visible. base is padded to
// at least minHeight lines.
func Overlay(base, top string, x, y, minHeight int) string {
	baseLines := strings.Split(base, "\n")
	for len(baseLines) < minHeight {
		baseLines = append(baseLines, "")
	}
	topLines := strings.Split(top, "\n")
	topW := lipgloss.Width(top)

	for i, tl := range topLines {
		row := y + i
		if row < 0 {
			continue
		}
		for row >= len(baseLines) {
			baseLines = append(baseLines, "")
		}
		line := baseLines[row]

		left := ansi.Truncate(line, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		if w := ansi.StringWidth(tl); w < topW {
			tl += strings.Repeat(" ", topW-w)
		}
		right := ""
		if ansi.StringWidth(line) > x+topW {
			right = ansi.TruncateLeft(line, x+topW, "")
		}
		baseLines[row] = left + "\x1b[0m" + tl + "\x1b[0m" + right
	}
	return strings.Join(baseLines, "\n")
}

// desaturate strips styles and recolors the text dim gray
func (pr *PopupRenderer) desaturate(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = pr.styles.Backdrop.Render(ansi.Strip(line))
	}
	return strings.Join(lines, "\n")
}
