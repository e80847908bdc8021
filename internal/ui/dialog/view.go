package dialog

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"invoicesearch/internal/domain"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	minWidth      = 40
	maxWidth      = 110
	minHeight     = 10
	// room left between the frame and the terminal edges
	sideMargin = 6

	selectLabel = "Seleccionar"
	searchLabel = "Buscar"
	closeLabel  = "Close"

	columnGap   = 2
	maxColWidth = 28
	// title, input, header, status and close lines plus the frame
	chromeLines = 9
)

var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1)
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	inputStyle     = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, true, false).BorderForeground(lipgloss.Color("241"))
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")).Background(lipgloss.Color("238"))
	buttonStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("238")).Padding(0, 1)
	activeButton   = lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("214")).Bold(true).Padding(0, 1)
	cursorRowStyle = lipgloss.NewStyle().Background(lipgloss.Color("236"))
	dimStyle       = lipgloss.NewStyle().Faint(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

func (m *Model) inputWidth() int {
	// frame padding, search button and gap
	return max(m.width-4-lipgloss.Width(buttonStyle.Render(searchLabel))-2, 10)
}

func (m *Model) showsPhotos() bool {
	for _, f := range m.opts.Fields {
		if ClassifyField(f) == FieldImage {
			return true
		}
	}
	return false
}

func (m *Model) rowHeight() int {
	if m.showsPhotos() && m.opts.Photos != nil {
		return lipgloss.Height(m.opts.Photos.Placeholder())
	}
	return 1
}

// visibleRows is how many result rows fit in the table area
func (m *Model) visibleRows() int {
	return max((m.height-chromeLines)/m.rowHeight(), 1)
}

func (m *Model) mark(name, s string) string {
	if m.opts.Zones == nil {
		return s
	}
	return m.opts.Zones.Mark(m.zoneID(name), s)
}

// columnWidths sizes each rendered column to its widest cell
func (m *Model) columnWidths(cols []string) []int {
	widths := make([]int, len(cols))
	for i, c := range cols {
		if ClassifyField(c) == FieldImage {
			widths[i] = lipgloss.Width(HeaderLabel(c))
			if m.opts.Photos != nil {
				widths[i] = max(widths[i], m.opts.Photos.Width())
			}
			continue
		}
		w := lipgloss.Width(HeaderLabel(c))
		for _, row := range m.results {
			w = max(w, lipgloss.Width(Cell(row, c)))
		}
		widths[i] = min(w, maxColWidth)
	}
	return widths
}

func (m *Model) renderHeader(cols []string, widths []int) string {
	parts := make([]string, 0, len(cols)+1)
	for i, c := range cols {
		parts = append(parts, lipgloss.NewStyle().Width(widths[i]).Render(HeaderLabel(c)))
	}
	parts = append(parts, selectLabel)
	return headerStyle.Render(strings.Join(parts, strings.Repeat(" ", columnGap)))
}

func (m *Model) renderCell(row domain.ResultRow, col string, width int) string {
	style := lipgloss.NewStyle().Width(width)
	if ClassifyField(col) == FieldImage {
		if m.opts.Photos == nil {
			return style.Render(dimStyle.Render("foto"))
		}
		return style.Render(m.opts.Photos.View(row.Get(col)))
	}
	return style.Render(ansi.Truncate(Cell(row, col), width, "…"))
}

func (m *Model) renderRow(i int, cols []string, widths []int) string {
	row := m.results[i]
	cells := make([]string, 0, len(cols)*2)
	for j, c := range cols {
		if j > 0 {
			cells = append(cells, strings.Repeat(" ", columnGap))
		}
		cells = append(cells, m.renderCell(row, c, widths[j]))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, cells...)

	active := m.area == focusResults && i == m.cursor
	btn := buttonStyle.Render(selectLabel)
	if active {
		btn = activeButton.Render(selectLabel)
		body = cursorRowStyle.Render(body)
	}

	gap := strings.Repeat(" ", columnGap)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.mark(fmt.Sprintf("row-%d", i), body),
		gap,
		m.mark(fmt.Sprintf("select-%d", i), btn),
	)
}

func (m *Model) renderStatus() string {
	switch {
	case m.loading:
		return dimStyle.Render("Buscando…")
	case m.err != nil:
		return errorStyle.Render("Error: " + m.err.Error())
	case m.searched && len(m.results) == 0:
		return dimStyle.Render("Sin resultados")
	case len(m.results) > m.visibleRows():
		return dimStyle.Render(fmt.Sprintf("%d-%d de %d", m.offset+1, min(m.offset+m.visibleRows(), len(m.results)), len(m.results)))
	case len(m.results) > 0:
		return dimStyle.Render(fmt.Sprintf("%d resultados", len(m.results)))
	}
	return ""
}

// View renders the dialog box. It returns "" while hidden.
func (m *Model) View() string {
	if !m.visible {
		return ""
	}

	var b strings.Builder
	if m.opts.Title != "" {
		b.WriteString(titleStyle.Render(m.opts.Title))
		b.WriteString("\n")
	}

	search := buttonStyle.Render(searchLabel)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center,
		m.mark("input", inputStyle.Width(m.input.Width+1).Render(m.input.View())),
		"  ",
		m.mark("search", search),
	))
	b.WriteString("\n")

	cols := Columns(m.opts.Fields)
	widths := m.columnWidths(cols)
	b.WriteString(m.renderHeader(cols, widths))
	b.WriteString("\n")

	end := min(m.offset+m.visibleRows(), len(m.results))
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderRow(i, cols, widths))
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatus())
	b.WriteString("\n")

	closeBtn := buttonStyle.Render(closeLabel)
	if m.area == focusClose {
		closeBtn = activeButton.Render(closeLabel)
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width-4, lipgloss.Right, m.mark("close", closeBtn)))

	return frameStyle.Width(m.width).Render(b.String())
}
