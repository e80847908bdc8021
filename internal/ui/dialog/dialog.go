// Package dialog implements the modal search dialog used by the invoice form
// to look up a backend table and hand one row back to the caller.
package dialog

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"invoicesearch/internal/domain"
	"invoicesearch/internal/invoice"
	"invoicesearch/internal/ui/photo"
)

// BlockedMessage is shown when a row is picked while the invoice is not a draft
const BlockedMessage = "No puedes modificar una factura finalizada o anulada"

// Searcher runs one backend search
type Searcher interface {
	Search(ctx context.Context, req domain.SearchRequest) ([]domain.ResultRow, error)
}

// Focusable is an element outside the dialog that can take focus back
type Focusable interface {
	Focus() tea.Cmd
}

// Options configures a dialog. Table, Field and Searcher are required.
type Options struct {
	ID      string // tells dialogs apart in ResultsMsg; defaults to Table
	Title   string
	Table   string
	Field   string
	Fields  []string // visible columns, in order
	Message string   // input placeholder

	FocusOnClose  Focusable
	OnSelect      func(domain.ResultRow)
	OnShowChange  func(bool)
	OnSearchError func(domain.SearchRequest, error)
	Notify        func(text string) tea.Cmd

	// Status is read when a row is picked; nil allows every selection.
	Status   invoice.StatusReader
	Searcher Searcher
	Photos   *photo.Loader
	Zones    *zone.Manager
}

// ResultsMsg carries the outcome of a search back into the dialog
type ResultsMsg struct {
	DialogID string
	Seq      uint64
	Request  domain.SearchRequest
	Rows     []domain.ResultRow
	Err      error
}

type focusArea int

const (
	focusInput focusArea = iota
	focusResults
	focusClose
)

// Model is the search dialog state
type Model struct {
	opts  Options
	id    string
	input textinput.Model

	visible  bool
	results  []domain.ResultRow
	cursor   int
	offset   int
	area     focusArea
	loading  bool
	searched bool
	err      error

	// seq identifies the latest request; responses carrying another value are stale
	seq    uint64
	cancel context.CancelFunc

	width  int
	height int
}

// New creates a hidden dialog
func New(opts Options) *Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.Placeholder = opts.Message
	if ti.Placeholder == "" {
		ti.Placeholder = fmt.Sprintf("Buscar %s por %s...", opts.Table, opts.Field)
	}

	id := opts.ID
	if id == "" {
		id = opts.Table
	}

	m := &Model{
		opts:   opts,
		id:     id,
		input:  ti,
		width:  defaultWidth,
		height: defaultHeight,
	}
	m.input.Width = m.inputWidth()
	return m
}

// ID returns the identifier carried by this dialog's messages
func (m *Model) ID() string { return m.id }

// Title returns the configured heading
func (m *Model) Title() string { return m.opts.Title }

// Visible reports whether the dialog is open
func (m *Model) Visible() bool { return m.visible }

// Query returns the current search text
func (m *Model) Query() string { return m.input.Value() }

// Placeholder returns the input placeholder text
func (m *Model) Placeholder() string { return m.input.Placeholder }

// Results returns the rows currently shown
func (m *Model) Results() []domain.ResultRow { return m.results }

// Cursor returns the highlighted row index
func (m *Model) Cursor() int { return m.cursor }

// Width is the outer width of the dialog frame
func (m *Model) Width() int { return m.width }

// Loading reports whether a search is in flight
func (m *Model) Loading() bool { return m.loading }

// Err returns the error of the last failed search while open
func (m *Model) Err() error { return m.err }

// InputFocused reports whether keystrokes go to the search input
func (m *Model) InputFocused() bool { return m.area == focusInput && m.input.Focused() }

// SetQuery replaces the search text
func (m *Model) SetQuery(q string) {
	m.input.SetValue(q)
}

// SetSize informs the dialog of the terminal size. The frame keeps a margin
// to the terminal edges and stops growing at maxWidth.
func (m *Model) SetSize(width, height int) {
	m.width = clamp(width-sideMargin, minWidth, maxWidth)
	m.height = clamp(height-4, minHeight, height)
	m.input.Width = m.inputWidth()
	m.scrollToCursor()
}

// SetShow is the visibility setter owned by the caller. Opening clears the
// query and the results and focuses the input; closing clears the results
// and moves focus to FocusOnClose.
func (m *Model) SetShow(show bool) tea.Cmd {
	if show == m.visible {
		return nil
	}
	m.visible = show
	if show {
		return m.openTransition()
	}
	return m.closeTransition()
}

func (m *Model) openTransition() tea.Cmd {
	m.invalidate()
	m.input.Reset()
	m.results = nil
	m.cursor, m.offset = 0, 0
	m.loading, m.searched, m.err = false, false, nil
	return m.focusInput()
}

func (m *Model) closeTransition() tea.Cmd {
	m.invalidate()
	m.results = nil
	m.cursor, m.offset = 0, 0
	m.loading, m.searched, m.err = false, false, nil
	m.input.Blur()
	m.area = focusInput
	if m.opts.FocusOnClose != nil {
		return m.opts.FocusOnClose.Focus()
	}
	return nil
}

// hide closes the dialog on its own initiative and tells the caller
func (m *Model) hide() tea.Cmd {
	if !m.visible {
		return nil
	}
	m.visible = false
	cmd := m.closeTransition()
	if m.opts.OnShowChange != nil {
		m.opts.OnShowChange(false)
	}
	return cmd
}

// invalidate cancels the in-flight request, if any, and makes its response stale
func (m *Model) invalidate() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.seq++
}

// Submit starts a search for the current query. An empty query does nothing.
func (m *Model) Submit() tea.Cmd {
	query := m.input.Value()
	if query == "" {
		return nil
	}
	if m.opts.Searcher == nil {
		log.Printf("Search dialog %s has no searcher configured", m.id)
		return nil
	}

	m.invalidate()
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.loading = true
	m.err = nil

	id, seq, searcher := m.id, m.seq, m.opts.Searcher
	req := domain.SearchRequest{Table: m.opts.Table, Field: m.opts.Field, Value: query}
	return func() tea.Msg {
		rows, err := searcher.Search(ctx, req)
		return ResultsMsg{DialogID: id, Seq: seq, Request: req, Rows: rows, Err: err}
	}
}

func (m *Model) handleResults(msg ResultsMsg) tea.Cmd {
	if msg.Seq != m.seq || !m.visible {
		log.Printf("Search dialog %s: dropping stale response for %q", m.id, msg.Request.Value)
		return nil
	}
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.loading = false

	if msg.Err != nil {
		if errors.Is(msg.Err, context.Canceled) {
			return nil
		}
		log.Printf("Search %s.%s=%q failed: %v", msg.Request.Table, msg.Request.Field, msg.Request.Value, msg.Err)
		m.err = msg.Err
		if m.opts.OnSearchError != nil {
			m.opts.OnSearchError(msg.Request, msg.Err)
		}
		return nil
	}

	m.results = msg.Rows
	m.searched = true
	m.cursor, m.offset = 0, 0
	if len(m.results) > 0 {
		m.focusResults()
	}
	return m.loadPhotos()
}

func (m *Model) loadPhotos() tea.Cmd {
	if m.opts.Photos == nil || !m.showsPhotos() {
		return nil
	}
	var cmds []tea.Cmd
	for _, row := range m.results {
		if cmd := m.opts.Photos.Load(row.Get(PhotoField)); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// SelectRow hands row i to the caller when the invoice is a draft, or shows
// the blocked notification otherwise. The dialog closes either way.
func (m *Model) SelectRow(i int) tea.Cmd {
	if i < 0 || i >= len(m.results) {
		return nil
	}
	row := m.results[i]

	var notify tea.Cmd
	status := invoice.Draft
	if m.opts.Status != nil {
		status = m.opts.Status.Load()
	}
	if status == invoice.Draft {
		if m.opts.OnSelect != nil {
			m.opts.OnSelect(row.Clone())
		}
	} else {
		log.Printf("Selection on %s blocked: invoice is %s", m.id, status)
		if m.opts.Notify != nil {
			notify = m.opts.Notify(BlockedMessage)
		}
	}

	return tea.Batch(notify, m.hide())
}

// Dismiss is the explicit close control: results are cleared and visibility
// goes back to the caller.
func (m *Model) Dismiss() tea.Cmd {
	m.results = nil
	return m.hide()
}

func (m *Model) focusInput() tea.Cmd {
	m.area = focusInput
	return m.input.Focus()
}

func (m *Model) focusResults() {
	m.input.Blur()
	m.area = focusResults
}

func (m *Model) cycleFocus(delta int) tea.Cmd {
	areas := []focusArea{focusInput}
	if len(m.results) > 0 {
		areas = append(areas, focusResults)
	}
	areas = append(areas, focusClose)

	idx := 0
	for i, a := range areas {
		if a == m.area {
			idx = i
		}
	}
	next := areas[(idx+delta+len(areas))%len(areas)]
	switch next {
	case focusInput:
		return m.focusInput()
	case focusResults:
		m.focusResults()
	default:
		m.input.Blur()
		m.area = focusClose
	}
	return nil
}

// Update handles messages addressed to the dialog
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ResultsMsg:
		if msg.DialogID != m.id {
			return nil
		}
		return m.handleResults(msg)

	case tea.KeyMsg:
		if !m.visible {
			return nil
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		if !m.visible {
			return nil
		}
		return m.handleMouse(msg)
	}

	if m.visible && m.area == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		return m.Dismiss()
	case "tab":
		return m.cycleFocus(1)
	case "shift+tab":
		return m.cycleFocus(-1)
	}

	switch m.area {
	case focusResults:
		switch msg.String() {
		case "up", "k":
			if m.cursor == 0 {
				return m.focusInput()
			}
			m.moveCursor(-1)
			return nil
		case "down", "j":
			m.moveCursor(1)
			return nil
		case "pgup":
			m.moveCursor(-m.visibleRows())
			return nil
		case "pgdown":
			m.moveCursor(m.visibleRows())
			return nil
		case "home", "g":
			m.moveCursor(-len(m.results))
			return nil
		case "end", "G":
			m.moveCursor(len(m.results))
			return nil
		case "enter", " ":
			return m.SelectRow(m.cursor)
		}
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeyBackspace {
			focus := m.focusInput()
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return tea.Batch(focus, cmd)
		}
		return nil

	case focusClose:
		switch msg.String() {
		case "enter", " ":
			return m.Dismiss()
		}
		return nil
	}

	switch msg.String() {
	case "enter":
		return m.Submit()
	case "down":
		if len(m.results) > 0 {
			m.focusResults()
		}
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if len(m.results) > 0 {
			m.focusResults()
			m.moveCursor(-1)
		}
		return nil
	case tea.MouseButtonWheelDown:
		if len(m.results) > 0 {
			m.focusResults()
			m.moveCursor(1)
		}
		return nil
	}

	if m.opts.Zones == nil || msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	z := m.opts.Zones
	switch {
	case z.Get(m.zoneID("search")).InBounds(msg):
		return m.Submit()
	case z.Get(m.zoneID("close")).InBounds(msg):
		return m.Dismiss()
	case z.Get(m.zoneID("input")).InBounds(msg):
		return m.focusInput()
	}
	for i := m.offset; i < len(m.results) && i < m.offset+m.visibleRows(); i++ {
		if z.Get(m.zoneID(fmt.Sprintf("select-%d", i))).InBounds(msg) {
			return m.SelectRow(i)
		}
		if z.Get(m.zoneID(fmt.Sprintf("row-%d", i))).InBounds(msg) {
			m.focusResults()
			m.cursor = i
			return nil
		}
	}
	return nil
}

func (m *Model) moveCursor(delta int) {
	if len(m.results) == 0 {
		return
	}
	m.cursor = clamp(m.cursor+delta, 0, len(m.results)-1)
	m.scrollToCursor()
}

func (m *Model) scrollToCursor() {
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *Model) zoneID(name string) string {
	return m.id + ":" + name
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
