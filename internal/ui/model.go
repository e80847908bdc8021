package ui

import (
	"log"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"invoicesearch/internal/config"
	"invoicesearch/internal/domain"
	"invoicesearch/internal/eventbus"
	"invoicesearch/internal/invoice"
	"invoicesearch/internal/ui/commands"
	"invoicesearch/internal/ui/dialog"
	"invoicesearch/internal/ui/handlers"
	"invoicesearch/internal/ui/input"
	inputtypes "invoicesearch/internal/ui/input/types"
	"invoicesearch/internal/ui/photo"
	"invoicesearch/internal/ui/state"
	"invoicesearch/internal/ui/toast"
	"invoicesearch/internal/ui/views"
)

// Deps are the collaborators the model does not own
type Deps struct {
	Bus      eventbus.EventBus
	Status   *invoice.StatusCell
	Searcher dialog.Searcher
	Zones    *zone.Manager // nil disables mouse hit testing
	Photos   *photo.Loader // nil uses a loader built from the config
}

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	state  *state.AppState // centralized state
	status *invoice.StatusCell

	width       int
	height      int
	inPagerMode bool

	// Search dialogs by id, in config order
	dialogs     map[string]*dialog.Model
	dialogOrder []string
	dialogKeys  map[string]string // key binding -> dialog id
	dialogCfg   map[string]config.DialogConfig

	toast        toast.Model
	photos       *photo.Loader
	zones        *zone.Manager
	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	cmdExecutor  *commands.Executor
	eventHandler *handlers.EventHandler
	inputHandler *input.Handler

	// Program reference for terminal management
	program *tea.Program
}

// fieldFocuser moves form focus to one field when a dialog closes
type fieldFocuser struct {
	state *state.AppState
	name  string
}

func (f fieldFocuser) Focus() tea.Cmd {
	if !f.state.FocusField(f.name) {
		log.Printf("Focus target %q is not a form field", f.name)
	}
	return nil
}

// NewModel creates a new UI model
func NewModel(cfg *config.Config, deps Deps) *Model {
	status := deps.Status
	if status == nil {
		status = invoice.NewStatusCell(invoice.Draft)
	}
	photos := deps.Photos
	if photos == nil {
		photos = photo.NewLoader(photo.ParseProtocol(cfg.UISettings.ImageProtocol), nil)
	}

	appState := state.NewAppState(formFields(cfg.Dialogs))

	m := &Model{
		bus:          deps.Bus,
		config:       cfg,
		state:        appState,
		status:       status,
		dialogs:      make(map[string]*dialog.Model),
		dialogKeys:   make(map[string]string),
		dialogCfg:    make(map[string]config.DialogConfig),
		toast:        toast.New(time.Duration(cfg.UISettings.ToastSeconds) * time.Second),
		photos:       photos,
		zones:        deps.Zones,
		renderer:     views.NewRenderer(deps.Zones),
		helpRenderer: NewHelpRenderer(),
		cmdExecutor:  commands.NewExecutor(appState, status, deps.Bus),
		eventHandler: handlers.NewEventHandler(appState),
		inputHandler: input.New(),
	}

	for _, dc := range cfg.Dialogs {
		id := dc.Table
		if _, dup := m.dialogs[id]; dup {
			id = dc.Key
		}
		m.dialogs[id] = m.newDialog(id, dc, deps.Searcher)
		m.dialogOrder = append(m.dialogOrder, id)
		m.dialogKeys[dc.Key] = id
		m.dialogCfg[id] = dc
		m.helpRenderer.AddDialog(dc.Key, dc.Title, dc.Table, dc.Field)
	}

	return m
}

func (m *Model) newDialog(id string, dc config.DialogConfig, searcher dialog.Searcher) *dialog.Model {
	opts := dialog.Options{
		ID:       id,
		Title:    dc.Title,
		Table:    dc.Table,
		Field:    dc.Field,
		Fields:   dc.Fields,
		Message:  dc.Message,
		Status:   m.status,
		Searcher: searcher,
		Photos:   m.photos,
		Zones:    m.zones,
		OnSelect: func(row domain.ResultRow) {
			m.cmdExecutor.ExecuteApplySelection(dc.Table, row, dc.Mapping)
		},
		OnShowChange: func(show bool) {
			if !show {
				m.dialogClosed(id)
			}
		},
		OnSearchError: func(req domain.SearchRequest, err error) {
			event := eventbus.SearchFailedEvent{Request: req, Err: err}
			m.eventHandler.HandleEvent(event)
			if m.bus != nil {
				m.bus.Publish(event)
			}
		},
		Notify: func(text string) tea.Cmd {
			if m.bus != nil {
				m.bus.Publish(eventbus.SelectionBlockedEvent{Table: dc.Table, Status: m.status.Load()})
			}
			return m.toast.Show(text, toast.Error)
		},
	}
	if dc.FocusOnClose != "" {
		opts.FocusOnClose = fieldFocuser{state: m.state, name: dc.FocusOnClose}
	}
	return dialog.New(opts)
}

// formFields lists the form inputs the dialogs can fill, focus targets first
func formFields(dialogs []config.DialogConfig) []string {
	var names []string
	for _, dc := range dialogs {
		if dc.FocusOnClose != "" {
			names = append(names, dc.FocusOnClose)
		}
		targets := make([]string, 0, len(dc.Mapping))
		for _, formField := range dc.Mapping {
			targets = append(targets, formField)
		}
		sort.Strings(targets)
		names = append(names, targets...)
	}
	return names
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
}

// State exposes the form state
func (m *Model) State() *state.AppState {
	return m.state
}

// Dialog returns the search dialog with the given id
func (m *Model) Dialog(id string) *dialog.Model {
	return m.dialogs[id]
}

// ActiveDialog returns the open dialog, or nil
func (m *Model) ActiveDialog() *dialog.Model {
	if m.state.ActiveDialog == "" {
		return nil
	}
	return m.dialogs[m.state.ActiveDialog]
}

// Toast exposes the notification model
func (m *Model) Toast() toast.Model {
	return m.toast
}

// InputMode returns the current input mode
func (m *Model) InputMode() inputtypes.Mode {
	return m.inputHandler.CurrentMode()
}

// FocusedField implements inputtypes.Context
func (m *Model) FocusedField() string {
	return m.state.FocusedField()
}

// FieldCount implements inputtypes.Context
func (m *Model) FieldCount() int {
	return len(m.state.Fields)
}

// DialogForKey implements inputtypes.Context
func (m *Model) DialogForKey(key string) (string, bool) {
	id, ok := m.dialogKeys[key]
	return id, ok
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, d := range m.dialogs {
			d.SetSize(msg.Width, msg.Height)
		}
		return m, nil

	case tea.KeyMsg:
		if m.state.ShowHelp {
			return m, m.handleHelpKey(msg)
		}
		actions := m.inputHandler.HandleKey(msg, m)
		return m, m.executeActions(actions, msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case dialog.ResultsMsg:
		if d := m.dialogs[msg.DialogID]; d != nil {
			return m, d.Update(msg)
		}
		return m, nil

	case photo.LoadedMsg:
		if msg.Err != nil {
			log.Printf("Photo %s: %v", msg.URL, msg.Err)
		}
		m.photos.Store(msg)
		return m, nil

	case EventMsg:
		return m, m.eventHandler.HandleEvent(msg.Event)

	case helpPagerMsg:
		if msg.err != nil {
			log.Printf("Help pager failed: %v", msg.err)
			m.state.ShowHelp = true
			m.state.HelpScrollOffset = 0
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil
	}

	if m.toast.Update(msg) {
		return m, nil
	}

	// Cursor blink and other textinput internals
	if d := m.ActiveDialog(); d != nil {
		return m, d.Update(msg)
	}
	return m, nil
}

func (m *Model) executeActions(actions []inputtypes.Action, msg tea.KeyMsg) tea.Cmd {
	var cmds []tea.Cmd
	for _, action := range actions {
		if cmd := m.executeAction(action, msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 1 {
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

func (m *Model) executeAction(action inputtypes.Action, msg tea.KeyMsg) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.FocusFieldAction:
		m.state.MoveFocus(a.Delta)
	case inputtypes.ClearFieldAction:
		return m.cmdExecutor.ExecuteClearField(a.Field)
	case inputtypes.OpenDialogAction:
		return m.openDialog(a.DialogID)
	case inputtypes.ForwardToDialogAction:
		d := m.ActiveDialog()
		if d == nil {
			m.inputHandler.ChangeMode(inputtypes.ModeForm, m)
			return nil
		}
		return d.Update(msg)
	case inputtypes.CycleInvoiceStatusAction:
		return m.cmdExecutor.ExecuteCycleStatus()
	case inputtypes.ToggleHelpAction:
		return m.showHelp()
	case inputtypes.QuitAction:
		return tea.Quit
	default:
		log.Printf("Unhandled action %s", action.Type())
	}
	return nil
}

func (m *Model) openDialog(id string) tea.Cmd {
	d := m.dialogs[id]
	if d == nil {
		m.inputHandler.ChangeMode(inputtypes.ModeForm, m)
		return nil
	}
	m.state.ActiveDialog = id
	return d.SetShow(true)
}

// dialogClosed runs when a dialog hands visibility back to the form
func (m *Model) dialogClosed(id string) {
	if m.state.ActiveDialog == id {
		m.state.ActiveDialog = ""
	}
	m.inputHandler.ChangeMode(inputtypes.ModeForm, m)
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if d := m.ActiveDialog(); d != nil {
		return d.Update(msg)
	}
	if m.zones == nil || msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	for _, f := range m.state.Fields {
		if m.zones.Get(views.FieldZoneID(f.Name)).InBounds(msg) {
			m.state.FocusField(f.Name)
			return nil
		}
	}
	return nil
}

func (m *Model) handleHelpKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "?", "q":
		m.state.ShowHelp = false
		m.state.HelpScrollOffset = 0
	case "up", "k":
		if m.state.HelpScrollOffset > 0 {
			m.state.HelpScrollOffset--
		}
	case "down", "j":
		m.state.HelpScrollOffset++
	case "ctrl+c":
		return tea.Quit
	}
	return nil
}

// showHelp opens the help in ov, or inline when there is no program to suspend
func (m *Model) showHelp() tea.Cmd {
	if m.program == nil {
		m.state.ShowHelp = true
		m.state.HelpScrollOffset = 0
		return nil
	}
	content := m.helpRenderer.RenderHelpContent()
	helpOps := NewHelpOps(m.program)
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := helpOps.ShowHelpInPager(content)
		m.program.Send(resumeRenderingMsg{})
		return helpPagerMsg{err: err}
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}

	vs := views.ViewState{
		Width:            m.width,
		Height:           m.height,
		FocusIndex:       m.state.FocusIndex,
		InvoiceStatus:    string(m.status.Load()),
		StatusMessage:    m.state.StatusMessage,
		StatusIsError:    m.state.StatusIsError,
		ShowHelp:         m.state.ShowHelp,
		HelpScrollOffset: m.state.HelpScrollOffset,
		Toast:            m.toast.View(),
	}
	if m.inputHandler.CurrentMode() != inputtypes.ModeForm {
		vs.Mode = m.inputHandler.ModeName()
	}
	for _, f := range m.state.Fields {
		vs.Fields = append(vs.Fields, views.FieldView{Name: f.Name, Label: f.Label, Value: f.Value})
	}
	for _, id := range m.dialogOrder {
		dc := m.dialogCfg[id]
		vs.Hints = append(vs.Hints, views.DialogHint{Key: dc.Key, Title: dc.Title})
	}
	if vs.ShowHelp {
		vs.HelpContent = m.helpRenderer.RenderHelpContent()
	}
	if d := m.ActiveDialog(); d != nil {
		vs.Dialog = d.View()
	}

	out := m.renderer.Render(vs)
	if m.zones != nil {
		return m.zones.Scan(out)
	}
	return out
}
