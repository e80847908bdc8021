package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"invoicesearch/internal/ui/input/types"
)

// FormMode handles keys while the invoice form has focus
type FormMode struct{}

func NewFormMode() *FormMode {
	return &FormMode{}
}

func (m *FormMode) Name() string {
	return "form"
}

func (m *FormMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *FormMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *FormMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	// Dialog bindings win over everything but ctrl+c
	if msg.Type != tea.KeyCtrlC {
		if id, ok := ctx.DialogForKey(msg.String()); ok {
			return []types.Action{
				types.OpenDialogAction{DialogID: id},
				types.ChangeModeAction{Mode: types.ModeSearch, Data: id},
			}, true
		}
	}

	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{}}, true

	case tea.KeyTab, tea.KeyDown:
		return []types.Action{types.FocusFieldAction{Delta: 1}}, true

	case tea.KeyShiftTab, tea.KeyUp:
		return []types.Action{types.FocusFieldAction{Delta: -1}}, true

	case tea.KeyBackspace, tea.KeyDelete:
		if ctx.FocusedField() != "" {
			return []types.Action{types.ClearFieldAction{Field: ctx.FocusedField()}}, true
		}
		return nil, false

	case tea.KeyCtrlS:
		return []types.Action{types.CycleInvoiceStatusAction{}}, true
	}

	switch msg.String() {
	case "j":
		return []types.Action{types.FocusFieldAction{Delta: 1}}, true
	case "k":
		return []types.Action{types.FocusFieldAction{Delta: -1}}, true
	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true
	case "q":
		return []types.Action{types.QuitAction{}}, true
	}

	return nil, false
}
