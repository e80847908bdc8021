package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"invoicesearch/internal/ui/input/types"
)

// SearchMode hands every key to the open search dialog. The dialog decides
// when it closes; the model then switches back to ModeForm.
type SearchMode struct {
	dialogID string
}

func NewSearchMode() *SearchMode {
	return &SearchMode{}
}

func (m *SearchMode) Name() string {
	if m.dialogID != "" {
		return "search:" + m.dialogID
	}
	return "search"
}

func (m *SearchMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *SearchMode) Exit(ctx types.Context) []types.Action {
	m.dialogID = ""
	return nil
}

// SetDialog records which dialog owns the keyboard
func (m *SearchMode) SetDialog(id string) {
	m.dialogID = id
}

func (m *SearchMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if msg.Type == tea.KeyCtrlC {
		return []types.Action{types.QuitAction{}}, true
	}
	return []types.Action{types.ForwardToDialogAction{}}, true
}
