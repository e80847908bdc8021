package input

import (
	tea "github.com/charmbracelet/bubbletea"

	"invoicesearch/internal/ui/input/modes"
	"invoicesearch/internal/ui/input/types"
)

type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	search      *modes.SearchMode
}

func New() *Handler {
	h := &Handler{
		currentMode: types.ModeForm,
		modes:       make(map[types.Mode]types.ModeHandler),
		search:      modes.NewSearchMode(),
	}

	h.modes[types.ModeForm] = modes.NewFormMode()
	h.modes[types.ModeSearch] = h.search

	return h
}

// HandleKey runs the key through the current mode and applies mode changes.
// Actions other than ChangeModeAction are returned for the model to execute.
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) []types.Action {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)
	if !consumed {
		return nil
	}

	var allActions []types.Action
	for _, action := range actions {
		if changeMode, ok := action.(types.ChangeModeAction); ok {
			allActions = append(allActions, h.switchMode(changeMode, ctx)...)
			continue
		}
		allActions = append(allActions, action)
	}

	return allActions
}

// ChangeMode switches modes from outside the key path, e.g. when a dialog closes itself
func (h *Handler) ChangeMode(mode types.Mode, ctx types.Context) []types.Action {
	return h.switchMode(types.ChangeModeAction{Mode: mode}, ctx)
}

func (h *Handler) switchMode(change types.ChangeModeAction, ctx types.Context) []types.Action {
	if change.Mode == h.currentMode {
		return nil
	}

	var out []types.Action
	if current := h.modes[h.currentMode]; current != nil {
		out = append(out, current.Exit(ctx)...)
	}

	h.currentMode = change.Mode
	if change.Mode == types.ModeSearch {
		if id, ok := change.Data.(string); ok {
			h.search.SetDialog(id)
		}
	}

	if next := h.modes[h.currentMode]; next != nil {
		out = append(out, next.Enter(ctx)...)
	}
	return out
}

// CurrentMode returns the active mode
func (h *Handler) CurrentMode() types.Mode {
	if h == nil {
		return types.ModeForm
	}
	return h.currentMode
}

// ModeName returns the display name of the active mode
func (h *Handler) ModeName() string {
	if m := h.modes[h.currentMode]; m != nil {
		return m.Name()
	}
	return ""
}
