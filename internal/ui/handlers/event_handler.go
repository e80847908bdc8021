package handlers

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"invoicesearch/internal/eventbus"
	"invoicesearch/internal/ui/state"
)

// EventHandler handles domain events and updates state
type EventHandler struct {
	state *state.AppState
}

// NewEventHandler creates a new event handler
func NewEventHandler(appState *state.AppState) *EventHandler {
	return &EventHandler{state: appState}
}

// HandleEvent processes domain events and returns any necessary commands
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.InvoiceStateChangedEvent:
		h.setStatus(fmt.Sprintf("Factura: %s", e.Status), false)

	case eventbus.SearchFailedEvent:
		h.setStatus(fmt.Sprintf("Search %s failed: %v", e.Request.Table, e.Err), true)

	case eventbus.ConfigLoadedEvent:
		h.setStatus(fmt.Sprintf("%d search dialogs against %s", len(e.Dialogs), e.Endpoint), false)
	}
	return nil
}

func (h *EventHandler) setStatus(msg string, isError bool) {
	h.state.StatusMessage = msg
	h.state.StatusIsError = isError
}
