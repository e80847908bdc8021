package commands

import (
	tea "github.com/charmbracelet/bubbletea"

	"invoicesearch/internal/domain"
	"invoicesearch/internal/eventbus"
	"invoicesearch/internal/invoice"
	"invoicesearch/internal/ui/state"
)

// Executor handles command execution
type Executor struct {
	ctx *CommandContext
}

// NewExecutor creates a new command executor
func NewExecutor(state *state.AppState, status *invoice.StatusCell, bus eventbus.EventBus) *Executor {
	return &Executor{
		ctx: &CommandContext{
			State:  state,
			Status: status,
			Bus:    bus,
		},
	}
}

// ExecuteCycleStatus creates and executes a cycle status command
func (e *Executor) ExecuteCycleStatus() tea.Cmd {
	return NewCycleStatusCommand(e.ctx).Execute()
}

// ExecuteApplySelection creates and executes an apply selection command
func (e *Executor) ExecuteApplySelection(table string, row domain.ResultRow, mapping map[string]string) tea.Cmd {
	return NewApplySelectionCommand(e.ctx, table, row, mapping).Execute()
}

// ExecuteClearField creates and executes a clear field command
func (e *Executor) ExecuteClearField(field string) tea.Cmd {
	return NewClearFieldCommand(e.ctx, field).Execute()
}
