package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"invoicesearch/internal/domain"
	"invoicesearch/internal/eventbus"
	"invoicesearch/internal/invoice"
	"invoicesearch/internal/ui/dialog"
	"invoicesearch/internal/ui/state"
)

// Command represents an executable action
type Command interface {
	Execute() tea.Cmd
}

// CommandContext provides context for command execution
type CommandContext struct {
	State  *state.AppState
	Status *invoice.StatusCell
	Bus    eventbus.EventBus
}

// CycleStatusCommand moves the invoice to its next lifecycle state
type CycleStatusCommand struct {
	ctx *CommandContext
}

// NewCycleStatusCommand creates a new cycle status command
func NewCycleStatusCommand(ctx *CommandContext) *CycleStatusCommand {
	return &CycleStatusCommand{ctx: ctx}
}

// Execute advances the status cell and announces the new state on the bus.
// The cell is the only writer; subscribers just observe.
func (c *CycleStatusCommand) Execute() tea.Cmd {
	next := c.ctx.Status.Cycle()
	c.ctx.State.StatusMessage = fmt.Sprintf("Factura: %s", next)
	c.ctx.State.StatusIsError = false
	if c.ctx.Bus != nil {
		c.ctx.Bus.Publish(eventbus.InvoiceStateChangedEvent{Status: next})
	}
	return nil
}

// ApplySelectionCommand copies a selected search row into the form
type ApplySelectionCommand struct {
	ctx     *CommandContext
	table   string
	row     domain.ResultRow
	mapping map[string]string
}

// NewApplySelectionCommand creates a command that fills form fields from row.
// mapping goes from result field to form field.
func NewApplySelectionCommand(ctx *CommandContext, table string, row domain.ResultRow, mapping map[string]string) *ApplySelectionCommand {
	return &ApplySelectionCommand{
		ctx:     ctx,
		table:   table,
		row:     row,
		mapping: mapping,
	}
}

// Execute fills the mapped fields using the same text the dialog displays
func (c *ApplySelectionCommand) Execute() tea.Cmd {
	filled := 0
	for resultField, formField := range c.mapping {
		if _, ok := c.row[resultField]; !ok {
			continue
		}
		if c.ctx.State.SetField(formField, dialog.Cell(c.row, resultField)) {
			filled++
		}
	}
	c.ctx.State.LastSelection = c.row
	c.ctx.State.StatusMessage = fmt.Sprintf("%s: %d campos actualizados", c.table, filled)
	c.ctx.State.StatusIsError = false
	if c.ctx.Bus != nil {
		c.ctx.Bus.Publish(eventbus.RowSelectedEvent{Table: c.table, Row: c.row})
	}
	return nil
}

// ClearFieldCommand empties one form field
type ClearFieldCommand struct {
	ctx   *CommandContext
	field string
}

// NewClearFieldCommand creates a new clear field command
func NewClearFieldCommand(ctx *CommandContext, field string) *ClearFieldCommand {
	return &ClearFieldCommand{ctx: ctx, field: field}
}

// Execute clears the field
func (c *ClearFieldCommand) Execute() tea.Cmd {
	c.ctx.State.ClearField(c.field)
	return nil
}
