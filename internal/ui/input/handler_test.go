package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicesearch/internal/ui/input/types"
)

type fakeContext struct {
	focused string
	dialogs map[string]string
}

func (c fakeContext) FocusedField() string { return c.focused }
func (c fakeContext) FieldCount() int      { return 3 }
func (c fakeContext) DialogForKey(key string) (string, bool) {
	id, ok := c.dialogs[key]
	return id, ok
}

func ctx() fakeContext {
	return fakeContext{focused: "code", dialogs: map[string]string{"ctrl+p": "products"}}
}

func TestDialogKeyOpensSearchMode(t *testing.T) {
	h := New()
	actions := h.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlP}, ctx())

	require.Equal(t, []types.Action{types.OpenDialogAction{DialogID: "products"}}, actions)
	assert.Equal(t, types.ModeSearch, h.CurrentMode())
	assert.Equal(t, "search:products", h.ModeName())
}

func TestSearchModeForwardsKeys(t *testing.T) {
	h := New()
	h.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlP}, ctx())

	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyEnter},
		{Type: tea.KeyEsc},
	} {
		assert.Equal(t, []types.Action{types.ForwardToDialogAction{}}, h.HandleKey(msg, ctx()), msg.String())
	}
	assert.Equal(t, []types.Action{types.QuitAction{}}, h.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlC}, ctx()))

	h.ChangeMode(types.ModeForm, ctx())
	assert.Equal(t, types.ModeForm, h.CurrentMode())
	assert.Equal(t, "form", h.ModeName())
}

func TestFormModeKeys(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want []types.Action
	}{
		{tea.KeyMsg{Type: tea.KeyTab}, []types.Action{types.FocusFieldAction{Delta: 1}}},
		{tea.KeyMsg{Type: tea.KeyShiftTab}, []types.Action{types.FocusFieldAction{Delta: -1}}},
		{tea.KeyMsg{Type: tea.KeyBackspace}, []types.Action{types.ClearFieldAction{Field: "code"}}},
		{tea.KeyMsg{Type: tea.KeyCtrlS}, []types.Action{types.CycleInvoiceStatusAction{}}},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")}, []types.Action{types.ToggleHelpAction{}}},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, []types.Action{types.QuitAction{}}},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			h := New()
			assert.Equal(t, tt.want, h.HandleKey(tt.msg, ctx()))
			assert.Equal(t, types.ModeForm, h.CurrentMode())
		})
	}
}

func TestChangeModeReturnsToForm(t *testing.T) {
	h := New()
	h.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlP}, ctx())
	require.Equal(t, types.ModeSearch, h.CurrentMode())

	h.ChangeMode(types.ModeForm, ctx())
	assert.Equal(t, types.ModeForm, h.CurrentMode())
	assert.Equal(t, "form", h.ModeName())
	assert.Nil(t, h.ChangeMode(types.ModeForm, ctx()), "switching to the current mode is a no-op")
}
