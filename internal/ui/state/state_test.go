package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAppStateDedupesFields(t *testing.T) {
	s := NewAppState([]string{"code", "description", "code", "", "notes"})
	assert.Len(t, s.Fields, 3)
	assert.Equal(t, "Código", s.Fields[0].Label)
	assert.Equal(t, "Notes", s.Fields[2].Label)
	assert.Equal(t, "code", s.FocusedField())
}

func TestMoveFocusWraps(t *testing.T) {
	s := NewAppState([]string{"a", "b", "c"})
	s.MoveFocus(-1)
	assert.Equal(t, "c", s.FocusedField())
	s.MoveFocus(2)
	assert.Equal(t, "b", s.FocusedField())
}

func TestFieldValues(t *testing.T) {
	s := NewAppState([]string{"code", "price"})
	assert.True(t, s.SetField("price", "9.95"))
	assert.False(t, s.SetField("missing", "x"))
	assert.Equal(t, "9.95", s.FieldValue("price"))

	s.ClearField("price")
	assert.Empty(t, s.FieldValue("price"))

	assert.True(t, s.FocusField("price"))
	assert.False(t, s.FocusField("missing"))
	assert.Equal(t, "price", s.FocusedField())
}

func TestEmptyForm(t *testing.T) {
	s := NewAppState(nil)
	s.MoveFocus(1)
	assert.Empty(t, s.FocusedField())
}
