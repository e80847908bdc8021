package state

import (
	"strings"

	"invoicesearch/internal/domain"
)

// FormField is one input of the invoice line form
type FormField struct {
	Name  string
	Label string
	Value string
}

// AppState contains all the application state
type AppState struct {
	// Form data
	Fields     []FormField
	FocusIndex int // index into Fields

	// Dialog state
	ActiveDialog  string           // id of the open search dialog, "" when none
	LastSelection domain.ResultRow // last row handed to the form

	// UI state
	ShowHelp         bool
	HelpScrollOffset int
	StatusMessage    string
	StatusIsError    bool
}

var defaultLabels = map[string]string{
	"code":        "Código",
	"description": "Descripción",
	"price":       "Precio",
	"customer":    "Cliente",
	"taxid":       "NIF",
}

// Label returns the display label for a form field name
func Label(name string) string {
	if l, ok := defaultLabels[name]; ok {
		return l
	}
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// NewAppState creates state for a form with the given field names, in order
func NewAppState(fieldNames []string) *AppState {
	s := &AppState{}
	seen := make(map[string]bool, len(fieldNames))
	for _, name := range fieldNames {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		s.Fields = append(s.Fields, FormField{Name: name, Label: Label(name)})
	}
	return s
}

// FocusedField returns the name of the focused field
func (s *AppState) FocusedField() string {
	if s.FocusIndex < 0 || s.FocusIndex >= len(s.Fields) {
		return ""
	}
	return s.Fields[s.FocusIndex].Name
}

// MoveFocus moves focus by delta, wrapping around
func (s *AppState) MoveFocus(delta int) {
	n := len(s.Fields)
	if n == 0 {
		return
	}
	s.FocusIndex = ((s.FocusIndex+delta)%n + n) % n
}

// FocusField focuses the named field. It reports false if there is no such field.
func (s *AppState) FocusField(name string) bool {
	for i, f := range s.Fields {
		if f.Name == name {
			s.FocusIndex = i
			return true
		}
	}
	return false
}

// SetField stores value in the named field
func (s *AppState) SetField(name, value string) bool {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			s.Fields[i].Value = value
			return true
		}
	}
	return false
}

// FieldValue returns the value of the named field
func (s *AppState) FieldValue(name string) string {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

// ClearField empties the named field
func (s *AppState) ClearField(name string) {
	s.SetField(name, "")
}
