package dialog

import (
	"strings"

	"invoicesearch/internal/domain"
)

// FieldKind says how a column of the results table is presented
type FieldKind int

const (
	FieldText      FieldKind = iota // value as-is
	FieldImage                      // value is an image URL
	FieldComposite                  // value joined with a companion field
	FieldHidden                     // not rendered as its own column
)

const (
	PhotoField  = "photourl"
	PrefixField = "pid_prefix"
	PIDField    = "pid"
)

// fieldKinds holds the fields that need special presentation
var fieldKinds = map[string]FieldKind{
	PhotoField:  FieldImage,
	PrefixField: FieldHidden,
	PIDField:    FieldComposite,
}

// composites maps a composite field to the field rendered before it
var composites = map[string]string{
	PIDField: PrefixField,
}

// ClassifyField returns the presentation kind for a field name
func ClassifyField(name string) FieldKind {
	if k, ok := fieldKinds[name]; ok {
		return k
	}
	return FieldText
}

// HeaderLabel returns the column heading for a field
func HeaderLabel(name string) string {
	if ClassifyField(name) == FieldImage {
		return "FOTO"
	}
	return strings.ToUpper(name)
}

// Cell returns the display text of field for row. Image fields yield their
// URL; hidden fields yield "".
func Cell(row domain.ResultRow, name string) string {
	switch ClassifyField(name) {
	case FieldHidden:
		return ""
	case FieldComposite:
		return row.Get(composites[name]) + "-" + row.Get(name)
	default:
		return row.Get(name)
	}
}

// Columns filters fields down to those rendered as their own column,
// keeping the caller's order
func Columns(fields []string) []string {
	cols := make([]string, 0, len(fields))
	for _, f := range fields {
		if ClassifyField(f) != FieldHidden {
			cols = append(cols, f)
		}
	}
	return cols
}
