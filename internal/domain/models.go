package domain

// ResultRow is one record returned by the search backend, field name -> value.
// Its shape is whatever the backend sent.
type ResultRow map[string]string

// Get returns the value for field, or "" when the row does not carry it
func (r ResultRow) Get(field string) string {
	if r == nil {
		return ""
	}
	return r[field]
}

// Clone returns a copy that can be handed to callers without sharing the map
func (r ResultRow) Clone() ResultRow {
	if r == nil {
		return nil
	}
	out := make(ResultRow, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// SearchRequest is the body posted to the search endpoint
type SearchRequest struct {
	Table string `json:"table"`
	Field string `json:"field"`
	Value string `json:"value"`
}

// InvoiceStatus is the lifecycle state of the invoice being edited
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "draft"
	InvoiceFinalized InvoiceStatus = "finalized"
	InvoiceVoided    InvoiceStatus = "voided"
)
