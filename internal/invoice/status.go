// Package invoice holds the invoice lifecycle state shared across the UI.
package invoice

import (
	"fmt"
	"strings"
	"sync/atomic"

	"invoicesearch/internal/domain"
)

// Status re-exports the domain lifecycle state
type Status = domain.InvoiceStatus

const (
	Draft     = domain.InvoiceDraft
	Finalized = domain.InvoiceFinalized
	Voided    = domain.InvoiceVoided
)

var order = []Status{Draft, Finalized, Voided}

// ParseStatus maps a string to one of the known states
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case Draft, Finalized, Voided:
		return st, nil
	default:
		return "", fmt.Errorf("unknown invoice status %q", s)
	}
}

// Next returns the state after s in the draft -> finalized -> voided cycle
func Next(s Status) Status {
	for i, st := range order {
		if st == s {
			return order[(i+1)%len(order)]
		}
	}
	return Draft
}

// StatusReader is the read-only view consulted at selection time
type StatusReader interface {
	Load() Status
}

// StatusCell holds the latest invoice status. Readers always see the most
// recent Store, whichever goroutine performed it.
type StatusCell struct {
	v atomic.Value
}

// NewStatusCell creates a cell holding initial
func NewStatusCell(initial Status) *StatusCell {
	c := &StatusCell{}
	c.v.Store(initial)
	return c
}

// Load returns the current status
func (c *StatusCell) Load() Status {
	if s, ok := c.v.Load().(Status); ok {
		return s
	}
	return Draft
}

// Store replaces the current status
func (c *StatusCell) Store(s Status) {
	c.v.Store(s)
}

// Cycle atomically advances the status to Next and returns the new value.
// Concurrent callers each move the cell exactly one step.
func (c *StatusCell) Cycle() Status {
	for {
		old := c.v.Load()
		cur, ok := old.(Status)
		if !ok {
			cur = Draft
		}
		next := Next(cur)
		if c.v.CompareAndSwap(old, next) {
			return next
		}
	}
}
