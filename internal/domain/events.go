package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventInvoiceStateChanged EventType = "InvoiceStateChanged"
	EventRowSelected         EventType = "RowSelected"
	EventSelectionBlocked    EventType = "SelectionBlocked"
	EventSearchFailed        EventType = "SearchFailed"
	EventConfigLoaded        EventType = "ConfigLoaded"
	EventConfigSaved         EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// InvoiceStateChangedEvent is emitted when the invoice moves to another lifecycle state
type InvoiceStateChangedEvent struct {
	Status InvoiceStatus
}

func (e InvoiceStateChangedEvent) Type() EventType { return EventInvoiceStateChanged }

// RowSelectedEvent is emitted after a search row was handed to the form
type RowSelectedEvent struct {
	Table string
	Row   ResultRow
}

func (e RowSelectedEvent) Type() EventType { return EventRowSelected }

// SelectionBlockedEvent is emitted when a row was picked on a non-draft invoice
type SelectionBlockedEvent struct {
	Table  string
	Status InvoiceStatus
}

func (e SelectionBlockedEvent) Type() EventType { return EventSelectionBlocked }

// SearchFailedEvent is emitted when the backend could not answer a search
type SearchFailedEvent struct {
	Request SearchRequest
	Err     error
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Endpoint string
	Dialogs  []string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct{}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
