package types

// Navigation actions
type FocusFieldAction struct {
	Delta int // +1 next field, -1 previous
}

func (a FocusFieldAction) Type() string { return "focus_field" }

type ClearFieldAction struct {
	Field string
}

func (a ClearFieldAction) Type() string { return "clear_field" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data interface{} // Optional data for the mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Dialog actions
type OpenDialogAction struct {
	DialogID string
}

func (a OpenDialogAction) Type() string { return "open_dialog" }

// ForwardToDialogAction passes the key to the open search dialog
type ForwardToDialogAction struct{}

func (a ForwardToDialogAction) Type() string { return "forward_to_dialog" }

// Invoice actions
type CycleInvoiceStatusAction struct{}

func (a CycleInvoiceStatusAction) Type() string { return "cycle_invoice_status" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

// QuitAction ends the program, from 'q' in the form or ctrl+c anywhere
type QuitAction struct{}

func (a QuitAction) Type() string { return "quit" }
