package form

// Mode says what a form is doing: nothing, creating a new record, or
// editing an existing one. Update carries only the record ID; field
// values are seeded separately so drafts can override them.
type Mode interface {
	isMode()
}

// Closed means no form is open.
type Closed struct{}

// Create means the form is composing a new record.
type Create struct{}

// Update means the form is editing the record with the given ID.
type Update struct {
	ID string
}

func (Closed) isMode() {}
func (Create) isMode() {}
func (Update) isMode() {}
