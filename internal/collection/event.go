package collection

// EventKind discriminates reconciliation events. The same event shapes are
// produced by local CRUD calls and by the realtime push channel.
type EventKind int

const (
	EventCreated EventKind = iota
	EventUpdated
	EventDeleted
)

func (k EventKind) String() string {
	switch k {
	case EventCreated:
		return "created"
	case EventUpdated:
		return "updated"
	case EventDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Event is one reconciliation step against a Store. Record is set for
// Created/Updated; Deleted carries only the id.
type Event[T any] struct {
	Kind   EventKind
	Record T
	ID     string
}

// Created builds a create event for a record.
func Created[T any](rec T) Event[T] {
	return Event[T]{Kind: EventCreated, Record: rec}
}

// Updated builds an update event for a record.
func Updated[T any](rec T) Event[T] {
	return Event[T]{Kind: EventUpdated, Record: rec}
}

// Deleted builds a delete event for an id.
func Deleted[T any](id string) Event[T] {
	return Event[T]{Kind: EventDeleted, ID: id}
}
