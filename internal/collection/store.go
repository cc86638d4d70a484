package collection

import (
	"github.com/mkvist/hatchctl/internal/domain"
)

// State tracks the load lifecycle of a Store.
type State int

const (
	StateEmpty State = iota
	StateLoading
	StateReady
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Store holds the authoritative client-side collection for one resource.
// Reconciliation events from local CRUD calls and from the push channel go
// through Apply with identical semantics.
//
// Every mutation replaces the backing slice with a fresh one so that
// consumers comparing snapshot references observe a change, while record
// pointers untouched by the event keep their identity.
//
// Store is not safe for concurrent use; in the TUI all events are applied
// on the bubbletea update loop.
type Store[T domain.Entity] struct {
	state   State
	records []T
	index   map[string]int
	// Tombstones for deleted ids. A stale Created/Updated delivered after
	// a delete must not resurrect the record.
	deleted map[string]struct{}
}

// NewStore creates an empty Store.
func NewStore[T domain.Entity]() *Store[T] {
	return &Store[T]{
		state:   StateEmpty,
		index:   make(map[string]int),
		deleted: make(map[string]struct{}),
	}
}

func (s *Store[T]) State() State { return s.state }

// BeginLoad marks the store as loading. Records already held stay visible
// until SetRecords replaces them.
func (s *Store[T]) BeginLoad() {
	s.state = StateLoading
}

// SetRecords installs a freshly fetched collection and moves the store to
// Ready. Duplicate ids in the input keep the last occurrence. Tombstones
// are cleared: the fetch is a new authoritative baseline.
func (s *Store[T]) SetRecords(recs []T) {
	s.records = make([]T, 0, len(recs))
	s.index = make(map[string]int, len(recs))
	s.deleted = make(map[string]struct{})
	for _, r := range recs {
		id := r.EntityID()
		if at, ok := s.index[id]; ok {
			s.records[at] = r
			continue
		}
		s.index[id] = len(s.records)
		s.records = append(s.records, r)
	}
	s.state = StateReady
}

// Records returns the current snapshot. Callers must not mutate it.
func (s *Store[T]) Records() []T { return s.records }

func (s *Store[T]) Len() int { return len(s.records) }

// Get returns the record with the given id, if present.
func (s *Store[T]) Get(id string) (T, bool) {
	var zero T
	at, ok := s.index[id]
	if !ok {
		return zero, false
	}
	return s.records[at], true
}

// Apply reconciles one event into the collection and reports whether the
// collection changed. Transition rules:
//
//   - Created(r): existing id degrades to Updated(r); deleted id is ignored.
//   - Updated(r): missing id degrades to Created(r); an event strictly
//     older than the held record (by UpdatedAt) is dropped.
//   - Deleted(id): missing id is a no-op; otherwise the record is removed
//     and the id tombstoned.
func (s *Store[T]) Apply(ev Event[T]) bool {
	switch ev.Kind {
	case EventCreated:
		return s.upsert(ev.Record)
	case EventUpdated:
		return s.upsert(ev.Record)
	case EventDeleted:
		return s.remove(ev.ID)
	default:
		return false
	}
}

func (s *Store[T]) upsert(rec T) bool {
	id := rec.EntityID()
	if id == "" {
		return false
	}
	if _, gone := s.deleted[id]; gone {
		return false
	}

	at, exists := s.index[id]
	if exists {
		// Arrival order wins unless the incoming record is verifiably
		// stale: an UpdatedAt strictly before the held one means a push
		// event and a local response raced and this is the loser.
		held := s.records[at]
		if !rec.EntityUpdatedAt().IsZero() && !held.EntityUpdatedAt().IsZero() &&
			rec.EntityUpdatedAt().Before(held.EntityUpdatedAt()) {
			return false
		}
		next := make([]T, len(s.records))
		copy(next, s.records)
		next[at] = rec
		s.records = next
		return true
	}

	next := make([]T, len(s.records), len(s.records)+1)
	copy(next, s.records)
	next = append(next, rec)
	s.records = next
	s.index[id] = len(next) - 1
	return true
}

func (s *Store[T]) remove(id string) bool {
	at, ok := s.index[id]
	if !ok {
		return false
	}
	next := make([]T, 0, len(s.records)-1)
	next = append(next, s.records[:at]...)
	next = append(next, s.records[at+1:]...)
	s.records = next

	delete(s.index, id)
	for i := at; i < len(next); i++ {
		s.index[next[i].EntityID()] = i
	}
	s.deleted[id] = struct{}{}
	return true
}
