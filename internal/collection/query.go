package collection

import (
	"time"

	"github.com/mkvist/hatchctl/internal/domain"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// FieldKind selects the comparator for a sortable field.
type FieldKind int

const (
	FieldString FieldKind = iota
	FieldNumber
	FieldTime
)

// SortField describes how one sortable column reads its value off a
// record. Exactly one extractor matching Kind must be set.
type SortField[T any] struct {
	Kind   FieldKind
	String func(T) string
	Number func(T) float64
	Time   func(T) time.Time
}

// Config parameterizes the generic pipeline for one resource: which string
// fields free-text search scans, which keys equality filters read, which
// columns sort and how, and how summary buckets are derived.
type Config[T domain.Entity] struct {
	Resource domain.Resource

	// PageSize of the derived view. Zero falls back to DefaultPageSize.
	PageSize int

	// SearchFields returns the strings the free-text search matches
	// against. Missing expansions should yield "" entries, not panic.
	SearchFields func(T) []string

	// FilterValue returns the record's value for an equality filter key
	// (e.g. "status", "category", "pool").
	FilterValue func(T, string) string

	// SortFields maps column keys to comparators. DefaultSort must be a
	// key of this map.
	SortFields  map[string]SortField[T]
	DefaultSort string

	// StatusOf buckets records for Summary.ByStatus. Optional.
	StatusOf func(T) string

	// ForeignKeyOf yields the related-record id counted by
	// Summary.UniqueRefs. Optional.
	ForeignKeyOf func(T) string

	// QuantityOf feeds Summary.TotalQuantity. Optional.
	QuantityOf func(T) float64

	// LowStockOf marks records counted by Summary.LowStock. Optional.
	LowStockOf func(T) bool
}

// DefaultPageSize matches the dashboard pages' fixed window.
const DefaultPageSize = 8

func (c Config[T]) pageSize() int {
	if c.PageSize > 0 {
		return c.PageSize
	}
	return DefaultPageSize
}

// Query is the full presentation state a DerivedView is computed from.
// The zero value is "everything, first page, default sort".
type Query struct {
	Search    string
	Filters   map[string]string
	SortKey   string
	SortOrder SortOrder
	Page      int
}

// WithSearch returns a copy with the search term replaced and the page
// reset to 1. Changing what the user is looking at restarts paging;
// pure data mutations (Store.Apply) never touch Query.
func (q Query) WithSearch(term string) Query {
	q.Search = term
	q.Page = 1
	return q
}

// WithFilter returns a copy with one equality filter set (empty value
// clears the key) and the page reset to 1.
func (q Query) WithFilter(key, value string) Query {
	filters := make(map[string]string, len(q.Filters)+1)
	for k, v := range q.Filters {
		filters[k] = v
	}
	if value == "" {
		delete(filters, key)
	} else {
		filters[key] = value
	}
	q.Filters = filters
	q.Page = 1
	return q
}

// WithSort returns a copy sorted by the given column and the page reset
// to 1. Re-selecting the current column flips the direction; a new column
// starts ascending.
func (q Query) WithSort(key string) Query {
	if q.SortKey == key {
		if q.SortOrder == SortAsc {
			q.SortOrder = SortDesc
		} else {
			q.SortOrder = SortAsc
		}
	} else {
		q.SortKey = key
		q.SortOrder = SortAsc
	}
	q.Page = 1
	return q
}

// WithPage returns a copy on the given page. Out-of-range values are
// clamped at resolve time, not here, because the bound depends on the
// filtered count.
func (q Query) WithPage(page int) Query {
	if page < 1 {
		page = 1
	}
	q.Page = page
	return q
}
