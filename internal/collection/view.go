package collection

import (
	"sort"
	"strings"

	"github.com/mkvist/hatchctl/internal/domain"
)

// View is the derived, render-ready projection of a collection. It is
// recomputed in full from (records, Config, Query) and never mutated.
type View[T domain.Entity] struct {
	// Rows is the current page window.
	Rows []T
	// Filtered is the whole filtered+sorted result, used by exports.
	Filtered []T
	// Total is len(Filtered).
	Total int
	// Page is the effective page after clamping to [1, max(1,TotalPages)].
	Page       int
	TotalPages int
	// PageWindow holds at most 5 page numbers centered on Page.
	PageWindow []int
}

// Resolve computes the DerivedView for a snapshot. Deterministic: equal
// inputs yield structurally equal views.
func Resolve[T domain.Entity](records []T, cfg Config[T], q Query) View[T] {
	filtered := filter(records, cfg, q)
	sortRecords(filtered, cfg, q)

	pageSize := cfg.pageSize()
	total := len(filtered)
	totalPages := (total + pageSize - 1) / pageSize

	// Clamp rather than error: a delete shrinking the result set must
	// land the user on the last page that still has content.
	page := q.Page
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return View[T]{
		Rows:       filtered[start:end],
		Filtered:   filtered,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
		PageWindow: PageWindow(page, totalPages),
	}
}

// filter applies the free-text search (OR over the configured fields,
// case-insensitive substring) ANDed with every equality filter.
func filter[T domain.Entity](records []T, cfg Config[T], q Query) []T {
	term := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]T, 0, len(records))

	for _, rec := range records {
		if term != "" && !matchesSearch(rec, cfg, term) {
			continue
		}
		if !matchesFilters(rec, cfg, q.Filters) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func matchesSearch[T domain.Entity](rec T, cfg Config[T], term string) bool {
	if cfg.SearchFields == nil {
		return true
	}
	for _, field := range cfg.SearchFields(rec) {
		if field == "" {
			continue
		}
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func matchesFilters[T domain.Entity](rec T, cfg Config[T], filters map[string]string) bool {
	if len(filters) == 0 || cfg.FilterValue == nil {
		return true
	}
	for key, want := range filters {
		if cfg.FilterValue(rec, key) != want {
			return false
		}
	}
	return true
}

// sortRecords sorts in place by the query's column, or the config default.
// The sort is stable so records comparing equal keep collection order.
func sortRecords[T domain.Entity](records []T, cfg Config[T], q Query) {
	key := q.SortKey
	if key == "" {
		key = cfg.DefaultSort
	}
	field, ok := cfg.SortFields[key]
	if !ok {
		return
	}

	less := lessFunc(records, field)
	if less == nil {
		return
	}
	if q.SortOrder == SortDesc {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}
	sort.SliceStable(records, less)
}

func lessFunc[T domain.Entity](records []T, field SortField[T]) func(i, j int) bool {
	switch field.Kind {
	case FieldString:
		if field.String == nil {
			return nil
		}
		return func(i, j int) bool {
			return strings.ToLower(field.String(records[i])) < strings.ToLower(field.String(records[j]))
		}
	case FieldNumber:
		if field.Number == nil {
			return nil
		}
		return func(i, j int) bool {
			return field.Number(records[i]) < field.Number(records[j])
		}
	case FieldTime:
		if field.Time == nil {
			return nil
		}
		return func(i, j int) bool {
			return field.Time(records[i]).Before(field.Time(records[j]))
		}
	default:
		return nil
	}
}

// pageWindowSize is the maximum number of pager buttons shown.
const pageWindowSize = 5

// PageWindow returns up to pageWindowSize page numbers centered on the
// current page, clamped to [1, totalPages].
func PageWindow(page, totalPages int) []int {
	if totalPages < 1 {
		return nil
	}
	start := page - pageWindowSize/2
	if start < 1 {
		start = 1
	}
	end := start + pageWindowSize - 1
	if end > totalPages {
		end = totalPages
		start = end - pageWindowSize + 1
		if start < 1 {
			start = 1
		}
	}
	window := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		window = append(window, p)
	}
	return window
}
