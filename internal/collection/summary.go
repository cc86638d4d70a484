package collection

import "github.com/mkvist/hatchctl/internal/domain"

// Summary holds the dashboard counters derived from one collection.
type Summary struct {
	Total         int
	ByStatus      map[string]int
	LowStock      int
	UniqueRefs    int
	TotalQuantity float64
}

// Summarize recomputes the counters in full from a snapshot. Collections
// are dashboard-scale, so there is no incremental maintenance.
func Summarize[T domain.Entity](records []T, cfg Config[T]) Summary {
	s := Summary{
		Total:    len(records),
		ByStatus: make(map[string]int),
	}

	refs := make(map[string]struct{})
	for _, rec := range records {
		if cfg.StatusOf != nil {
			if status := cfg.StatusOf(rec); status != "" {
				s.ByStatus[status]++
			}
		}
		if cfg.LowStockOf != nil && cfg.LowStockOf(rec) {
			s.LowStock++
		}
		if cfg.ForeignKeyOf != nil {
			if fk := cfg.ForeignKeyOf(rec); fk != "" {
				refs[fk] = struct{}{}
			}
		}
		if cfg.QuantityOf != nil {
			s.TotalQuantity += cfg.QuantityOf(rec)
		}
	}
	s.UniqueRefs = len(refs)
	return s
}
