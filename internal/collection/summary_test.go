package collection

import (
	"testing"

	"github.com/mkvist/hatchctl/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestSummarize_StatusBuckets(t *testing.T) {
	records := []*domain.Asset{
		asset("a1", "Pump", domain.AssetActive),
		asset("a2", "Tank", domain.AssetActive),
		asset("a3", "Truck", domain.AssetRetired),
	}

	s := Summarize(records, testAssetConfig())
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, map[string]int{"ACTIVE": 2, "RETIRED": 1}, s.ByStatus)
}

func TestSummarize_FeedstockLowStockAndRefs(t *testing.T) {
	cfg := Config[*domain.Feedstock]{
		Resource:     domain.ResourceFeedstock,
		LowStockOf:   func(f *domain.Feedstock) bool { return f.LowStock() },
		ForeignKeyOf: func(f *domain.Feedstock) string { return f.CategoryID },
		QuantityOf:   func(f *domain.Feedstock) float64 { return f.Quantity },
	}

	records := []*domain.Feedstock{
		{ID: "f1", Name: "Pellets", CategoryID: "c1", Quantity: 3, MinQuantity: 5},
		{ID: "f2", Name: "Flakes", CategoryID: "c1", Quantity: 50, MinQuantity: 5},
		{ID: "f3", Name: "Krill", CategoryID: "c2", Quantity: 5, MinQuantity: 5},
		{ID: "f4", Name: "Algae", CategoryID: "", Quantity: 9},
	}

	s := Summarize(records, cfg)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.LowStock, "quantity at or below threshold counts")
	assert.Equal(t, 2, s.UniqueRefs, "empty foreign keys are not counted")
	assert.InDelta(t, 67.0, s.TotalQuantity, 0.001)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, testAssetConfig())
	assert.Equal(t, 0, s.Total)
	assert.Empty(t, s.ByStatus)
}
