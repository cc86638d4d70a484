package collection

import (
	"fmt"
	"testing"
	"time"

	"github.com/mkvist/hatchctl/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAssetConfig() Config[*domain.Asset] {
	return Config[*domain.Asset]{
		Resource: domain.ResourceAsset,
		SearchFields: func(a *domain.Asset) []string {
			return []string{a.Name, a.Location, a.Description}
		},
		FilterValue: func(a *domain.Asset, key string) string {
			switch key {
			case "status":
				return string(a.Status)
			case "category":
				return string(a.Category)
			}
			return ""
		},
		SortFields: map[string]SortField[*domain.Asset]{
			"name":      {Kind: FieldString, String: func(a *domain.Asset) string { return a.Name }},
			"quantity":  {Kind: FieldNumber, Number: func(a *domain.Asset) float64 { return float64(a.Quantity) }},
			"createdAt": {Kind: FieldTime, Time: func(a *domain.Asset) time.Time { return a.CreatedAt }},
		},
		DefaultSort: "createdAt",
		StatusOf:    func(a *domain.Asset) string { return string(a.Status) },
	}
}

func names(rows []*domain.Asset) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}

func TestResolve_Deterministic(t *testing.T) {
	records := []*domain.Asset{
		asset("a1", "Pump", domain.AssetActive),
		asset("a2", "Tank", domain.AssetRetired),
		asset("a3", "Net", domain.AssetActive),
	}
	cfg := testAssetConfig()
	q := Query{Search: "n", SortKey: "name", SortOrder: SortAsc, Page: 1}

	first := Resolve(records, cfg, q)
	second := Resolve(records, cfg, q)
	assert.Equal(t, first, second, "identical inputs must yield structurally equal views")
}

func TestResolve_EmptySearchPreservesOrder(t *testing.T) {
	records := []*domain.Asset{
		asset("a1", "Tank", domain.AssetActive),
		asset("a2", "Pump", domain.AssetActive),
		asset("a3", "Net", domain.AssetActive),
	}
	cfg := testAssetConfig()
	cfg.SortFields = nil // no comparator: collection order passes through

	view := Resolve(records, cfg, Query{Search: ""})
	assert.Equal(t, []string{"Tank", "Pump", "Net"}, names(view.Filtered))
}

func TestResolve_SearchIsCaseInsensitiveOR(t *testing.T) {
	a := asset("a1", "Oxygen Pump", domain.AssetActive)
	b := asset("a2", "Tank", domain.AssetActive)
	b.Location = "pump house"
	c := asset("a3", "Net", domain.AssetActive)
	records := []*domain.Asset{a, b, c}

	view := Resolve(records, testAssetConfig(), Query{Search: "PUMP"})
	assert.ElementsMatch(t, []string{"Oxygen Pump", "Tank"}, names(view.Filtered),
		"substring match across any searchable field")
}

func TestResolve_FiltersAndSearchAreANDed(t *testing.T) {
	a := asset("a1", "Pump A", domain.AssetActive)
	b := asset("a2", "Pump B", domain.AssetRetired)
	records := []*domain.Asset{a, b}

	q := Query{Search: "pump", Filters: map[string]string{"status": "ACTIVE"}}
	view := Resolve(records, testAssetConfig(), q)
	assert.Equal(t, []string{"Pump A"}, names(view.Filtered))

	q.Filters = map[string]string{"status": "ACTIVE", "category": "VEHICLE"}
	view = Resolve(records, testAssetConfig(), q)
	assert.Empty(t, view.Filtered, "all equality filters must hold")
}

func TestResolve_SortByNameAscThenDescReverses(t *testing.T) {
	records := []*domain.Asset{
		asset("a1", "Tank", domain.AssetActive),
		asset("a2", "Net", domain.AssetActive),
		asset("a3", "Pump", domain.AssetActive),
	}
	cfg := testAssetConfig()

	asc := Resolve(records, cfg, Query{SortKey: "name", SortOrder: SortAsc})
	desc := Resolve(records, cfg, Query{SortKey: "name", SortOrder: SortDesc})

	require.Equal(t, []string{"Net", "Pump", "Tank"}, names(asc.Filtered))
	assert.Equal(t, []string{"Tank", "Pump", "Net"}, names(desc.Filtered),
		"desc must be the exact reverse for unique names")
}

// Timestamps Jan/Mar/Feb sorted by createdAt desc come out Mar, Feb, Jan.
func TestResolve_SortByCreatedAtDesc(t *testing.T) {
	jan := asset("a1", "Jan", domain.AssetActive)
	jan.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mar := asset("a2", "Mar", domain.AssetActive)
	mar.CreatedAt = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	feb := asset("a3", "Feb", domain.AssetActive)
	feb.CreatedAt = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	view := Resolve([]*domain.Asset{jan, mar, feb}, testAssetConfig(),
		Query{SortKey: "createdAt", SortOrder: SortDesc})
	assert.Equal(t, []string{"Mar", "Feb", "Jan"}, names(view.Filtered))
}

func TestResolve_SortByQuantity(t *testing.T) {
	a := asset("a1", "A", domain.AssetActive)
	a.Quantity = 10
	b := asset("a2", "B", domain.AssetActive)
	b.Quantity = 2
	c := asset("a3", "C", domain.AssetActive)
	c.Quantity = 7

	view := Resolve([]*domain.Asset{a, b, c}, testAssetConfig(),
		Query{SortKey: "quantity", SortOrder: SortAsc})
	assert.Equal(t, []string{"B", "C", "A"}, names(view.Filtered))
}

func TestResolve_PageClampAfterShrink(t *testing.T) {
	var records []*domain.Asset
	for i := 0; i < 17; i++ {
		records = append(records, asset(fmt.Sprintf("a%02d", i), fmt.Sprintf("Asset %02d", i), domain.AssetActive))
	}
	cfg := testAssetConfig()
	cfg.SortFields = nil

	// 17 records, page size 8 → 3 pages; user sits on page 3.
	view := Resolve(records, cfg, Query{Page: 3})
	require.Equal(t, 3, view.TotalPages)
	require.Equal(t, 3, view.Page)
	require.Len(t, view.Rows, 1)

	// Shrink below (page-1)*size: the view must clamp, never go blank.
	view = Resolve(records[:9], cfg, Query{Page: 3})
	assert.Equal(t, 2, view.TotalPages)
	assert.Equal(t, 2, view.Page)
	assert.Len(t, view.Rows, 1)

	view = Resolve(nil, cfg, Query{Page: 3})
	assert.Equal(t, 0, view.TotalPages)
	assert.Equal(t, 1, view.Page, "page clamps into [1, max(1,totalPages)]")
	assert.Empty(t, view.Rows)
}

func TestResolve_CustomPageSize(t *testing.T) {
	var records []*domain.Asset
	for i := 0; i < 5; i++ {
		records = append(records, asset(fmt.Sprintf("a%d", i), fmt.Sprintf("Asset %d", i), domain.AssetActive))
	}
	cfg := testAssetConfig()
	cfg.SortFields = nil
	cfg.PageSize = 2

	view := Resolve(records, cfg, Query{Page: 2})
	assert.Equal(t, 3, view.TotalPages)
	assert.Equal(t, []string{"Asset 2", "Asset 3"}, names(view.Rows))
}

func TestPageWindow(t *testing.T) {
	tests := []struct {
		page, total int
		want        []int
	}{
		{1, 0, nil},
		{1, 1, []int{1}},
		{2, 3, []int{1, 2, 3}},
		{1, 10, []int{1, 2, 3, 4, 5}},
		{6, 10, []int{4, 5, 6, 7, 8}},
		{10, 10, []int{6, 7, 8, 9, 10}},
		{9, 10, []int{6, 7, 8, 9, 10}},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("page%d_of%d", tc.page, tc.total), func(t *testing.T) {
			assert.Equal(t, tc.want, PageWindow(tc.page, tc.total))
		})
	}
}

func TestQuery_WithSortTogglesDirection(t *testing.T) {
	q := Query{Page: 4}

	q = q.WithSort("name")
	assert.Equal(t, "name", q.SortKey)
	assert.Equal(t, SortAsc, q.SortOrder, "new column starts ascending")
	assert.Equal(t, 1, q.Page, "sort change resets page")

	q = q.WithPage(3).WithSort("name")
	assert.Equal(t, SortDesc, q.SortOrder, "same column flips direction")
	assert.Equal(t, 1, q.Page)

	q = q.WithSort("quantity")
	assert.Equal(t, SortAsc, q.SortOrder, "switching column resets to ascending")
}

func TestQuery_WithFilterAndSearchResetPage(t *testing.T) {
	q := Query{Page: 5}

	q = q.WithSearch("pump")
	assert.Equal(t, 1, q.Page)

	q = q.WithPage(3).WithFilter("status", "ACTIVE")
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, "ACTIVE", q.Filters["status"])

	q = q.WithFilter("status", "")
	_, ok := q.Filters["status"]
	assert.False(t, ok, "empty value clears the filter key")
}
