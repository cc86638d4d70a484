package collection

import (
	"testing"
	"time"

	"github.com/mkvist/hatchctl/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asset(id, name string, status domain.AssetStatus) *domain.Asset {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Asset{
		ID:        id,
		Name:      name,
		Status:    status,
		Category:  domain.CategoryEquipment,
		Quantity:  1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func readyStore(recs ...*domain.Asset) *Store[*domain.Asset] {
	s := NewStore[*domain.Asset]()
	s.BeginLoad()
	s.SetRecords(recs)
	return s
}

func idSet(s *Store[*domain.Asset]) map[string]bool {
	ids := make(map[string]bool)
	for _, r := range s.Records() {
		ids[r.ID] = true
	}
	return ids
}

func TestStore_LoadLifecycle(t *testing.T) {
	s := NewStore[*domain.Asset]()
	assert.Equal(t, StateEmpty, s.State())

	s.BeginLoad()
	assert.Equal(t, StateLoading, s.State())

	s.SetRecords([]*domain.Asset{asset("a1", "Pump", domain.AssetActive)})
	assert.Equal(t, StateReady, s.State())
	assert.Equal(t, 1, s.Len())

	// Refetch keeps existing records visible while loading.
	s.BeginLoad()
	assert.Equal(t, StateLoading, s.State())
	assert.Equal(t, 1, s.Len())
}

func TestStore_CreateUpdateDeleteRoundTrip(t *testing.T) {
	s := readyStore(asset("a1", "Pump", domain.AssetActive))
	before := idSet(s)

	r := asset("a2", "Tank", domain.AssetActive)
	assert.True(t, s.Apply(Created(r)))

	r2 := asset("a2", "Tank Mk2", domain.AssetRetired)
	r2.UpdatedAt = r.UpdatedAt.Add(time.Minute)
	assert.True(t, s.Apply(Updated(r2)))

	assert.True(t, s.Apply(Deleted[*domain.Asset]("a2")))

	assert.Equal(t, before, idSet(s), "id-set must round-trip")
}

func TestStore_CreatedExistingActsAsUpdate(t *testing.T) {
	s := readyStore(
		asset("a1", "Pump", domain.AssetActive),
		asset("a2", "Tank", domain.AssetActive),
	)

	dup := asset("a1", "Pump Mk2", domain.AssetMaintenance)
	dup.UpdatedAt = dup.UpdatedAt.Add(time.Minute)
	require.True(t, s.Apply(Created(dup)))

	assert.Equal(t, 2, s.Len(), "duplicate delivery must not append")
	got, ok := s.Get("a1")
	require.True(t, ok)
	assert.Equal(t, "Pump Mk2", got.Name)
	assert.Equal(t, "a1", s.Records()[0].ID, "position preserved")
}

func TestStore_UpdateMissingActsAsCreate(t *testing.T) {
	s := readyStore(asset("a1", "Pump", domain.AssetActive))

	require.True(t, s.Apply(Updated(asset("a9", "Net", domain.AssetActive))))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, "a9", s.Records()[1].ID, "missing id appends")
}

func TestStore_DeleteMissingIsNoOp(t *testing.T) {
	s := readyStore(asset("a1", "Pump", domain.AssetActive))
	snapshot := s.Records()

	assert.False(t, s.Apply(Deleted[*domain.Asset]("nope")))
	assert.Equal(t, 1, s.Len())
	assert.Same(t, &snapshot[0], &s.Records()[0], "no-op must not reallocate")
}

func TestStore_DeletedIDDoesNotResurrect(t *testing.T) {
	s := readyStore(
		asset("a1", "Pump", domain.AssetActive),
		asset("a2", "Tank", domain.AssetActive),
	)
	require.True(t, s.Apply(Deleted[*domain.Asset]("a2")))

	// Stale events for the deleted id arrive late from the push channel.
	assert.False(t, s.Apply(Updated(asset("a2", "Tank", domain.AssetActive))))
	assert.False(t, s.Apply(Created(asset("a2", "Tank", domain.AssetActive))))
	assert.Equal(t, 1, s.Len())
}

// Scenario: updating a2 must leave a1 as the very same object, and must
// hand out a fresh slice so reference-equality change detection fires.
func TestStore_UpdatePreservesUntouchedIdentity(t *testing.T) {
	a1 := asset("a1", "Pump", domain.AssetActive)
	a2 := asset("a2", "Tank", domain.AssetRetired)
	s := readyStore(a1, a2)
	prevSlice := s.Records()

	next := asset("a2", "Tank", domain.AssetDisposed)
	next.UpdatedAt = a2.UpdatedAt.Add(time.Minute)
	require.True(t, s.Apply(Updated(next)))

	got, ok := s.Get("a2")
	require.True(t, ok)
	assert.Equal(t, domain.AssetDisposed, got.Status)
	assert.Same(t, a1, s.Records()[0], "untouched record keeps identity")
	assert.NotSame(t, &prevSlice[0], &s.Records()[0], "collection reference must change")
}

func TestStore_StaleUpdateDropped(t *testing.T) {
	held := asset("a1", "Pump", domain.AssetActive)
	held.UpdatedAt = time.Date(2024, 6, 1, 12, 5, 0, 0, time.UTC)
	s := readyStore(held)

	stale := asset("a1", "Pump (old)", domain.AssetMaintenance)
	stale.UpdatedAt = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	assert.False(t, s.Apply(Updated(stale)))

	got, _ := s.Get("a1")
	assert.Equal(t, "Pump", got.Name)

	// Same timestamp: arrival order wins.
	tie := asset("a1", "Pump (tie)", domain.AssetMaintenance)
	tie.UpdatedAt = held.UpdatedAt
	assert.True(t, s.Apply(Updated(tie)))
	got, _ = s.Get("a1")
	assert.Equal(t, "Pump (tie)", got.Name)
}

func TestStore_DeleteReindexesFollowingRecords(t *testing.T) {
	s := readyStore(
		asset("a1", "Pump", domain.AssetActive),
		asset("a2", "Tank", domain.AssetActive),
		asset("a3", "Net", domain.AssetActive),
	)
	require.True(t, s.Apply(Deleted[*domain.Asset]("a1")))

	got, ok := s.Get("a3")
	require.True(t, ok)
	assert.Equal(t, "Net", got.Name)
	assert.Equal(t, []string{"a2", "a3"}, []string{s.Records()[0].ID, s.Records()[1].ID})
}

func TestStore_SetRecordsClearsTombstones(t *testing.T) {
	s := readyStore(asset("a1", "Pump", domain.AssetActive))
	require.True(t, s.Apply(Deleted[*domain.Asset]("a1")))

	// A refetch that still contains a1 is a new baseline.
	s.BeginLoad()
	s.SetRecords([]*domain.Asset{asset("a1", "Pump", domain.AssetActive)})
	assert.Equal(t, 1, s.Len())
}
