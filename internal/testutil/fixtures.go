package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/mkvist/hatchctl/internal/domain"
)

var fixtureTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// NewAsset builds a valid asset with a generated id. Override fields as
// needed after the call.
func NewAsset(name string) *domain.Asset {
	return &domain.Asset{
		ID:        uuid.New().String(),
		Name:      name,
		Category:  domain.CategoryEquipment,
		Status:    domain.AssetActive,
		Quantity:  1,
		Cost:      100,
		Location:  "Hatchery A",
		CreatedAt: fixtureTime,
		UpdatedAt: fixtureTime,
	}
}

// NewFeedstock builds a valid feedstock record with a generated id.
func NewFeedstock(name string) *domain.Feedstock {
	return &domain.Feedstock{
		ID:          uuid.New().String(),
		Name:        name,
		CategoryID:  uuid.New().String(),
		Quantity:    25,
		Unit:        "kg",
		MinQuantity: 5,
		CreatedAt:   fixtureTime,
		UpdatedAt:   fixtureTime,
	}
}

// NewPool builds a valid parent fish pool with a generated id.
func NewPool(name string) *domain.ParentFishPool {
	return &domain.ParentFishPool{
		ID:        uuid.New().String(),
		Name:      name,
		Species:   "Rainbow trout",
		Capacity:  500,
		FishCount: 320,
		Status:    domain.PoolActive,
		Location:  "Hall 2",
		CreatedAt: fixtureTime,
		UpdatedAt: fixtureTime,
	}
}

// NewFeeding builds a valid feeding record referencing the given pool and
// feedstock, with relations expanded the way list endpoints return them.
func NewFeeding(pool *domain.ParentFishPool, feed *domain.Feedstock) *domain.FeedingRecord {
	return &domain.FeedingRecord{
		ID:         uuid.New().String(),
		PoolID:     pool.ID,
		ParentPool: pool,
		FeedID:     feed.ID,
		Feed:       feed,
		Date:       fixtureTime,
		Quantity:   2.5,
		Employee:   "anna@hatchery.example",
		CreatedAt:  fixtureTime,
		UpdatedAt:  fixtureTime,
	}
}

// NewMigration builds a valid egg migration out of the given pool.
func NewMigration(pool *domain.ParentFishPool) *domain.EggMigration {
	return &domain.EggMigration{
		ID:          uuid.New().String(),
		PoolID:      pool.ID,
		ParentPool:  pool,
		Date:        fixtureTime,
		EggCount:    10000,
		Destination: "Incubator 3",
		CreatedAt:   fixtureTime,
		UpdatedAt:   fixtureTime,
	}
}
