package domain

import "time"

// FeedingRecord is the shared shape of parent-fish and egg-fish feeding
// entries. The two resources differ only in API path and event names.
type FeedingRecord struct {
	ID         string          `json:"id"`
	PoolID     string          `json:"poolId"`
	ParentPool *ParentFishPool `json:"parentPool,omitempty"`
	FeedID     string          `json:"feedId"`
	Feed       *Feedstock      `json:"feed,omitempty"`
	Date       time.Time       `json:"date"`
	Quantity   float64         `json:"quantity"`
	Employee   string          `json:"employee"`
	Notes      string          `json:"notes"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

func (r *FeedingRecord) EntityID() string           { return r.ID }
func (r *FeedingRecord) EntityUpdatedAt() time.Time { return r.UpdatedAt }

// PoolName returns the expanded pool name, or "" when the relation was
// not expanded.
func (r *FeedingRecord) PoolName() string {
	if r.ParentPool == nil {
		return ""
	}
	return r.ParentPool.Name
}

// FeedName returns the expanded feedstock name, or "" when the relation
// was not expanded.
func (r *FeedingRecord) FeedName() string {
	if r.Feed == nil {
		return ""
	}
	return r.Feed.Name
}
