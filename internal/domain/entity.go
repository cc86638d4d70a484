package domain

import "time"

// Entity is implemented by every backend record held in a client-side
// collection. IDs are server-assigned, immutable, and unique per resource.
type Entity interface {
	EntityID() string
	EntityUpdatedAt() time.Time
}

// Resource names as used in API paths, draft keys, and export file names.
type Resource string

const (
	ResourceAsset             Resource = "asset"
	ResourceFeedstock         Resource = "feedstock"
	ResourceParentFishPool    Resource = "parentFishPool"
	ResourceEggMigration      Resource = "eggMigration"
	ResourceParentFishFeeding Resource = "parentFishFeeding"
	ResourceEggFishFeeding    Resource = "eggFishFeeding"
)
