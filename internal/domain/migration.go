package domain

import "time"

// EggMigration records a transfer of eggs out of a parent fish pool.
// ParentPool is populated only when the backend expands the relation;
// display and filtering must tolerate it being nil.
type EggMigration struct {
	ID          string          `json:"id"`
	PoolID      string          `json:"poolId"`
	ParentPool  *ParentFishPool `json:"parentPool,omitempty"`
	Date        time.Time       `json:"date"`
	EggCount    int             `json:"eggCount"`
	Destination string          `json:"destination"`
	Notes       string          `json:"notes"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func (m *EggMigration) EntityID() string           { return m.ID }
func (m *EggMigration) EntityUpdatedAt() time.Time { return m.UpdatedAt }
