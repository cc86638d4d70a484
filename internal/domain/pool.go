package domain

import "time"

type ParentFishPool struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Species   string     `json:"species"`
	Capacity  int        `json:"capacity"`
	FishCount int        `json:"fishCount"`
	Status    PoolStatus `json:"status"`
	Location  string     `json:"location"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (p *ParentFishPool) EntityID() string           { return p.ID }
func (p *ParentFishPool) EntityUpdatedAt() time.Time { return p.UpdatedAt }
