package domain

import "time"

type Asset struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Category     AssetCategory `json:"category"`
	Status       AssetStatus   `json:"status"`
	Quantity     int           `json:"quantity"`
	Cost         float64       `json:"cost"`
	Location     string        `json:"location"`
	Description  string        `json:"description"`
	ImageURL     string        `json:"imageUrl"`
	PurchaseDate *time.Time    `json:"purchaseDate,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

func (a *Asset) EntityID() string           { return a.ID }
func (a *Asset) EntityUpdatedAt() time.Time { return a.UpdatedAt }
