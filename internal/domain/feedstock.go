package domain

import "time"

type Feedstock struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	CategoryID  string             `json:"categoryId"`
	Category    *FeedstockCategory `json:"category,omitempty"`
	Quantity    float64            `json:"quantity"`
	Unit        string             `json:"unit"`
	MinQuantity float64            `json:"minQuantity"`
	Supplier    string             `json:"supplier"`
	CostPerUnit float64            `json:"costPerUnit"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

func (f *Feedstock) EntityID() string           { return f.ID }
func (f *Feedstock) EntityUpdatedAt() time.Time { return f.UpdatedAt }

// LowStock reports whether current quantity has fallen to or below the
// restock threshold. A zero threshold disables the check.
func (f *Feedstock) LowStock() bool {
	return f.MinQuantity > 0 && f.Quantity <= f.MinQuantity
}

// FeedstockCategory is a reference record attached to feedstocks when the
// backend expands the relation.
type FeedstockCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryStats is the payload of GET /feedstock-categories/stats.
type CategoryStats struct {
	CategoryID   string  `json:"categoryId"`
	CategoryName string  `json:"categoryName"`
	ItemCount    int     `json:"itemCount"`
	TotalValue   float64 `json:"totalValue"`
}
