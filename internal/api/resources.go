package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/mkvist/hatchctl/internal/domain"
)

// resourceClient is the generic CRUD accessor shared by the JSON-bodied
// resources. The update verb differs per resource (the backend uses PUT
// for feedstock and PATCH everywhere else).
type resourceClient[T any] struct {
	c          *Client
	path       string
	updateVerb string
}

func (r resourceClient[T]) Create(ctx context.Context, payload any) (*T, error) {
	var rec T
	if err := r.c.doJSON(ctx, http.MethodPost, r.path, payload, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r resourceClient[T]) List(ctx context.Context) ([]*T, error) {
	var recs []*T
	if err := r.c.doJSON(ctx, http.MethodGet, r.path, nil, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// GetByID treats 404 as "not found, no error" so callers can distinguish
// a missing record from a failed fetch. Every other failure is an error.
func (r resourceClient[T]) GetByID(ctx context.Context, id string) (*T, error) {
	var rec T
	err := r.c.doJSON(ctx, http.MethodGet, r.path+"/"+url.PathEscape(id), nil, &rec)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r resourceClient[T]) Update(ctx context.Context, id string, payload any) (*T, error) {
	var rec T
	if err := r.c.doJSON(ctx, r.updateVerb, r.path+"/"+url.PathEscape(id), payload, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r resourceClient[T]) Delete(ctx context.Context, id string) (*DeleteResponse, error) {
	var resp DeleteResponse
	if err := r.c.doJSON(ctx, http.MethodDelete, r.path+"/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ── typed accessors ─────────────────────────────────────────────────────────

type Feedstocks struct {
	resourceClient[domain.Feedstock]
}

func (c *Client) Feedstocks() Feedstocks {
	return Feedstocks{resourceClient[domain.Feedstock]{c: c, path: "/feedstock", updateVerb: http.MethodPut}}
}

type Pools struct {
	resourceClient[domain.ParentFishPool]
}

func (c *Client) Pools() Pools {
	return Pools{resourceClient[domain.ParentFishPool]{c: c, path: "/parent-fish-pools", updateVerb: http.MethodPatch}}
}

type EggMigrations struct {
	resourceClient[domain.EggMigration]
}

func (c *Client) EggMigrations() EggMigrations {
	return EggMigrations{resourceClient[domain.EggMigration]{c: c, path: "/parent-egg-migrations", updateVerb: http.MethodPatch}}
}

type ParentFishFeedings struct {
	resourceClient[domain.FeedingRecord]
}

func (c *Client) ParentFishFeedings() ParentFishFeedings {
	return ParentFishFeedings{resourceClient[domain.FeedingRecord]{c: c, path: "/parent-fish-feeding", updateVerb: http.MethodPatch}}
}

type EggFishFeedings struct {
	resourceClient[domain.FeedingRecord]
}

func (c *Client) EggFishFeedings() EggFishFeedings {
	return EggFishFeedings{resourceClient[domain.FeedingRecord]{c: c, path: "/egg-fish-feeding", updateVerb: http.MethodPatch}}
}

// FeedstockCategories exposes the category lookup endpoints.
type FeedstockCategories struct {
	c *Client
}

func (c *Client) FeedstockCategories() FeedstockCategories {
	return FeedstockCategories{c: c}
}

func (f FeedstockCategories) Search(ctx context.Context, name string) ([]*domain.FeedstockCategory, error) {
	var cats []*domain.FeedstockCategory
	path := "/feedstock-categories/search?name=" + url.QueryEscape(name)
	if err := f.c.doJSON(ctx, http.MethodGet, path, nil, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

func (f FeedstockCategories) Stats(ctx context.Context) ([]*domain.CategoryStats, error) {
	var stats []*domain.CategoryStats
	if err := f.c.doJSON(ctx, http.MethodGet, "/feedstock-categories/stats", nil, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// ── input payloads ──────────────────────────────────────────────────────────

type FeedstockInput struct {
	Name        string  `json:"name"`
	CategoryID  string  `json:"categoryId"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	MinQuantity float64 `json:"minQuantity"`
	Supplier    string  `json:"supplier,omitempty"`
	CostPerUnit float64 `json:"costPerUnit,omitempty"`
}

type PoolInput struct {
	Name      string            `json:"name"`
	Species   string            `json:"species"`
	Capacity  int               `json:"capacity"`
	FishCount int               `json:"fishCount"`
	Status    domain.PoolStatus `json:"status,omitempty"`
	Location  string            `json:"location,omitempty"`
}

type MigrationInput struct {
	PoolID      string `json:"poolId"`
	Date        string `json:"date"`
	EggCount    int    `json:"eggCount"`
	Destination string `json:"destination"`
	Notes       string `json:"notes,omitempty"`
}

type FeedingInput struct {
	PoolID   string  `json:"poolId"`
	FeedID   string  `json:"feedId"`
	Date     string  `json:"date"`
	Quantity float64 `json:"quantity"`
	Employee string  `json:"employee,omitempty"`
	Notes    string  `json:"notes,omitempty"`
}

// DateLayout is the wire format for date-only fields.
const DateLayout = "2006-01-02"

// FormatDate renders a timestamp in the wire's date-only form.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
