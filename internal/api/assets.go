package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mkvist/hatchctl/internal/domain"
)

// Assets is the asset accessor. Assets differ from the other resources:
// create/update are multipart (optional image attachment) and status has
// its own endpoint.
type Assets struct {
	resourceClient[domain.Asset]
}

func (c *Client) Assets() Assets {
	return Assets{resourceClient[domain.Asset]{c: c, path: "/assets", updateVerb: http.MethodPut}}
}

// AssetInput carries the writable asset fields. Dates use DateLayout.
type AssetInput struct {
	Name         string
	Category     domain.AssetCategory
	Status       domain.AssetStatus
	Quantity     int
	Cost         float64
	Location     string
	Description  string
	PurchaseDate string
}

func (in AssetInput) formFields() map[string]string {
	fields := map[string]string{
		"name":     in.Name,
		"category": string(in.Category),
		"quantity": strconv.Itoa(in.Quantity),
		"cost":     strconv.FormatFloat(in.Cost, 'f', -1, 64),
	}
	if in.Status != "" {
		fields["status"] = string(in.Status)
	}
	if in.Location != "" {
		fields["location"] = in.Location
	}
	if in.Description != "" {
		fields["description"] = in.Description
	}
	if in.PurchaseDate != "" {
		fields["purchaseDate"] = in.PurchaseDate
	}
	return fields
}

// Create submits a new asset, with an optional image attachment.
func (a Assets) Create(ctx context.Context, in AssetInput, image *FileAttachment) (*domain.Asset, error) {
	var rec domain.Asset
	if err := a.c.doMultipart(ctx, http.MethodPost, a.path, in.formFields(), image, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Update replaces an asset's fields. A nil image keeps the stored one.
func (a Assets) Update(ctx context.Context, id string, in AssetInput, image *FileAttachment) (*domain.Asset, error) {
	var rec domain.Asset
	path := a.path + "/" + url.PathEscape(id)
	if err := a.c.doMultipart(ctx, http.MethodPut, path, in.formFields(), image, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// UpdateStatus changes only the status via its dedicated endpoint.
func (a Assets) UpdateStatus(ctx context.Context, id string, status domain.AssetStatus) (*domain.Asset, error) {
	var rec domain.Asset
	path := a.path + "/status/" + url.PathEscape(id)
	payload := map[string]string{"status": string(status)}
	if err := a.c.doJSON(ctx, http.MethodPut, path, payload, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
