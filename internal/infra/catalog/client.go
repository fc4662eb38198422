// Package catalog is the HTTP adapter for the inventory oracle. The engine
// only reads from it; stock holds live in the engine's own store.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"partage/internal/infra"
	"partage/internal/pkg/config"
	"partage/internal/usecase/shared"

	"github.com/google/uuid"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg config.CollaboratorConfig) *Client {
	return &Client{
		baseURL: cfg.CatalogBaseURL,
		http:    &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

var _ shared.Catalog = (*Client)(nil)

func (c *Client) Product(ctx context.Context, id uuid.UUID) (*shared.ProductSnapshot, error) {
	var body struct {
		ID                   uuid.UUID `json:"id"`
		Name                 string    `json:"name"`
		Category             string    `json:"category"`
		PackagingLabel       string    `json:"packaging_label"`
		DeclaredUnitWeightKg *float64  `json:"declared_unit_weight_kg"`
		CategoryDefaultKg    float64   `json:"category_default_kg"`
	}
	if err := c.get(ctx, fmt.Sprintf("%s/products/%s", c.baseURL, id), &body); err != nil {
		return nil, err
	}
	return &shared.ProductSnapshot{
		ID:                   body.ID,
		Name:                 body.Name,
		Category:             body.Category,
		PackagingLabel:       body.PackagingLabel,
		DeclaredUnitWeightKg: body.DeclaredUnitWeightKg,
		CategoryDefaultKg:    body.CategoryDefaultKg,
	}, nil
}

func (c *Client) ActiveLot(ctx context.Context, productID uuid.UUID) (*shared.LotSnapshot, error) {
	var body struct {
		ID             uuid.UUID `json:"id"`
		ProductID      uuid.UUID `json:"product_id"`
		PriceCents     int64     `json:"price_cents"`
		RemainingStock int       `json:"remaining_stock"`
	}
	if err := c.get(ctx, fmt.Sprintf("%s/products/%s/active-lot", c.baseURL, productID), &body); err != nil {
		return nil, err
	}
	return &shared.LotSnapshot{
		ID:             body.ID,
		ProductID:      body.ProductID,
		PriceCents:     body.PriceCents,
		RemainingStock: body.RemainingStock,
	}, nil
}

func (c *Client) ProducerZone(ctx context.Context, producerID uuid.UUID) (*shared.ProducerZone, error) {
	var body struct {
		Lat      float64 `json:"lat"`
		Lon      float64 `json:"lon"`
		RadiusKm float64 `json:"radius_km"`
	}
	if err := c.get(ctx, fmt.Sprintf("%s/producers/%s/zone", c.baseURL, producerID), &body); err != nil {
		return nil, err
	}
	return &shared.ProducerZone{Lat: body.Lat, Lon: body.Lon, RadiusKm: body.RadiusKm}, nil
}

func (c *Client) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return infra.WrapRepoErr("failed to build catalog request", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return infra.WrapRepoErr("catalog request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return infra.WrapRepoErr("catalog entity not found", nil, infra.KindNotFound)
	case resp.StatusCode != http.StatusOK:
		return infra.WrapRepoErr(fmt.Sprintf("catalog returned status %d", resp.StatusCode), nil)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return infra.WrapRepoErr("failed to decode catalog response", err)
	}
	return nil
}
