// Package geocode resolves free-text addresses through a BAN-style address
// API. Results feed only the delivery-zone check.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"partage/internal/infra"
	"partage/internal/pkg/config"
	"partage/internal/usecase/shared"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg config.CollaboratorConfig) *Client {
	return &Client{
		baseURL: cfg.GeocodeBaseURL,
		http:    &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

var _ shared.Geocoder = (*Client)(nil)

func (c *Client) Resolve(ctx context.Context, address string) (shared.Coordinates, error) {
	endpoint := fmt.Sprintf("%s/search/?q=%s&limit=1", c.baseURL, url.QueryEscape(address))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return shared.Coordinates{}, infra.WrapRepoErr("failed to build geocode request", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return shared.Coordinates{}, infra.WrapRepoErr("geocode request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return shared.Coordinates{}, infra.WrapRepoErr(fmt.Sprintf("geocoder returned status %d", resp.StatusCode), nil)
	}

	// GeoJSON; coordinates come as [lon, lat].
	var body struct {
		Features []struct {
			Geometry struct {
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
		} `json:"features"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return shared.Coordinates{}, infra.WrapRepoErr("failed to decode geocode response", err)
	}
	if len(body.Features) == 0 || len(body.Features[0].Geometry.Coordinates) < 2 {
		return shared.Coordinates{}, infra.WrapRepoErr("address did not resolve", nil, infra.KindNotFound)
	}
	coords := body.Features[0].Geometry.Coordinates
	return shared.Coordinates{Lat: coords[1], Lon: coords[0]}, nil
}
