// Package payment is the HTTP adapter for the external payment provider.
// The engine submits the amount it is owed and records the provider's
// reference; fees and settlement stay on the provider side.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

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
		baseURL: cfg.PaymentBaseURL,
		http:    &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

var _ shared.PaymentGateway = (*Client)(nil)

func (c *Client) Charge(ctx context.Context, req shared.ChargeRequest) (string, error) {
	payload, err := json.Marshal(map[string]any{
		"payment_id":     req.PaymentID,
		"participant_id": req.ParticipantID,
		"amount_cents":   req.AmountCents,
	})
	if err != nil {
		return "", infra.WrapRepoErr("failed to marshal charge request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/charges", bytes.NewReader(payload))
	if err != nil {
		return "", infra.WrapRepoErr("failed to build charge request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", infra.WrapRepoErr("charge request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", infra.WrapRepoErr(fmt.Sprintf("payment provider returned status %d", resp.StatusCode), nil)
	}

	var body struct {
		ExternalRef string `json:"external_ref"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", infra.WrapRepoErr("failed to decode charge response", err)
	}
	return body.ExternalRef, nil
}
