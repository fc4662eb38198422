package response

import (
	"time"

	"partage/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type OrderResponse struct {
	ID                    uuid.UUID             `json:"id"`
	Code                  string                `json:"code"`
	OwnerID               uuid.UUID             `json:"owner_id"`
	ProducerID            uuid.UUID             `json:"producer_id"`
	Status                string                `json:"status"`
	Visibility            string                `json:"visibility"`
	MinWeightKg           float64               `json:"min_weight_kg"`
	MaxWeightKg           *float64              `json:"max_weight_kg,omitempty"`
	SharerPct             int                   `json:"sharer_pct"`
	DeliveryMode          string                `json:"delivery_mode"`
	OrderedWeightKg       float64               `json:"ordered_weight_kg"`
	EffectiveWeightKg     float64               `json:"effective_weight_kg"`
	BaseCents             int64                 `json:"base_cents"`
	DeliveryCents         int64                 `json:"delivery_cents"`
	SharerCents           int64                 `json:"sharer_cents"`
	ParticipantTotalCents int64                 `json:"participant_total_cents"`
	DeliveryFeeTotalCents int64                 `json:"delivery_fee_total_cents"`
	Offers                []OfferResponse       `json:"offers"`
	Participants          []ParticipantResponse `json:"participants"`
	PickupSlots           []PickupSlotResponse  `json:"pickup_slots"`
	CreatedAt             time.Time             `json:"created_at"`
	UpdatedAt             time.Time             `json:"updated_at"`
}

type OfferResponse struct {
	ID            uuid.UUID `json:"id"`
	ProductID     uuid.UUID `json:"product_id"`
	Name          string    `json:"name"`
	UnitWeightKg  float64   `json:"unit_weight_kg"`
	BaseCents     int64     `json:"base_cents"`
	DeliveryCents int64     `json:"delivery_cents"`
	SharerCents   int64     `json:"sharer_cents"`
	FinalCents    int64     `json:"final_cents"`
}

type ParticipantResponse struct {
	ID               uuid.UUID          `json:"id"`
	Role             string             `json:"role"`
	Status           string             `json:"status"`
	DisplayName      *string            `json:"display_name,omitempty"`
	TotalWeightKg    *float64           `json:"total_weight_kg,omitempty"`
	TotalAmountCents *int64             `json:"total_amount_cents,omitempty"`
	Items            []LineItemResponse `json:"items,omitempty"`
	PickupSlotID     *uuid.UUID         `json:"pickup_slot_id,omitempty"`
	PickupSlotStatus string             `json:"pickup_slot_status"`
	PickupCode       *string            `json:"pickup_code,omitempty"`
}

type LineItemResponse struct {
	ID           uuid.UUID `json:"id"`
	OfferID      uuid.UUID `json:"offer_id"`
	Name         string    `json:"name"`
	Quantity     int       `json:"quantity"`
	LineWeightKg float64   `json:"line_weight_kg"`
	LineCents    int64     `json:"line_cents"`
}

type PickupSlotResponse struct {
	ID      uuid.UUID  `json:"id"`
	Weekday *string    `json:"weekday,omitempty"`
	Date    *time.Time `json:"date,omitempty"`
	Start   string     `json:"start"`
	End     string     `json:"end"`
	Enabled bool       `json:"enabled"`
}

// FromOrderView maps the query projection onto the wire shape. Field names
// line up by construction, so the struct copy does the bulk of the work.
func FromOrderView(view *queries.OrderView) (*OrderResponse, error) {
	var resp OrderResponse
	if err := copier.Copy(&resp, view); err != nil {
		return nil, err
	}
	return &resp, nil
}

type EligibilityResponse struct {
	Eligible   bool    `json:"eligible"`
	DistanceKm float64 `json:"distance_km"`
	RadiusKm   float64 `json:"radius_km"`
}

type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

type OrderCreatedResponse struct {
	ID   uuid.UUID `json:"id"`
	Code string    `json:"code"`
}
