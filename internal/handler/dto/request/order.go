package request

import (
	"time"

	"partage/internal/domain/order"
	"partage/internal/domain/pricing"
	"partage/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateOrderRequest struct {
	ProducerID   uuid.UUID   `json:"producer_id" binding:"required"`
	Visibility   string      `json:"visibility" binding:"required,oneof=public private"`
	MinWeightKg  float64     `json:"min_weight_kg" binding:"gte=0"`
	MaxWeightKg  *float64    `json:"max_weight_kg,omitempty"`
	SharerPct    int         `json:"sharer_pct" binding:"gte=0,lt=100"`
	DeliveryMode string      `json:"delivery_mode" binding:"required,oneof=courier producer_delivery producer_pickup"`
	FlatFeeCents int64       `json:"flat_fee_cents" binding:"gte=0"`
	Flags        FlagsDTO    `json:"participant_flags"`
	AutoApproveParticipants bool `json:"auto_approve_participants"`
	AutoApprovePickupSlots  bool `json:"auto_approve_pickup_slots"`
	ProductIDs   []uuid.UUID `json:"product_ids" binding:"required,min=1"`
}

type FlagsDTO struct {
	Profile bool `json:"profile"`
	Content bool `json:"content"`
	Weight  bool `json:"weight"`
	Amount  bool `json:"amount"`
}

func (r CreateOrderRequest) ToParams(ownerID uuid.UUID) commands.CreateOrderParams {
	selections := make([]commands.ProductSelection, 0, len(r.ProductIDs))
	for _, id := range r.ProductIDs {
		selections = append(selections, commands.ProductSelection{ProductID: id})
	}
	return commands.CreateOrderParams{
		OwnerID:      ownerID,
		ProducerID:   r.ProducerID,
		Visibility:   order.Visibility(r.Visibility),
		MinWeightKg:  r.MinWeightKg,
		MaxWeightKg:  r.MaxWeightKg,
		SharerPct:    r.SharerPct,
		DeliveryMode: pricing.DeliveryMode(r.DeliveryMode),
		FlatFeeCents: r.FlatFeeCents,
		Flags: order.ParticipantFlags{
			Profile: r.Flags.Profile,
			Content: r.Flags.Content,
			Weight:  r.Flags.Weight,
			Amount:  r.Flags.Amount,
		},
		AutoApproveParticipants: r.AutoApproveParticipants,
		AutoApprovePickupSlots:  r.AutoApprovePickupSlots,
		Selections:              selections,
	}
}

type TransitionRequest struct {
	Target string `json:"target" binding:"required"`
}

type SetVisibilityRequest struct {
	Visibility string   `json:"visibility" binding:"required,oneof=public private"`
	Flags      FlagsDTO `json:"participant_flags"`
}

type AddLineItemRequest struct {
	OfferID  uuid.UUID `json:"offer_id" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,gt=0"`
}

type CreatePickupSlotRequest struct {
	Weekday *int       `json:"weekday,omitempty" binding:"omitempty,gte=0,lte=6"`
	Date    *time.Time `json:"date,omitempty"`
	Start   string     `json:"start" binding:"required"`
	End     string     `json:"end" binding:"required"`
	Enabled bool       `json:"enabled"`
}

type SetPickupSlotEnabledRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

type SelectPickupSlotRequest struct {
	SlotID uuid.UUID `json:"slot_id" binding:"required"`
}

type EligibilityRequest struct {
	ProducerID uuid.UUID `json:"producer_id" binding:"required"`
	Address    string    `json:"address" binding:"required"`
}
