package queries

import (
	"time"

	"github.com/google/uuid"
)

// OrderView is the full per-viewer projection of an order. Participant rows
// are already redacted for the requesting viewer when the view is built.
type OrderView struct {
	ID                    uuid.UUID
	Code                  string
	OwnerID               uuid.UUID
	ProducerID            uuid.UUID
	Status                string
	Visibility            string
	MinWeightKg           float64
	MaxWeightKg           *float64
	SharerPct             int
	DeliveryMode          string
	OrderedWeightKg       float64
	EffectiveWeightKg     float64
	BaseCents             int64
	DeliveryCents         int64
	SharerCents           int64
	ParticipantTotalCents int64
	DeliveryFeeTotalCents int64
	Offers                []OfferView
	Participants          []ParticipantView
	PickupSlots           []PickupSlotView
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

type OfferView struct {
	ID            uuid.UUID
	ProductID     uuid.UUID
	Name          string
	UnitWeightKg  float64
	BaseCents     int64
	DeliveryCents int64
	SharerCents   int64
	FinalCents    int64
}

// ParticipantView carries nil in every field the viewer may not see.
type ParticipantView struct {
	ID               uuid.UUID
	Role             string
	Status           string
	DisplayName      *string
	TotalWeightKg    *float64
	TotalAmountCents *int64
	Items            []LineItemView
	PickupSlotID     *uuid.UUID
	PickupSlotStatus string
	PickupCode       *string
}

type LineItemView struct {
	ID           uuid.UUID
	OfferID      uuid.UUID
	Name         string
	Quantity     int
	LineWeightKg float64
	LineCents    int64
}

type PickupSlotView struct {
	ID      uuid.UUID
	Weekday *string
	Date    *time.Time
	Start   string
	End     string
	Enabled bool
}
