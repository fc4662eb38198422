//go:build unit || integration

package builder

import (
	"time"

	"partage/internal/domain/order"
	"partage/internal/domain/pricing"

	"github.com/google/uuid"
)

type OrderBuilder struct {
	Code         string
	OwnerID      uuid.UUID
	ProducerID   uuid.UUID
	Visibility   order.Visibility
	MinWeightKg  float64
	MaxWeightKg  *float64
	SharerPct    int
	DeliveryMode pricing.DeliveryMode
	FlatFeeCents int64
	Flags        order.ParticipantFlags
	AutoApproveParticipants bool
	AutoApprovePickupSlots  bool
	Now          time.Time
}

func NewOrderBuilder() *OrderBuilder {
	return &OrderBuilder{
		Code:         "TESTORD1",
		OwnerID:      uuid.New(),
		ProducerID:   uuid.New(),
		Visibility:   order.VisibilityPrivate,
		MinWeightKg:  10,
		SharerPct:    10,
		DeliveryMode: pricing.ModeProducerDelivery,
		FlatFeeCents: 1500,
		Flags:        order.ParticipantFlags{Content: true, Weight: true},
		Now:          time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
	}
}

func (b *OrderBuilder) With(mutate func(*OrderBuilder)) *OrderBuilder {
	mutate(b)
	return b
}

func (b *OrderBuilder) WithOwner(id uuid.UUID) *OrderBuilder {
	b.OwnerID = id
	return b
}

func (b *OrderBuilder) WithVisibility(v order.Visibility) *OrderBuilder {
	b.Visibility = v
	return b
}

func (b *OrderBuilder) WithMinWeight(kg float64) *OrderBuilder {
	b.MinWeightKg = kg
	return b
}

func (b *OrderBuilder) WithMaxWeight(kg float64) *OrderBuilder {
	b.MaxWeightKg = &kg
	return b
}

func (b *OrderBuilder) WithSharerPct(pct int) *OrderBuilder {
	b.SharerPct = pct
	return b
}

func (b *OrderBuilder) WithDeliveryMode(m pricing.DeliveryMode) *OrderBuilder {
	b.DeliveryMode = m
	return b
}

func (b *OrderBuilder) BuildDomain() (*order.Order, error) {
	return order.NewOrder(order.NewOrderParams{
		Code:         b.Code,
		OwnerID:      b.OwnerID,
		ProducerID:   b.ProducerID,
		Visibility:   b.Visibility,
		MinWeightKg:  b.MinWeightKg,
		MaxWeightKg:  b.MaxWeightKg,
		SharerPct:    b.SharerPct,
		DeliveryMode: b.DeliveryMode,
		FlatFeeCents: b.FlatFeeCents,
		Flags:        b.Flags,
		AutoApproveParticipants: b.AutoApproveParticipants,
		AutoApprovePickupSlots:  b.AutoApprovePickupSlots,
	}, b.Now)
}
