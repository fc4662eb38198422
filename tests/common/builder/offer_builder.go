//go:build unit || integration

package builder

import (
	"time"

	"partage/internal/domain/order"
	"partage/internal/domain/pricing"

	"github.com/google/uuid"
)

type OfferBuilder struct {
	OrderID      uuid.UUID
	ProductID    uuid.UUID
	LotID        uuid.UUID
	Name         string
	UnitWeightKg float64
	Unit         pricing.UnitPrice
	Now          time.Time
}

// NewOfferBuilder defaults to a 2kg unit priced with a 10 euro base, a 3
// euro delivery share and a 10 percent sharer fee.
func NewOfferBuilder() *OfferBuilder {
	return &OfferBuilder{
		OrderID:      uuid.New(),
		ProductID:    uuid.New(),
		LotID:        uuid.New(),
		Name:         "Heritage carrots 2kg",
		UnitWeightKg: 2,
		Unit: pricing.UnitPrice{
			BaseCents:     1000,
			DeliveryCents: 300,
			SharerCents:   144,
			FinalCents:    1444,
		},
		Now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
	}
}

func (b *OfferBuilder) With(mutate func(*OfferBuilder)) *OfferBuilder {
	mutate(b)
	return b
}

func (b *OfferBuilder) ForOrder(orderID uuid.UUID) *OfferBuilder {
	b.OrderID = orderID
	return b
}

func (b *OfferBuilder) WithUnit(unit pricing.UnitPrice) *OfferBuilder {
	b.Unit = unit
	return b
}

func (b *OfferBuilder) WithUnitWeight(kg float64) *OfferBuilder {
	b.UnitWeightKg = kg
	return b
}

func (b *OfferBuilder) BuildDomain() (*order.Offer, error) {
	return order.NewOffer(b.OrderID, b.ProductID, b.LotID, b.Name, b.UnitWeightKg, b.Unit, b.Now)
}

// BuildLineItem freezes the offer and attaches a line item for the given
// participant in one step.
func (b *OfferBuilder) BuildLineItem(participantID uuid.UUID, quantity int) (*order.Offer, *order.LineItem, error) {
	offer, err := b.BuildDomain()
	if err != nil {
		return nil, nil, err
	}
	li, err := order.NewLineItem(offer, participantID, quantity, b.Now)
	if err != nil {
		return nil, nil, err
	}
	return offer, li, nil
}
