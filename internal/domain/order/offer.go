package order

import (
	"time"

	"partage/internal/domain/pricing"
	"partage/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrZeroUnitWeight = errs.New("offer unit weight must be positive")
)

// Offer is one product offered within an order. The per-unit price breakdown
// and the unit weight are frozen at order creation; downstream totals change
// only through full ledger recomputation, never by editing an offer.
type Offer struct {
	id           uuid.UUID
	orderID      uuid.UUID
	productID    uuid.UUID
	lotID        uuid.UUID
	name         string
	unitWeightKg float64
	unit         pricing.UnitPrice
	createdAt    time.Time
}

func NewOffer(orderID, productID, lotID uuid.UUID, name string, unitWeightKg float64, unit pricing.UnitPrice, now time.Time) (*Offer, error) {
	if unitWeightKg <= 0 {
		return nil, errs.Mark(ErrZeroUnitWeight, errs.ErrDomainValidation)
	}
	return &Offer{
		id:           uuid.New(),
		orderID:      orderID,
		productID:    productID,
		lotID:        lotID,
		name:         name,
		unitWeightKg: unitWeightKg,
		unit:         unit,
		createdAt:    now,
	}, nil
}

func ReconstructOffer(id, orderID, productID, lotID uuid.UUID, name string, unitWeightKg float64, unit pricing.UnitPrice, createdAt time.Time) *Offer {
	return &Offer{
		id:           id,
		orderID:      orderID,
		productID:    productID,
		lotID:        lotID,
		name:         name,
		unitWeightKg: unitWeightKg,
		unit:         unit,
		createdAt:    createdAt,
	}
}

func (f *Offer) ID() uuid.UUID           { return f.id }
func (f *Offer) OrderID() uuid.UUID      { return f.orderID }
func (f *Offer) ProductID() uuid.UUID    { return f.productID }
func (f *Offer) LotID() uuid.UUID        { return f.lotID }
func (f *Offer) Name() string            { return f.name }
func (f *Offer) UnitWeightKg() float64   { return f.unitWeightKg }
func (f *Offer) Unit() pricing.UnitPrice { return f.unit }
func (f *Offer) CreatedAt() time.Time    { return f.createdAt }
