package order

import (
	"time"

	"partage/internal/domain/pricing"
	"partage/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrInvalidQuantity = errs.New("quantity must be positive")

// LineItem links a participant to an offer with a quantity. The unit price
// breakdown and unit weight are copied from the offer at creation and never
// change; a quantity change is remove + add.
type LineItem struct {
	id            uuid.UUID
	orderID       uuid.UUID
	participantID uuid.UUID
	offerID       uuid.UUID
	productID     uuid.UUID
	lotID         uuid.UUID
	quantity      int
	unitWeightKg  float64
	unit          pricing.UnitPrice
	createdAt     time.Time
}

func NewLineItem(offer *Offer, participantID uuid.UUID, quantity int, now time.Time) (*LineItem, error) {
	if quantity <= 0 {
		return nil, errs.Mark(ErrInvalidQuantity, errs.ErrDomainValidation)
	}
	return &LineItem{
		id:            uuid.New(),
		orderID:       offer.OrderID(),
		participantID: participantID,
		offerID:       offer.ID(),
		productID:     offer.ProductID(),
		lotID:         offer.LotID(),
		quantity:      quantity,
		unitWeightKg:  offer.UnitWeightKg(),
		unit:          offer.Unit(),
		createdAt:     now,
	}, nil
}

func ReconstructLineItem(
	id, orderID, participantID, offerID, productID, lotID uuid.UUID,
	quantity int,
	unitWeightKg float64,
	unit pricing.UnitPrice,
	createdAt time.Time,
) *LineItem {
	return &LineItem{
		id:            id,
		orderID:       orderID,
		participantID: participantID,
		offerID:       offerID,
		productID:     productID,
		lotID:         lotID,
		quantity:      quantity,
		unitWeightKg:  unitWeightKg,
		unit:          unit,
		createdAt:     createdAt,
	}
}

func (li *LineItem) ID() uuid.UUID            { return li.id }
func (li *LineItem) OrderID() uuid.UUID       { return li.orderID }
func (li *LineItem) ParticipantID() uuid.UUID { return li.participantID }
func (li *LineItem) OfferID() uuid.UUID       { return li.offerID }
func (li *LineItem) ProductID() uuid.UUID     { return li.productID }
func (li *LineItem) LotID() uuid.UUID         { return li.lotID }
func (li *LineItem) Quantity() int            { return li.quantity }
func (li *LineItem) UnitWeightKg() float64    { return li.unitWeightKg }
func (li *LineItem) Unit() pricing.UnitPrice  { return li.unit }
func (li *LineItem) CreatedAt() time.Time     { return li.createdAt }

// Derived line totals, unit × quantity.

func (li *LineItem) LineWeightKg() float64 {
	return li.unitWeightKg * float64(li.quantity)
}

func (li *LineItem) LineBaseCents() int64 {
	return li.unit.BaseCents * int64(li.quantity)
}

func (li *LineItem) LineDeliveryCents() int64 {
	return li.unit.DeliveryCents * int64(li.quantity)
}

func (li *LineItem) LineSharerCents() int64 {
	return li.unit.SharerCents * int64(li.quantity)
}

func (li *LineItem) LineTotalCents() int64 {
	return li.unit.FinalCents * int64(li.quantity)
}
