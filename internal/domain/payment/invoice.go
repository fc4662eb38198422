package payment

import (
	"time"

	"github.com/google/uuid"
)

// Invoice is the platform-to-producer invoice emitted when an order enters
// distribution. At most one exists per order; re-entering the state must not
// duplicate it (enforced by the storage layer's unique order key).
type Invoice struct {
	id          uuid.UUID
	orderID     uuid.UUID
	amountCents int64
	issuedAt    time.Time
}

func NewInvoice(orderID uuid.UUID, amountCents int64, now time.Time) *Invoice {
	return &Invoice{
		id:          uuid.New(),
		orderID:     orderID,
		amountCents: amountCents,
		issuedAt:    now,
	}
}

func ReconstructInvoice(id, orderID uuid.UUID, amountCents int64, issuedAt time.Time) *Invoice {
	return &Invoice{id: id, orderID: orderID, amountCents: amountCents, issuedAt: issuedAt}
}

func (i *Invoice) ID() uuid.UUID      { return i.id }
func (i *Invoice) OrderID() uuid.UUID { return i.orderID }
func (i *Invoice) AmountCents() int64 { return i.amountCents }
func (i *Invoice) IssuedAt() time.Time { return i.issuedAt }
