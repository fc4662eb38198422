// Package reservation implements soft, time-bounded stock holds per lot.
// Nothing decrements catalog stock when a line item is added; a hold is
// placed instead and expiry is evaluated lazily against the wall clock.
package reservation

import (
	"time"

	"partage/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidQuantity = errs.New("reservation quantity must be positive")
	ErrNotActive       = errs.New("reservation is not active")
)

type Status string

const (
	StatusActive   Status = "active"
	StatusConsumed Status = "consumed"
	StatusReleased Status = "released"
)

// DefaultTTL is the hold window applied when adding a lot-linked line item.
const DefaultTTL = 30 * time.Minute

// Reservation is a soft hold of lot stock backing one line item. It is
// consumed only on payment confirmation and released when the line item is
// removed; otherwise it silently expires.
type Reservation struct {
	id         uuid.UUID
	lotID      uuid.UUID
	lineItemID uuid.UUID
	quantity   int
	status     Status
	expiresAt  time.Time
	createdAt  time.Time
}

func NewReservation(lotID, lineItemID uuid.UUID, quantity int, ttl time.Duration, now time.Time) (*Reservation, error) {
	if quantity <= 0 {
		return nil, errs.Mark(ErrInvalidQuantity, errs.ErrDomainValidation)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Reservation{
		id:         uuid.New(),
		lotID:      lotID,
		lineItemID: lineItemID,
		quantity:   quantity,
		status:     StatusActive,
		expiresAt:  now.Add(ttl),
		createdAt:  now,
	}, nil
}

func ReconstructReservation(id, lotID, lineItemID uuid.UUID, quantity int, status Status, expiresAt, createdAt time.Time) *Reservation {
	return &Reservation{
		id:         id,
		lotID:      lotID,
		lineItemID: lineItemID,
		quantity:   quantity,
		status:     status,
		expiresAt:  expiresAt,
		createdAt:  createdAt,
	}
}

func (r *Reservation) ID() uuid.UUID         { return r.id }
func (r *Reservation) LotID() uuid.UUID      { return r.lotID }
func (r *Reservation) LineItemID() uuid.UUID { return r.lineItemID }
func (r *Reservation) Quantity() int         { return r.quantity }
func (r *Reservation) Status() Status        { return r.status }
func (r *Reservation) ExpiresAt() time.Time  { return r.expiresAt }
func (r *Reservation) CreatedAt() time.Time  { return r.createdAt }

func (r *Reservation) HasExpired(now time.Time) bool {
	return now.After(r.expiresAt)
}

// IsActive reports whether the hold still counts against availability.
func (r *Reservation) IsActive(now time.Time) bool {
	return r.status == StatusActive && !r.HasExpired(now)
}

// Consume finalizes the hold on payment confirmation. An expired hold can no
// longer be consumed.
func (r *Reservation) Consume(now time.Time) error {
	if !r.IsActive(now) {
		return errs.Mark(ErrNotActive, errs.ErrIllegalTransition)
	}
	r.status = StatusConsumed
	return nil
}

func (r *Reservation) Release() {
	if r.status == StatusActive {
		r.status = StatusReleased
	}
}

// ActiveQuantity sums the holds that still count against a lot at the given
// instant. Expiry is always re-evaluated here; no background sweep exists.
func ActiveQuantity(reservations []*Reservation, lotID uuid.UUID, now time.Time) int {
	total := 0
	for _, r := range reservations {
		if r.lotID == lotID && r.IsActive(now) {
			total += r.quantity
		}
	}
	return total
}

// CheckAvailability verifies that remaining stock covers the active holds
// plus the requested quantity.
func CheckAvailability(remainingStock int, reservations []*Reservation, lotID uuid.UUID, quantity int, now time.Time) error {
	held := ActiveQuantity(reservations, lotID, now)
	if held+quantity > remainingStock {
		return errs.Mark(
			errs.Newf("lot %s: %d held + %d requested exceeds stock %d", lotID, held, quantity, remainingStock),
			errs.ErrInsufficientStock,
		)
	}
	return nil
}
