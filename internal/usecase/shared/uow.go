package shared

import (
	"context"

	"partage/internal/domain/order"
	"partage/internal/domain/participant"
	"partage/internal/domain/payment"
	"partage/internal/domain/profile"
	"partage/internal/domain/reservation"

	"github.com/google/uuid"
)

// UnitOfWork is the storage port. Engine logic depends only on this
// interface; the postgres implementation carries production traffic and the
// in-memory implementation backs unit tests. No code branches on which one
// it holds.
type UnitOfWork interface {
	// Within: full transaction for write operations with retry on
	// serialization failures. Mutations touching aggregates always run here
	// so concurrent writers never interleave partial aggregate writes.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: consistent multi-table reads.
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Orders() OrderRepository
	Offers() OfferRepository
	Participants() ParticipantRepository
	LineItems() LineItemRepository
	Reservations() ReservationRepository
	PickupSlots() PickupSlotRepository
	Payments() PaymentRepository
	Invoices() InvoiceRepository
	Profiles() ProfileRepository
}

type OrderRepository interface {
	Create(ctx context.Context, o *order.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error)
	FindByCode(ctx context.Context, code string) (*order.Order, error)
	// Update persists status, visibility, flags and cached totals.
	Update(ctx context.Context, o *order.Order) error
}

type OfferRepository interface {
	Create(ctx context.Context, f *order.Offer) error
	FindByID(ctx context.Context, id uuid.UUID) (*order.Offer, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]*order.Offer, error)
}

type ParticipantRepository interface {
	Create(ctx context.Context, p *participant.Participant) error
	Update(ctx context.Context, p *participant.Participant) error
	FindByID(ctx context.Context, id uuid.UUID) (*participant.Participant, error)
	FindByOrderAndProfile(ctx context.Context, orderID, profileID uuid.UUID) (*participant.Participant, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]*participant.Participant, error)
}

type LineItemRepository interface {
	Create(ctx context.Context, li *order.LineItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*order.LineItem, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]*order.LineItem, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, r *reservation.Reservation) error
	Update(ctx context.Context, r *reservation.Reservation) error
	FindByLotID(ctx context.Context, lotID uuid.UUID) ([]*reservation.Reservation, error)
	FindByLineItemID(ctx context.Context, lineItemID uuid.UUID) (*reservation.Reservation, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]*reservation.Reservation, error)
}

type PickupSlotRepository interface {
	Create(ctx context.Context, s *participant.PickupSlot) error
	Update(ctx context.Context, s *participant.PickupSlot) error
	FindByID(ctx context.Context, id uuid.UUID) (*participant.PickupSlot, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]*participant.PickupSlot, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *payment.Payment) error
	Update(ctx context.Context, p *payment.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*payment.Payment, error)
}

type InvoiceRepository interface {
	// CreateIfAbsent inserts the invoice unless one already exists for the
	// order. Returns false when the order was already invoiced.
	CreateIfAbsent(ctx context.Context, inv *payment.Invoice) (bool, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*payment.Invoice, error)
}

type ProfileRepository interface {
	Create(ctx context.Context, p *profile.Profile) error
	FindByID(ctx context.Context, id uuid.UUID) (*profile.Profile, error)
	FindByEmail(ctx context.Context, email string) (*profile.Profile, error)
}
