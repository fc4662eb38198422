// Package memory provides a map-backed unit of work with the same
// transactional contract as the postgres implementation. It backs unit tests
// and local experiments; nothing in the engine branches on which store it
// runs against.
package memory

import (
	"context"
	"sync"

	"partage/internal/domain/order"
	"partage/internal/domain/participant"
	"partage/internal/domain/payment"
	"partage/internal/domain/profile"
	"partage/internal/domain/reservation"
	"partage/internal/infra"
	"partage/internal/usecase/shared"

	"github.com/google/uuid"
)

type tables struct {
	orders       map[uuid.UUID]*order.Order
	offers       map[uuid.UUID]*order.Offer
	participants map[uuid.UUID]*participant.Participant
	lineItems    map[uuid.UUID]*order.LineItem
	reservations map[uuid.UUID]*reservation.Reservation
	pickupSlots  map[uuid.UUID]*participant.PickupSlot
	payments     map[uuid.UUID]*payment.Payment
	invoices     map[uuid.UUID]*payment.Invoice // keyed by order ID
	profiles     map[uuid.UUID]*profile.Profile
}

func newTables() *tables {
	return &tables{
		orders:       make(map[uuid.UUID]*order.Order),
		offers:       make(map[uuid.UUID]*order.Offer),
		participants: make(map[uuid.UUID]*participant.Participant),
		lineItems:    make(map[uuid.UUID]*order.LineItem),
		reservations: make(map[uuid.UUID]*reservation.Reservation),
		pickupSlots:  make(map[uuid.UUID]*participant.PickupSlot),
		payments:     make(map[uuid.UUID]*payment.Payment),
		invoices:     make(map[uuid.UUID]*payment.Invoice),
		profiles:     make(map[uuid.UUID]*profile.Profile),
	}
}

func (t *tables) snapshot() *tables {
	s := newTables()
	for k, v := range t.orders {
		s.orders[k] = v
	}
	for k, v := range t.offers {
		s.offers[k] = v
	}
	for k, v := range t.participants {
		s.participants[k] = v
	}
	for k, v := range t.lineItems {
		s.lineItems[k] = v
	}
	for k, v := range t.reservations {
		s.reservations[k] = v
	}
	for k, v := range t.pickupSlots {
		s.pickupSlots[k] = v
	}
	for k, v := range t.payments {
		s.payments[k] = v
	}
	for k, v := range t.invoices {
		s.invoices[k] = v
	}
	for k, v := range t.profiles {
		s.profiles[k] = v
	}
	return s
}

type UnitOfWork struct {
	mu   sync.Mutex
	data *tables
}

func NewUnitOfWork() *UnitOfWork {
	return &UnitOfWork{data: newTables()}
}

var _ shared.UnitOfWork = (*UnitOfWork)(nil)

// Within serializes writers with a mutex and restores the pre-transaction
// snapshot when fn fails, mirroring a rollback. Reads hand out clones so a
// mutated entity never leaks into the store before its Update.
func (u *UnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	before := u.data.snapshot()
	if err := fn(ctx, &memTx{data: u.data}); err != nil {
		u.data = before
		return err
	}
	return nil
}

func (u *UnitOfWork) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return fn(ctx, &memTx{data: u.data})
}

type memTx struct {
	data *tables
}

func (t *memTx) Orders() shared.OrderRepository             { return &orderRepo{t.data} }
func (t *memTx) Offers() shared.OfferRepository             { return &offerRepo{t.data} }
func (t *memTx) Participants() shared.ParticipantRepository { return &participantRepo{t.data} }
func (t *memTx) LineItems() shared.LineItemRepository       { return &lineItemRepo{t.data} }
func (t *memTx) Reservations() shared.ReservationRepository { return &reservationRepo{t.data} }
func (t *memTx) PickupSlots() shared.PickupSlotRepository   { return &pickupSlotRepo{t.data} }
func (t *memTx) Payments() shared.PaymentRepository         { return &paymentRepo{t.data} }
func (t *memTx) Invoices() shared.InvoiceRepository         { return &invoiceRepo{t.data} }
func (t *memTx) Profiles() shared.ProfileRepository         { return &profileRepo{t.data} }

func notFound(what string) error {
	return infra.WrapRepoErr(what+" not found", nil, infra.KindNotFound)
}

func duplicate(what string) error {
	return infra.WrapRepoErr(what+" already exists", nil, infra.KindDuplicateKey)
}
