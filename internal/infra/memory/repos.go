package memory

import (
	"context"
	"sort"
	"time"

	"partage/internal/domain/order"
	"partage/internal/domain/participant"
	"partage/internal/domain/payment"
	"partage/internal/domain/profile"
	"partage/internal/domain/reservation"

	"github.com/google/uuid"
)

// byCreation matches the SQL store's list ordering: created_at first, id as
// the tiebreak so rows sharing a timestamp come back in a stable order.
func byCreation(aAt, bAt time.Time, aID, bID uuid.UUID) bool {
	if !aAt.Equal(bAt) {
		return aAt.Before(bAt)
	}
	return aID.String() < bID.String()
}

// Clone helpers rebuild entities through their reconstructors so callers can
// mutate what they read without touching the store.

func cloneOrder(o *order.Order) *order.Order {
	return order.ReconstructOrder(
		o.ID(), o.Code(), o.OwnerID(), o.ProducerID(), o.Status(), o.Visibility(),
		o.MinWeightKg(), o.MaxWeightKg(), o.SharerPct(), o.DeliveryMode(), o.FlatFeeCents(),
		o.Totals(), o.ParticipantFlagsStored(),
		o.AutoApproveParticipants(), o.AutoApprovePickupSlots(),
		o.CreatedAt(), o.UpdatedAt(),
	)
}

func cloneParticipant(p *participant.Participant) *participant.Participant {
	return participant.ReconstructParticipant(
		p.ID(), p.OrderID(), p.ProfileID(), p.Role(), p.Status(),
		p.PickupSlotID(), p.PickupSlotStatus(),
		p.TotalWeightKg(), p.TotalAmountCents(), p.PickupCode(),
		p.CreatedAt(), p.UpdatedAt(),
	)
}

func cloneReservation(r *reservation.Reservation) *reservation.Reservation {
	return reservation.ReconstructReservation(
		r.ID(), r.LotID(), r.LineItemID(), r.Quantity(), r.Status(), r.ExpiresAt(), r.CreatedAt(),
	)
}

func clonePayment(p *payment.Payment) *payment.Payment {
	return payment.ReconstructPayment(
		p.ID(), p.OrderID(), p.ParticipantID(), p.AmountCents(), p.Status(), p.ExternalRef(),
		p.CreatedAt(), p.UpdatedAt(),
	)
}

func clonePickupSlot(s *participant.PickupSlot) *participant.PickupSlot {
	return participant.ReconstructPickupSlot(
		s.ID(), s.OrderID(), s.Weekday(), s.Date(), s.Start(), s.End(), s.Enabled(),
	)
}

// Offers, line items, invoices and profiles are immutable after creation, so
// they are handed out as-is.

type orderRepo struct{ data *tables }

func (r *orderRepo) Create(_ context.Context, o *order.Order) error {
	if _, ok := r.data.orders[o.ID()]; ok {
		return duplicate("order")
	}
	for _, existing := range r.data.orders {
		if existing.Code() == o.Code() {
			return duplicate("order code")
		}
	}
	r.data.orders[o.ID()] = cloneOrder(o)
	return nil
}

func (r *orderRepo) FindByID(_ context.Context, id uuid.UUID) (*order.Order, error) {
	o, ok := r.data.orders[id]
	if !ok {
		return nil, notFound("order")
	}
	return cloneOrder(o), nil
}

func (r *orderRepo) FindByCode(_ context.Context, code string) (*order.Order, error) {
	for _, o := range r.data.orders {
		if o.Code() == code {
			return cloneOrder(o), nil
		}
	}
	return nil, notFound("order")
}

func (r *orderRepo) Update(_ context.Context, o *order.Order) error {
	if _, ok := r.data.orders[o.ID()]; !ok {
		return notFound("order")
	}
	r.data.orders[o.ID()] = cloneOrder(o)
	return nil
}

type offerRepo struct{ data *tables }

func (r *offerRepo) Create(_ context.Context, f *order.Offer) error {
	if _, ok := r.data.offers[f.ID()]; ok {
		return duplicate("offer")
	}
	r.data.offers[f.ID()] = f
	return nil
}

func (r *offerRepo) FindByID(_ context.Context, id uuid.UUID) (*order.Offer, error) {
	f, ok := r.data.offers[id]
	if !ok {
		return nil, notFound("offer")
	}
	return f, nil
}

func (r *offerRepo) FindByOrderID(_ context.Context, orderID uuid.UUID) ([]*order.Offer, error) {
	var offers []*order.Offer
	for _, f := range r.data.offers {
		if f.OrderID() == orderID {
			offers = append(offers, f)
		}
	}
	sort.SliceStable(offers, func(i, j int) bool {
		return byCreation(offers[i].CreatedAt(), offers[j].CreatedAt(), offers[i].ID(), offers[j].ID())
	})
	return offers, nil
}

type participantRepo struct{ data *tables }

func (r *participantRepo) Create(_ context.Context, p *participant.Participant) error {
	if _, ok := r.data.participants[p.ID()]; ok {
		return duplicate("participant")
	}
	if pid := p.ProfileID(); pid != nil {
		for _, existing := range r.data.participants {
			if existing.OrderID() == p.OrderID() && existing.ProfileID() != nil && *existing.ProfileID() == *pid {
				return duplicate("participant")
			}
		}
	}
	r.data.participants[p.ID()] = cloneParticipant(p)
	return nil
}

func (r *participantRepo) Update(_ context.Context, p *participant.Participant) error {
	if _, ok := r.data.participants[p.ID()]; !ok {
		return notFound("participant")
	}
	r.data.participants[p.ID()] = cloneParticipant(p)
	return nil
}

func (r *participantRepo) FindByID(_ context.Context, id uuid.UUID) (*participant.Participant, error) {
	p, ok := r.data.participants[id]
	if !ok {
		return nil, notFound("participant")
	}
	return cloneParticipant(p), nil
}

func (r *participantRepo) FindByOrderAndProfile(_ context.Context, orderID, profileID uuid.UUID) (*participant.Participant, error) {
	for _, p := range r.data.participants {
		if p.OrderID() == orderID && p.ProfileID() != nil && *p.ProfileID() == profileID {
			return cloneParticipant(p), nil
		}
	}
	return nil, notFound("participant")
}

func (r *participantRepo) FindByOrderID(_ context.Context, orderID uuid.UUID) ([]*participant.Participant, error) {
	var members []*participant.Participant
	for _, p := range r.data.participants {
		if p.OrderID() == orderID {
			members = append(members, cloneParticipant(p))
		}
	}
	sort.SliceStable(members, func(i, j int) bool {
		return byCreation(members[i].CreatedAt(), members[j].CreatedAt(), members[i].ID(), members[j].ID())
	})
	return members, nil
}

type lineItemRepo struct{ data *tables }

func (r *lineItemRepo) Create(_ context.Context, li *order.LineItem) error {
	if _, ok := r.data.lineItems[li.ID()]; ok {
		return duplicate("line item")
	}
	r.data.lineItems[li.ID()] = li
	return nil
}

func (r *lineItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.data.lineItems[id]; !ok {
		return notFound("line item")
	}
	delete(r.data.lineItems, id)
	return nil
}

func (r *lineItemRepo) FindByID(_ context.Context, id uuid.UUID) (*order.LineItem, error) {
	li, ok := r.data.lineItems[id]
	if !ok {
		return nil, notFound("line item")
	}
	return li, nil
}

func (r *lineItemRepo) FindByOrderID(_ context.Context, orderID uuid.UUID) ([]*order.LineItem, error) {
	var items []*order.LineItem
	for _, li := range r.data.lineItems {
		if li.OrderID() == orderID {
			items = append(items, li)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return byCreation(items[i].CreatedAt(), items[j].CreatedAt(), items[i].ID(), items[j].ID())
	})
	return items, nil
}

type reservationRepo struct{ data *tables }

func (r *reservationRepo) Create(_ context.Context, res *reservation.Reservation) error {
	if _, ok := r.data.reservations[res.ID()]; ok {
		return duplicate("reservation")
	}
	r.data.reservations[res.ID()] = cloneReservation(res)
	return nil
}

func (r *reservationRepo) Update(_ context.Context, res *reservation.Reservation) error {
	if _, ok := r.data.reservations[res.ID()]; !ok {
		return notFound("reservation")
	}
	r.data.reservations[res.ID()] = cloneReservation(res)
	return nil
}

func (r *reservationRepo) FindByLotID(_ context.Context, lotID uuid.UUID) ([]*reservation.Reservation, error) {
	var holds []*reservation.Reservation
	for _, res := range r.data.reservations {
		if res.LotID() == lotID {
			holds = append(holds, cloneReservation(res))
		}
	}
	sort.SliceStable(holds, func(i, j int) bool {
		return byCreation(holds[i].CreatedAt(), holds[j].CreatedAt(), holds[i].ID(), holds[j].ID())
	})
	return holds, nil
}

func (r *reservationRepo) FindByLineItemID(_ context.Context, lineItemID uuid.UUID) (*reservation.Reservation, error) {
	for _, res := range r.data.reservations {
		if res.LineItemID() == lineItemID {
			return cloneReservation(res), nil
		}
	}
	return nil, notFound("reservation")
}

func (r *reservationRepo) FindByOrderID(_ context.Context, orderID uuid.UUID) ([]*reservation.Reservation, error) {
	var holds []*reservation.Reservation
	for _, res := range r.data.reservations {
		if li, ok := r.data.lineItems[res.LineItemID()]; ok && li.OrderID() == orderID {
			holds = append(holds, cloneReservation(res))
		}
	}
	sort.SliceStable(holds, func(i, j int) bool {
		return byCreation(holds[i].CreatedAt(), holds[j].CreatedAt(), holds[i].ID(), holds[j].ID())
	})
	return holds, nil
}

type pickupSlotRepo struct{ data *tables }

func (r *pickupSlotRepo) Create(_ context.Context, s *participant.PickupSlot) error {
	if _, ok := r.data.pickupSlots[s.ID()]; ok {
		return duplicate("pickup slot")
	}
	r.data.pickupSlots[s.ID()] = clonePickupSlot(s)
	return nil
}

func (r *pickupSlotRepo) Update(_ context.Context, s *participant.PickupSlot) error {
	if _, ok := r.data.pickupSlots[s.ID()]; !ok {
		return notFound("pickup slot")
	}
	r.data.pickupSlots[s.ID()] = clonePickupSlot(s)
	return nil
}

func (r *pickupSlotRepo) FindByID(_ context.Context, id uuid.UUID) (*participant.PickupSlot, error) {
	s, ok := r.data.pickupSlots[id]
	if !ok {
		return nil, notFound("pickup slot")
	}
	return clonePickupSlot(s), nil
}

func (r *pickupSlotRepo) FindByOrderID(_ context.Context, orderID uuid.UUID) ([]*participant.PickupSlot, error) {
	var slots []*participant.PickupSlot
	for _, s := range r.data.pickupSlots {
		if s.OrderID() == orderID {
			slots = append(slots, clonePickupSlot(s))
		}
	}
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].ID().String() < slots[j].ID().String()
	})
	return slots, nil
}

type paymentRepo struct{ data *tables }

func (r *paymentRepo) Create(_ context.Context, p *payment.Payment) error {
	if _, ok := r.data.payments[p.ID()]; ok {
		return duplicate("payment")
	}
	r.data.payments[p.ID()] = clonePayment(p)
	return nil
}

func (r *paymentRepo) Update(_ context.Context, p *payment.Payment) error {
	if _, ok := r.data.payments[p.ID()]; !ok {
		return notFound("payment")
	}
	r.data.payments[p.ID()] = clonePayment(p)
	return nil
}

func (r *paymentRepo) FindByID(_ context.Context, id uuid.UUID) (*payment.Payment, error) {
	p, ok := r.data.payments[id]
	if !ok {
		return nil, notFound("payment")
	}
	return clonePayment(p), nil
}

type invoiceRepo struct{ data *tables }

func (r *invoiceRepo) CreateIfAbsent(_ context.Context, inv *payment.Invoice) (bool, error) {
	if _, ok := r.data.invoices[inv.OrderID()]; ok {
		return false, nil
	}
	r.data.invoices[inv.OrderID()] = inv
	return true, nil
}

func (r *invoiceRepo) FindByOrderID(_ context.Context, orderID uuid.UUID) (*payment.Invoice, error) {
	inv, ok := r.data.invoices[orderID]
	if !ok {
		return nil, notFound("invoice")
	}
	return inv, nil
}

type profileRepo struct{ data *tables }

func (r *profileRepo) Create(_ context.Context, p *profile.Profile) error {
	if _, ok := r.data.profiles[p.ID()]; ok {
		return duplicate("profile")
	}
	for _, existing := range r.data.profiles {
		if existing.Email() == p.Email() {
			return duplicate("profile email")
		}
	}
	r.data.profiles[p.ID()] = p
	return nil
}

func (r *profileRepo) FindByID(_ context.Context, id uuid.UUID) (*profile.Profile, error) {
	p, ok := r.data.profiles[id]
	if !ok {
		return nil, notFound("profile")
	}
	return p, nil
}

func (r *profileRepo) FindByEmail(_ context.Context, email string) (*profile.Profile, error) {
	for _, p := range r.data.profiles {
		if p.Email() == email {
			return p, nil
		}
	}
	return nil, notFound("profile")
}
