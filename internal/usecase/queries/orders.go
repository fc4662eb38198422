package queries

import (
	"context"

	"partage/internal/domain/order"
	"partage/internal/domain/participant"
	"partage/internal/infra"
	"partage/internal/pkg/errs"
	"partage/internal/pkg/ptr"
	"partage/internal/usecase/shared"

	"github.com/google/uuid"
)

type OrderQueries interface {
	GetOrder(ctx context.Context, orderID, viewerID uuid.UUID) (*OrderView, error)
	// GetOrderByCode resolves the shareable short code. Private orders are
	// reachable this way too; the code itself is the capability.
	GetOrderByCode(ctx context.Context, code string, viewerID uuid.UUID) (*OrderView, error)
}

type orderQueries struct {
	uow shared.UnitOfWork
}

func NewOrderQueries(uow shared.UnitOfWork) OrderQueries {
	return &orderQueries{uow: uow}
}

func (q *orderQueries) GetOrder(ctx context.Context, orderID, viewerID uuid.UUID) (*OrderView, error) {
	return q.buildView(ctx, viewerID, func(ctx context.Context, tx shared.Tx) (*order.Order, error) {
		return tx.Orders().FindByID(ctx, orderID)
	})
}

func (q *orderQueries) GetOrderByCode(ctx context.Context, code string, viewerID uuid.UUID) (*OrderView, error) {
	return q.buildView(ctx, viewerID, func(ctx context.Context, tx shared.Tx) (*order.Order, error) {
		return tx.Orders().FindByCode(ctx, code)
	})
}

func (q *orderQueries) buildView(ctx context.Context, viewerID uuid.UUID, find func(ctx context.Context, tx shared.Tx) (*order.Order, error)) (*OrderView, error) {
	var view *OrderView

	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := find(ctx, tx)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrOrderNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		offers, err := tx.Offers().FindByOrderID(ctx, o.ID())
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		members, err := tx.Participants().FindByOrderID(ctx, o.ID())
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		items, err := tx.LineItems().FindByOrderID(ctx, o.ID())
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		slots, err := tx.PickupSlots().FindByOrderID(ctx, o.ID())
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		viewer := classifyViewer(o, viewerID)
		flags := o.ResolveVisibility(viewer)

		itemsByParticipant := make(map[uuid.UUID][]LineItemView, len(members))
		offerNames := make(map[uuid.UUID]string, len(offers))
		for _, f := range offers {
			offerNames[f.ID()] = f.Name()
		}
		for _, li := range items {
			itemsByParticipant[li.ParticipantID()] = append(itemsByParticipant[li.ParticipantID()], LineItemView{
				ID:           li.ID(),
				OfferID:      li.OfferID(),
				Name:         offerNames[li.OfferID()],
				Quantity:     li.Quantity(),
				LineWeightKg: li.LineWeightKg(),
				LineCents:    li.LineTotalCents(),
			})
		}

		participantViews := make([]ParticipantView, 0, len(members))
		for _, m := range members {
			pv := redactParticipant(ctx, tx, m, flags, viewerID, viewer == order.ViewerOwner)
			if flags.Content {
				pv.Items = itemsByParticipant[m.ID()]
			}
			participantViews = append(participantViews, pv)
		}

		totals := o.Totals()
		offerViews := make([]OfferView, 0, len(offers))
		for _, f := range offers {
			unit := f.Unit()
			offerViews = append(offerViews, OfferView{
				ID:            f.ID(),
				ProductID:     f.ProductID(),
				Name:          f.Name(),
				UnitWeightKg:  f.UnitWeightKg(),
				BaseCents:     unit.BaseCents,
				DeliveryCents: unit.DeliveryCents,
				SharerCents:   unit.SharerCents,
				FinalCents:    unit.FinalCents,
			})
		}

		slotViews := make([]PickupSlotView, 0, len(slots))
		for _, s := range slots {
			sv := PickupSlotView{
				ID:      s.ID(),
				Date:    s.Date(),
				Start:   s.Start(),
				End:     s.End(),
				Enabled: s.Enabled(),
			}
			if wd := s.Weekday(); wd != nil {
				sv.Weekday = ptr.To(wd.String())
			}
			slotViews = append(slotViews, sv)
		}

		view = &OrderView{
			ID:                    o.ID(),
			Code:                  o.Code(),
			OwnerID:               o.OwnerID(),
			ProducerID:            o.ProducerID(),
			Status:                o.Status().String(),
			Visibility:            string(o.Visibility()),
			MinWeightKg:           o.MinWeightKg(),
			MaxWeightKg:           o.MaxWeightKg(),
			SharerPct:             o.SharerPct(),
			DeliveryMode:          string(o.DeliveryMode()),
			OrderedWeightKg:       totals.OrderedWeightKg,
			EffectiveWeightKg:     o.EffectiveWeightKg(),
			BaseCents:             totals.BaseCents,
			DeliveryCents:         totals.DeliveryCents,
			SharerCents:           totals.SharerCents,
			ParticipantTotalCents: totals.ParticipantTotalCents,
			DeliveryFeeTotalCents: o.DeliveryFeeTotalCents(),
			Offers:                offerViews,
			Participants:          participantViews,
			PickupSlots:           slotViews,
			CreatedAt:             o.CreatedAt(),
			UpdatedAt:             o.UpdatedAt(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func classifyViewer(o *order.Order, viewerID uuid.UUID) order.Viewer {
	switch viewerID {
	case o.OwnerID():
		return order.ViewerOwner
	case o.ProducerID():
		return order.ViewerProducer
	default:
		return order.ViewerOther
	}
}

// redactParticipant builds one table row with every field the viewer may not
// see left nil. The pickup code additionally stays private to its holder.
func redactParticipant(ctx context.Context, tx shared.Tx, m *participant.Participant, flags order.ParticipantFlags, viewerID uuid.UUID, ownerView bool) ParticipantView {
	pv := ParticipantView{
		ID:               m.ID(),
		Role:             string(m.Role()),
		Status:           string(m.Status()),
		PickupSlotStatus: string(m.PickupSlotStatus()),
	}
	if flags.Profile {
		if pid := m.ProfileID(); pid != nil {
			if prof, err := tx.Profiles().FindByID(ctx, *pid); err == nil {
				pv.DisplayName = ptr.To(prof.DisplayName())
			}
		}
	}
	if flags.Weight {
		pv.TotalWeightKg = ptr.To(m.TotalWeightKg())
	}
	if flags.Amount {
		pv.TotalAmountCents = ptr.To(m.TotalAmountCents())
	}
	if flags.Content {
		pv.PickupSlotID = m.PickupSlotID()
	}
	// Pickup codes are capabilities, never part of the flag policy: only
	// their holder and the sharer see them.
	selfView := m.ProfileID() != nil && *m.ProfileID() == viewerID
	if selfView || ownerView {
		pv.PickupCode = m.PickupCode()
	}
	return pv
}
