package commands

import (
	"context"
	"time"

	"partage/internal/domain/order"
	"partage/internal/domain/participant"
	"partage/internal/domain/reservation"
	"partage/internal/infra"
	"partage/internal/pkg/clock"
	"partage/internal/pkg/errs"
	"partage/internal/usecase/shared"

	"github.com/google/uuid"
)

type LineItemCommands interface {
	AddLineItem(ctx context.Context, orderID, profileID, offerID uuid.UUID, quantity int) (uuid.UUID, error)
	RemoveLineItem(ctx context.Context, orderID, profileID, lineItemID uuid.UUID) error
}

type lineItemCommands struct {
	uow            shared.UnitOfWork
	catalog        shared.Catalog
	reservationTTL time.Duration
	clock          clock.Clock
}

func NewLineItemCommands(uow shared.UnitOfWork, catalog shared.Catalog, reservationTTL time.Duration, clk clock.Clock) LineItemCommands {
	return &lineItemCommands{
		uow:            uow,
		catalog:        catalog,
		reservationTTL: reservationTTL,
		clock:          clk,
	}
}

func (c *lineItemCommands) AddLineItem(ctx context.Context, orderID, profileID, offerID uuid.UUID, quantity int) (uuid.UUID, error) {
	var itemID uuid.UUID

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Orders().FindByID(ctx, orderID)
		if err != nil {
			return markOrderLookupErr(err)
		}
		if o.Status() != order.StatusOpen {
			return errs.Mark(errs.Newf("line items cannot change in status %q", o.Status()), errs.ErrIllegalTransition)
		}

		member, err := c.activeParticipant(ctx, tx, orderID, profileID)
		if err != nil {
			return err
		}

		offer, err := tx.Offers().FindByID(ctx, offerID)
		if err != nil || offer.OrderID() != orderID {
			return errs.Mark(errs.New("offer does not belong to the order"), errs.ErrOfferNotFound)
		}

		// The offer froze a specific lot; a rotated lot invalidates it.
		lot, err := c.catalog.ActiveLot(ctx, offer.ProductID())
		if err != nil {
			return markCatalogErr(err)
		}
		if lot.ID != offer.LotID() {
			return errs.Mark(errs.Newf("active lot %s superseded offered lot %s", lot.ID, offer.LotID()), errs.ErrLotMismatch)
		}

		now := c.clock.Now()
		holds, err := tx.Reservations().FindByLotID(ctx, lot.ID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := reservation.CheckAvailability(lot.RemainingStock, holds, lot.ID, quantity, now); err != nil {
			return err
		}

		items, err := tx.LineItems().FindByOrderID(ctx, orderID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		// Cached aggregates are cross-checked before every mutation; a
		// divergence aborts instead of compounding.
		if err := order.VerifyLedger(o, items); err != nil {
			return err
		}

		li, err := order.NewLineItem(offer, member.ID(), quantity, now)
		if err != nil {
			return err
		}
		items = append(items, li)
		if err := order.CheckSingleLotPerProduct(items); err != nil {
			return err
		}

		if err := tx.LineItems().Create(ctx, li); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		hold, err := reservation.NewReservation(lot.ID, li.ID(), quantity, c.reservationTTL, now)
		if err != nil {
			return err
		}
		if err := tx.Reservations().Create(ctx, hold); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		itemID = li.ID()
		return persistLedger(ctx, tx, o, items, now)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return itemID, nil
}

func (c *lineItemCommands) RemoveLineItem(ctx context.Context, orderID, profileID, lineItemID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Orders().FindByID(ctx, orderID)
		if err != nil {
			return markOrderLookupErr(err)
		}
		if o.Status() != order.StatusOpen {
			return errs.Mark(errs.Newf("line items cannot change in status %q", o.Status()), errs.ErrIllegalTransition)
		}

		li, err := tx.LineItems().FindByID(ctx, lineItemID)
		if err != nil || li.OrderID() != orderID {
			return errs.Mark(errs.New("line item does not belong to the order"), errs.ErrLineItemNotFound)
		}

		member, err := c.activeParticipant(ctx, tx, orderID, profileID)
		if err != nil {
			return err
		}
		if li.ParticipantID() != member.ID() && profileID != o.OwnerID() {
			return errs.Mark(errs.New("line item belongs to another participant"), errs.ErrWrongActor)
		}

		items, err := tx.LineItems().FindByOrderID(ctx, orderID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := order.VerifyLedger(o, items); err != nil {
			return err
		}

		now := c.clock.Now()
		if hold, err := tx.Reservations().FindByLineItemID(ctx, lineItemID); err == nil {
			hold.Release()
			if err := tx.Reservations().Update(ctx, hold); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		} else if !infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if err := tx.LineItems().Delete(ctx, lineItemID); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		remaining := items[:0]
		for _, it := range items {
			if it.ID() != lineItemID {
				remaining = append(remaining, it)
			}
		}
		return persistLedger(ctx, tx, o, remaining, now)
	})
}

func (c *lineItemCommands) activeParticipant(ctx context.Context, tx shared.Tx, orderID, profileID uuid.UUID) (*participant.Participant, error) {
	member, err := tx.Participants().FindByOrderAndProfile(ctx, orderID, profileID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrParticipantNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !member.IsAccepted() {
		return nil, errs.Mark(errs.Newf("participant is %q", member.Status()), errs.ErrParticipantNotActive)
	}
	return member, nil
}

// persistLedger rebuilds every aggregate from the given item set and writes
// order and participant caches back in the same transaction.
func persistLedger(ctx context.Context, tx shared.Tx, o *order.Order, items []*order.LineItem, now time.Time) error {
	ledger := order.RecomputeLedger(items)
	o.ApplyTotals(ledger.Order, now)
	if err := tx.Orders().Update(ctx, o); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	members, err := tx.Participants().FindByOrderID(ctx, o.ID())
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	for _, m := range members {
		pt := ledger.Participant[m.ID()]
		if pt.WeightKg == m.TotalWeightKg() && pt.AmountCents == m.TotalAmountCents() {
			continue
		}
		m.ApplyTotals(pt.WeightKg, pt.AmountCents, now)
		if err := tx.Participants().Update(ctx, m); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
	}
	return nil
}
