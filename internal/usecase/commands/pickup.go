package commands

import (
	"context"
	"time"

	"partage/internal/domain/participant"
	"partage/internal/infra"
	"partage/internal/pkg/clock"
	"partage/internal/pkg/errs"
	"partage/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreatePickupSlotParams struct {
	OrderID uuid.UUID
	ActorID uuid.UUID
	Weekday *time.Weekday
	Date    *time.Time
	Start   string
	End     string
	Enabled bool
}

type PickupCommands interface {
	CreatePickupSlot(ctx context.Context, p CreatePickupSlotParams) (uuid.UUID, error)
	SetPickupSlotEnabled(ctx context.Context, orderID, actorID, slotID uuid.UUID, enabled bool) error
	// SelectPickupSlot records a participant's slot choice once the goods
	// are receivable; a later selection supersedes the previous one.
	SelectPickupSlot(ctx context.Context, orderID, profileID, slotID uuid.UUID) error
	ApprovePickupSlot(ctx context.Context, orderID, actorID, participantID uuid.UUID) error
}

type pickupCommands struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewPickupCommands(uow shared.UnitOfWork, clk clock.Clock) PickupCommands {
	return &pickupCommands{uow: uow, clock: clk}
}

func (c *pickupCommands) CreatePickupSlot(ctx context.Context, p CreatePickupSlotParams) (uuid.UUID, error) {
	var slotID uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Orders().FindByID(ctx, p.OrderID)
		if err != nil {
			return markOrderLookupErr(err)
		}
		if p.ActorID != o.OwnerID() {
			return errs.Mark(errs.New("only the sharer manages pickup slots"), errs.ErrWrongActor)
		}
		slot, err := participant.NewPickupSlot(p.OrderID, p.Weekday, p.Date, p.Start, p.End, p.Enabled)
		if err != nil {
			return err
		}
		if err := tx.PickupSlots().Create(ctx, slot); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		slotID = slot.ID()
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return slotID, nil
}

func (c *pickupCommands) SetPickupSlotEnabled(ctx context.Context, orderID, actorID, slotID uuid.UUID, enabled bool) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Orders().FindByID(ctx, orderID)
		if err != nil {
			return markOrderLookupErr(err)
		}
		if actorID != o.OwnerID() {
			return errs.Mark(errs.New("only the sharer manages pickup slots"), errs.ErrWrongActor)
		}
		slot, err := c.orderSlot(ctx, tx, orderID, slotID)
		if err != nil {
			return err
		}
		slot.SetEnabled(enabled)
		if err := tx.PickupSlots().Update(ctx, slot); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (c *pickupCommands) SelectPickupSlot(ctx context.Context, orderID, profileID, slotID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Orders().FindByID(ctx, orderID)
		if err != nil {
			return markOrderLookupErr(err)
		}
		if !o.Status().IsReceivable() {
			return errs.Mark(errs.Newf("goods are not receivable in status %q", o.Status()), errs.ErrOrderNotReceivable)
		}

		slot, err := c.orderSlot(ctx, tx, orderID, slotID)
		if err != nil {
			return err
		}
		if !slot.Enabled() {
			return errs.Mark(participant.ErrSlotDisabled, errs.ErrDomainValidation)
		}

		member, err := tx.Participants().FindByOrderAndProfile(ctx, orderID, profileID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrParticipantNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := member.SelectPickupSlot(slotID, o.AutoApprovePickupSlots(), c.clock.Now()); err != nil {
			return err
		}
		if err := tx.Participants().Update(ctx, member); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (c *pickupCommands) ApprovePickupSlot(ctx context.Context, orderID, actorID, participantID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Orders().FindByID(ctx, orderID)
		if err != nil {
			return markOrderLookupErr(err)
		}
		if actorID != o.OwnerID() {
			return errs.Mark(errs.New("only the sharer approves pickup slots"), errs.ErrWrongActor)
		}
		member, err := tx.Participants().FindByID(ctx, participantID)
		if err != nil || member.OrderID() != orderID {
			return errs.Mark(errs.New("participant does not belong to the order"), errs.ErrParticipantNotFound)
		}
		if err := member.ApprovePickupSlot(c.clock.Now()); err != nil {
			return err
		}
		if err := tx.Participants().Update(ctx, member); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (c *pickupCommands) orderSlot(ctx context.Context, tx shared.Tx, orderID, slotID uuid.UUID) (*participant.PickupSlot, error) {
	slot, err := tx.PickupSlots().FindByID(ctx, slotID)
	if err != nil || slot.OrderID() != orderID {
		return nil, errs.Mark(errs.New("pickup slot does not belong to the order"), errs.ErrPickupSlotNotFound)
	}
	return slot, nil
}
