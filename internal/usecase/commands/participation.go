package commands

import (
	"context"

	"partage/internal/domain/order"
	"partage/internal/domain/participant"
	"partage/internal/infra"
	"partage/internal/pkg/clock"
	"partage/internal/pkg/errs"
	"partage/internal/pkg/shortcode"
	"partage/internal/usecase/shared"

	"github.com/google/uuid"
)

type ParticipationCommands interface {
	// RequestParticipation joins a profile to an order, or refreshes an
	// earlier non-accepted request. At most one row exists per
	// (order, profile) pair.
	RequestParticipation(ctx context.Context, orderID, profileID uuid.UUID) (uuid.UUID, error)
	ApproveParticipation(ctx context.Context, orderID, actorID, participantID uuid.UUID) error
	RejectParticipation(ctx context.Context, orderID, actorID, participantID uuid.UUID) error
	RemoveParticipation(ctx context.Context, orderID, actorID, participantID uuid.UUID) error
}

type participationCommands struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewParticipationCommands(uow shared.UnitOfWork, clk clock.Clock) ParticipationCommands {
	return &participationCommands{uow: uow, clock: clk}
}

func (c *participationCommands) RequestParticipation(ctx context.Context, orderID, profileID uuid.UUID) (uuid.UUID, error) {
	if profileID == uuid.Nil {
		return uuid.Nil, errs.ErrMissingActor
	}

	var participantID uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Orders().FindByID(ctx, orderID)
		if err != nil {
			return markOrderLookupErr(err)
		}
		if o.Status() != order.StatusOpen {
			return errs.Mark(errs.Newf("order %q does not accept join requests", o.Status()), errs.ErrIllegalTransition)
		}

		now := c.clock.Now()
		existing, err := tx.Participants().FindByOrderAndProfile(ctx, orderID, profileID)
		switch {
		case err == nil:
			existing.Rerequest(o.AutoApproveParticipants(), shortcode.NewPickupCode(), now)
			if err := tx.Participants().Update(ctx, existing); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			participantID = existing.ID()
			return nil
		case infra.IsKind(err, infra.KindNotFound):
			p := participant.NewParticipant(orderID, &profileID, participant.RoleParticipant, o.AutoApproveParticipants(), shortcode.NewPickupCode(), now)
			if err := tx.Participants().Create(ctx, p); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			participantID = p.ID()
			return nil
		default:
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
	})
	if err != nil {
		return uuid.Nil, err
	}
	return participantID, nil
}

func (c *participationCommands) ApproveParticipation(ctx context.Context, orderID, actorID, participantID uuid.UUID) error {
	return c.resolveRequest(ctx, orderID, actorID, participantID, func(p *participant.Participant) error {
		return p.Accept(shortcode.NewPickupCode(), c.clock.Now())
	})
}

func (c *participationCommands) RejectParticipation(ctx context.Context, orderID, actorID, participantID uuid.UUID) error {
	return c.resolveRequest(ctx, orderID, actorID, participantID, func(p *participant.Participant) error {
		return p.Reject(c.clock.Now())
	})
}

func (c *participationCommands) RemoveParticipation(ctx context.Context, orderID, actorID, participantID uuid.UUID) error {
	return c.resolveRequest(ctx, orderID, actorID, participantID, func(p *participant.Participant) error {
		p.Remove(c.clock.Now())
		return nil
	})
}

// resolveRequest applies an owner decision to a participation row.
func (c *participationCommands) resolveRequest(ctx context.Context, orderID, actorID, participantID uuid.UUID, decide func(*participant.Participant) error) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Orders().FindByID(ctx, orderID)
		if err != nil {
			return markOrderLookupErr(err)
		}
		if actorID != o.OwnerID() {
			return errs.Mark(errs.New("only the sharer resolves participation"), errs.ErrWrongActor)
		}

		p, err := tx.Participants().FindByID(ctx, participantID)
		if err != nil || p.OrderID() != orderID {
			return errs.Mark(errs.New("participant does not belong to the order"), errs.ErrParticipantNotFound)
		}
		if err := decide(p); err != nil {
			return err
		}
		if err := tx.Participants().Update(ctx, p); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}
