package commands

import (
	"context"
	"log/slog"

	"partage/internal/domain/payment"
	"partage/internal/infra"
	"partage/internal/pkg/clock"
	"partage/internal/pkg/errs"
	"partage/internal/usecase/shared"

	"github.com/google/uuid"
)

type PaymentCommands interface {
	// StartPayment charges a participant's cached total via the gateway and
	// records the pending attempt.
	StartPayment(ctx context.Context, orderID, profileID uuid.UUID) (uuid.UUID, error)
	// ConfirmPayment settles a pending payment and consumes the
	// participant's active stock holds in the same transaction.
	ConfirmPayment(ctx context.Context, paymentID uuid.UUID) error
	FailPayment(ctx context.Context, paymentID uuid.UUID) error
}

type paymentCommands struct {
	uow     shared.UnitOfWork
	gateway shared.PaymentGateway
	clock   clock.Clock
}

func NewPaymentCommands(uow shared.UnitOfWork, gateway shared.PaymentGateway, clk clock.Clock) PaymentCommands {
	return &paymentCommands{uow: uow, gateway: gateway, clock: clk}
}

func (c *paymentCommands) StartPayment(ctx context.Context, orderID, profileID uuid.UUID) (uuid.UUID, error) {
	var pay *payment.Payment

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		member, err := tx.Participants().FindByOrderAndProfile(ctx, orderID, profileID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrParticipantNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !member.IsAccepted() {
			return errs.Mark(errs.Newf("participant is %q", member.Status()), errs.ErrParticipantNotActive)
		}

		p, err := payment.NewPayment(orderID, member.ID(), member.TotalAmountCents(), c.clock.Now())
		if err != nil {
			return err
		}
		if err := tx.Payments().Create(ctx, p); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		pay = p
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	// The gateway call stays outside the transaction; its outcome lands via
	// ConfirmPayment or FailPayment.
	ref, err := c.gateway.Charge(ctx, shared.ChargeRequest{
		PaymentID:     pay.ID(),
		ParticipantID: pay.ParticipantID(),
		AmountCents:   pay.AmountCents(),
	})
	if err != nil {
		if failErr := c.FailPayment(ctx, pay.ID()); failErr != nil {
			slog.Warn("failed to record payment failure", "payment_id", pay.ID(), "error", failErr.Error())
		}
		return uuid.Nil, errs.Mark(err, errs.ErrPaymentFailed)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		p, err := tx.Payments().FindByID(ctx, pay.ID())
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		p.AttachExternalRef(ref, c.clock.Now())
		if err := tx.Payments().Update(ctx, p); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return pay.ID(), nil
}

func (c *paymentCommands) ConfirmPayment(ctx context.Context, paymentID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		p, err := c.findPayment(ctx, tx, paymentID)
		if err != nil {
			return err
		}
		now := c.clock.Now()
		if err := p.MarkPaid(now); err != nil {
			return err
		}
		if err := tx.Payments().Update(ctx, p); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		// Only now do holds turn into firm stock consumption.
		items, err := tx.LineItems().FindByOrderID(ctx, p.OrderID())
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		for _, li := range items {
			if li.ParticipantID() != p.ParticipantID() {
				continue
			}
			hold, err := tx.Reservations().FindByLineItemID(ctx, li.ID())
			if err != nil {
				if infra.IsKind(err, infra.KindNotFound) {
					continue
				}
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			if err := hold.Consume(now); err != nil {
				return err
			}
			if err := tx.Reservations().Update(ctx, hold); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		}
		return nil
	})
}

func (c *paymentCommands) FailPayment(ctx context.Context, paymentID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		p, err := c.findPayment(ctx, tx, paymentID)
		if err != nil {
			return err
		}
		if err := p.MarkFailed(c.clock.Now()); err != nil {
			return err
		}
		if err := tx.Payments().Update(ctx, p); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (c *paymentCommands) findPayment(ctx context.Context, tx shared.Tx, paymentID uuid.UUID) (*payment.Payment, error) {
	p, err := tx.Payments().FindByID(ctx, paymentID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrPaymentFailed)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return p, nil
}
