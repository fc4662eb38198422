//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"partage/internal/domain/payment"
	"partage/internal/domain/reservation"
	"partage/internal/pkg/errs"
	"partage/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("charges the cached participant total", func(t *testing.T) {
		env := newTestEnv()
		fx := createOpenOrder(t, env, nil)

		_, err := env.lineItems.AddLineItem(ctx, fx.OrderID, fx.OwnerID, fx.OfferID, 3)
		require.NoError(t, err)

		payID, err := env.payments.StartPayment(ctx, fx.OrderID, fx.OwnerID)
		require.NoError(t, err)
		assert.Equal(t, 1, env.gateway.calls)

		readTx(t, env, func(ctx context.Context, tx shared.Tx) error {
			p, err := tx.Payments().FindByID(ctx, payID)
			require.NoError(t, err)
			assert.Equal(t, payment.StatusPending, p.Status())
			assert.Equal(t, int64(4332), p.AmountCents())
			require.NotNil(t, p.ExternalRef())
			assert.Equal(t, "ch_test_1", *p.ExternalRef())
			return nil
		})
	})

	t.Run("gateway failure records a failed payment", func(t *testing.T) {
		env := newTestEnv()
		env.gateway.err = errors.New("card declined")
		fx := createOpenOrder(t, env, nil)

		_, err := env.lineItems.AddLineItem(ctx, fx.OrderID, fx.OwnerID, fx.OfferID, 3)
		require.NoError(t, err)

		_, err = env.payments.StartPayment(ctx, fx.OrderID, fx.OwnerID)
		assert.ErrorIs(t, err, errs.ErrPaymentFailed)
	})

	t.Run("zero balance cannot be charged", func(t *testing.T) {
		env := newTestEnv()
		fx := createOpenOrder(t, env, nil)

		_, err := env.payments.StartPayment(ctx, fx.OrderID, fx.OwnerID)
		assert.ErrorIs(t, err, payment.ErrInvalidAmount)
		assert.Zero(t, env.gateway.calls)
	})

	t.Run("non-participants cannot pay", func(t *testing.T) {
		env := newTestEnv()
		fx := createOpenOrder(t, env, nil)

		_, err := env.payments.StartPayment(ctx, fx.OrderID, uuid.New())
		assert.ErrorIs(t, err, errs.ErrParticipantNotFound)
	})
}

func TestConfirmPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("settles and consumes the participant's holds", func(t *testing.T) {
		env := newTestEnv()
		fx := createOpenOrder(t, env, nil)

		itemID, err := env.lineItems.AddLineItem(ctx, fx.OrderID, fx.OwnerID, fx.OfferID, 3)
		require.NoError(t, err)
		payID, err := env.payments.StartPayment(ctx, fx.OrderID, fx.OwnerID)
		require.NoError(t, err)

		require.NoError(t, env.payments.ConfirmPayment(ctx, payID))

		readTx(t, env, func(ctx context.Context, tx shared.Tx) error {
			p, err := tx.Payments().FindByID(ctx, payID)
			require.NoError(t, err)
			assert.Equal(t, payment.StatusPaid, p.Status())

			hold, err := tx.Reservations().FindByLineItemID(ctx, itemID)
			require.NoError(t, err)
			assert.Equal(t, reservation.StatusConsumed, hold.Status())
			return nil
		})
	})

	t.Run("double confirmation fails", func(t *testing.T) {
		env := newTestEnv()
		fx := createOpenOrder(t, env, nil)

		_, err := env.lineItems.AddLineItem(ctx, fx.OrderID, fx.OwnerID, fx.OfferID, 3)
		require.NoError(t, err)
		payID, err := env.payments.StartPayment(ctx, fx.OrderID, fx.OwnerID)
		require.NoError(t, err)

		require.NoError(t, env.payments.ConfirmPayment(ctx, payID))
		assert.ErrorIs(t, env.payments.ConfirmPayment(ctx, payID), payment.ErrNotPending)
	})

	t.Run("unknown payment fails", func(t *testing.T) {
		env := newTestEnv()
		assert.ErrorIs(t, env.payments.ConfirmPayment(ctx, uuid.New()), errs.ErrPaymentFailed)
	})
}

func TestFailPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("marks a pending payment failed", func(t *testing.T) {
		env := newTestEnv()
		fx := createOpenOrder(t, env, nil)

		itemID, err := env.lineItems.AddLineItem(ctx, fx.OrderID, fx.OwnerID, fx.OfferID, 3)
		require.NoError(t, err)
		payID, err := env.payments.StartPayment(ctx, fx.OrderID, fx.OwnerID)
		require.NoError(t, err)

		require.NoError(t, env.payments.FailPayment(ctx, payID))

		readTx(t, env, func(ctx context.Context, tx shared.Tx) error {
			p, err := tx.Payments().FindByID(ctx, payID)
			require.NoError(t, err)
			assert.Equal(t, payment.StatusFailed, p.Status())

			// Failure leaves the hold in place; it simply expires later.
			hold, err := tx.Reservations().FindByLineItemID(ctx, itemID)
			require.NoError(t, err)
			assert.Equal(t, reservation.StatusActive, hold.Status())
			return nil
		})
	})
}
