//go:build unit

package commands_test

import (
	"context"
	"testing"

	"partage/internal/domain/order"
	"partage/internal/domain/participant"
	"partage/internal/pkg/errs"
	"partage/internal/usecase/commands"
	"partage/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findParticipant(t *testing.T, env *testEnv, orderID, participantID uuid.UUID) *participant.Participant {
	t.Helper()
	var p *participant.Participant
	readTx(t, env, func(ctx context.Context, tx shared.Tx) error {
		var err error
		p, err = tx.Participants().FindByID(ctx, participantID)
		require.NoError(t, err)
		require.Equal(t, orderID, p.OrderID())
		return nil
	})
	return p
}

func TestRequestParticipation(t *testing.T) {
	ctx := context.Background()

	t.Run("join request is pending by default", func(t *testing.T) {
		env := newTestEnv()
		fx := createOpenOrder(t, env, nil)

		joiner := uuid.New()
		pid, err := env.participation.RequestParticipation(ctx, fx.OrderID, joiner)
		require.NoError(t, err)

		p := findParticipant(t, env, fx.OrderID, pid)
		assert.Equal(t, participant.StatusRequested, p.Status())
		assert.Nil(t, p.PickupCode())
	})

	t.Run("auto-approve accepts and issues a code", func(t *testing.T) {
		env := newTestEnv()
		fx := createOpenOrder(t, env, func(p *commands.CreateOrderParams) {
			p.AutoApproveParticipants = true
		})

		pid, err := env.participation.RequestParticipation(ctx, fx.OrderID, uuid.New())
		require.NoError(t, err)

		p := findParticipant(t, env, fx.OrderID, pid)
		assert.True(t, p.IsAccepted())
		assert.NotNil(t, p.PickupCode())
	})

	t.Run("repeat request reuses the row", func(t *testing.T) {
		env := newTestEnv()
		fx := createOpenOrder(t, env, nil)
		joiner := uuid.New()

		first, err := env.participation.RequestParticipation(ctx, fx.OrderID, joiner)
		require.NoError(t, err)
		second, err := env.participation.RequestParticipation(ctx, fx.OrderID, joiner)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("re-request after approval keeps the accepted state", func(t *testing.T) {
		env := newTestEnv()
		fx := createOpenOrder(t, env, nil)
		joiner := uuid.New()

		pid, err := env.participation.RequestParticipation(ctx, fx.OrderID, joiner)
		require.NoError(t, err)
		require.NoError(t, env.participation.ApproveParticipation(ctx, fx.OrderID, fx.OwnerID, pid))

		codeBefore := *findParticipant(t, env, fx.OrderID, pid).PickupCode()

		_, err = env.participation.RequestParticipation(ctx, fx.OrderID, joiner)
		require.NoError(t, err)

		p := findParticipant(t, env, fx.OrderID, pid)
		assert.True(t, p.IsAccepted())
		assert.Equal(t, codeBefore, *p.PickupCode())
	})

	t.Run("closed order refuses join requests", func(t *testing.T) {
		env := newTestEnv()
		fx := createOpenOrder(t, env, nil)
		_, err := env.lineItems.AddLineItem(ctx, fx.OrderID, fx.OwnerID, fx.OfferID, 5)
		require.NoError(t, err)
		walkTo(t, env, fx, order.StatusLocked)

		_, err = env.participation.RequestParticipation(ctx, fx.OrderID, uuid.New())
		assert.ErrorIs(t, err, errs.ErrIllegalTransition)
	})
}

func TestResolveParticipation(t *testing.T) {
	ctx := context.Background()

	t.Run("only the owner decides", func(t *testing.T) {
		env := newTestEnv()
		fx := createOpenOrder(t, env, nil)

		pid, err := env.participation.RequestParticipation(ctx, fx.OrderID, uuid.New())
		require.NoError(t, err)

		err = env.participation.ApproveParticipation(ctx, fx.OrderID, fx.ProducerID, pid)
		assert.ErrorIs(t, err, errs.ErrWrongActor)
	})

	t.Run("approval issues the pickup code", func(t *testing.T) {
		env := newTestEnv()
		fx := createOpenOrder(t, env, nil)

		pid, err := env.participation.RequestParticipation(ctx, fx.OrderID, uuid.New())
		require.NoError(t, err)
		require.NoError(t, env.participation.ApproveParticipation(ctx, fx.OrderID, fx.OwnerID, pid))

		p := findParticipant(t, env, fx.OrderID, pid)
		assert.True(t, p.IsAccepted())
		require.NotNil(t, p.PickupCode())
		assert.Len(t, *p.PickupCode(), 6)
	})

	t.Run("double approval fails", func(t *testing.T) {
		env := newTestEnv()
		fx := createOpenOrder(t, env, nil)

		pid, err := env.participation.RequestParticipation(ctx, fx.OrderID, uuid.New())
		require.NoError(t, err)
		require.NoError(t, env.participation.ApproveParticipation(ctx, fx.OrderID, fx.OwnerID, pid))

		err = env.participation.ApproveParticipation(ctx, fx.OrderID, fx.OwnerID, pid)
		assert.ErrorIs(t, err, participant.ErrAlreadyAccepted)
	})

	t.Run("reject and remove", func(t *testing.T) {
		env := newTestEnv()
		fx := createOpenOrder(t, env, nil)

		pid, err := env.participation.RequestParticipation(ctx, fx.OrderID, uuid.New())
		require.NoError(t, err)
		require.NoError(t, env.participation.RejectParticipation(ctx, fx.OrderID, fx.OwnerID, pid))
		assert.Equal(t, participant.StatusRejected, findParticipant(t, env, fx.OrderID, pid).Status())

		require.NoError(t, env.participation.RemoveParticipation(ctx, fx.OrderID, fx.OwnerID, pid))
		assert.Equal(t, participant.StatusRemoved, findParticipant(t, env, fx.OrderID, pid).Status())
	})

	t.Run("participant of another order is not found", func(t *testing.T) {
		env := newTestEnv()
		fx := createOpenOrder(t, env, nil)
		other := createOpenOrder(t, env, nil)

		pid, err := env.participation.RequestParticipation(ctx, other.OrderID, uuid.New())
		require.NoError(t, err)

		err = env.participation.ApproveParticipation(ctx, fx.OrderID, fx.OwnerID, pid)
		assert.ErrorIs(t, err, errs.ErrParticipantNotFound)
	})
}
