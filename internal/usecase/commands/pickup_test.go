//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"partage/internal/domain/order"
	"partage/internal/domain/participant"
	"partage/internal/pkg/errs"
	"partage/internal/usecase/commands"
	"partage/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createSlot(t *testing.T, env *testEnv, fx orderFixture, enabled bool) uuid.UUID {
	t.Helper()
	wednesday := time.Wednesday
	slotID, err := env.pickup.CreatePickupSlot(context.Background(), commands.CreatePickupSlotParams{
		OrderID: fx.OrderID,
		ActorID: fx.OwnerID,
		Weekday: &wednesday,
		Start:   "17:00",
		End:     "19:00",
		Enabled: enabled,
	})
	require.NoError(t, err)
	return slotID
}

// deliveredOrder walks a fixture to delivered so slot selection is allowed.
func deliveredOrder(t *testing.T, env *testEnv, mutate func(*commands.CreateOrderParams)) orderFixture {
	t.Helper()
	fx := createOpenOrder(t, env, mutate)
	_, err := env.lineItems.AddLineItem(context.Background(), fx.OrderID, fx.OwnerID, fx.OfferID, 5)
	require.NoError(t, err)
	walkTo(t, env, fx, order.StatusDelivered)
	return fx
}

func TestCreatePickupSlot(t *testing.T) {
	ctx := context.Background()

	t.Run("owner creates a weekday slot", func(t *testing.T) {
		env := newTestEnv()
		fx := createOpenOrder(t, env, nil)

		slotID := createSlot(t, env, fx, true)

		readTx(t, env, func(ctx context.Context, tx shared.Tx) error {
			slot, err := tx.PickupSlots().FindByID(ctx, slotID)
			require.NoError(t, err)
			assert.Equal(t, fx.OrderID, slot.OrderID())
			assert.True(t, slot.Enabled())
			return nil
		})
	})

	t.Run("only the owner manages slots", func(t *testing.T) {
		env := newTestEnv()
		fx := createOpenOrder(t, env, nil)
		wednesday := time.Wednesday

		_, err := env.pickup.CreatePickupSlot(ctx, commands.CreatePickupSlotParams{
			OrderID: fx.OrderID,
			ActorID: fx.ProducerID,
			Weekday: &wednesday,
			Start:   "17:00",
			End:     "19:00",
		})
		assert.ErrorIs(t, err, errs.ErrWrongActor)
	})
}

func TestSelectPickupSlot(t *testing.T) {
	ctx := context.Background()

	t.Run("selection requires receivable goods", func(t *testing.T) {
		env := newTestEnv()
		fx := createOpenOrder(t, env, nil)
		slotID := createSlot(t, env, fx, true)

		err := env.pickup.SelectPickupSlot(ctx, fx.OrderID, fx.OwnerID, slotID)
		assert.ErrorIs(t, err, errs.ErrOrderNotReceivable)
	})

	t.Run("selection after delivery goes to pending approval", func(t *testing.T) {
		env := newTestEnv()
		fx := deliveredOrder(t, env, nil)
		slotID := createSlot(t, env, fx, true)

		require.NoError(t, env.pickup.SelectPickupSlot(ctx, fx.OrderID, fx.OwnerID, slotID))

		readTx(t, env, func(ctx context.Context, tx shared.Tx) error {
			member, err := tx.Participants().FindByOrderAndProfile(ctx, fx.OrderID, fx.OwnerID)
			require.NoError(t, err)
			require.NotNil(t, member.PickupSlotID())
			assert.Equal(t, slotID, *member.PickupSlotID())
			assert.Equal(t, participant.SlotRequested, member.PickupSlotStatus())
			return nil
		})
	})

	t.Run("auto-approve accepts the slot directly", func(t *testing.T) {
		env := newTestEnv()
		fx := deliveredOrder(t, env, func(p *commands.CreateOrderParams) {
			p.AutoApprovePickupSlots = true
		})
		slotID := createSlot(t, env, fx, true)

		require.NoError(t, env.pickup.SelectPickupSlot(ctx, fx.OrderID, fx.OwnerID, slotID))

		readTx(t, env, func(ctx context.Context, tx shared.Tx) error {
			member, err := tx.Participants().FindByOrderAndProfile(ctx, fx.OrderID, fx.OwnerID)
			require.NoError(t, err)
			assert.Equal(t, participant.SlotAccepted, member.PickupSlotStatus())
			return nil
		})
	})

	t.Run("disabled slot cannot be selected", func(t *testing.T) {
		env := newTestEnv()
		fx := deliveredOrder(t, env, nil)
		slotID := createSlot(t, env, fx, false)

		err := env.pickup.SelectPickupSlot(ctx, fx.OrderID, fx.OwnerID, slotID)
		assert.ErrorIs(t, err, participant.ErrSlotDisabled)
	})

	t.Run("slot of another order is not found", func(t *testing.T) {
		env := newTestEnv()
		fx := deliveredOrder(t, env, nil)
		other := createOpenOrder(t, env, nil)
		foreign := createSlot(t, env, other, true)

		err := env.pickup.SelectPickupSlot(ctx, fx.OrderID, fx.OwnerID, foreign)
		assert.ErrorIs(t, err, errs.ErrPickupSlotNotFound)
	})
}

func TestApprovePickupSlot(t *testing.T) {
	ctx := context.Background()

	t.Run("owner approves a requested slot", func(t *testing.T) {
		env := newTestEnv()
		fx := deliveredOrder(t, env, nil)
		slotID := createSlot(t, env, fx, true)
		require.NoError(t, env.pickup.SelectPickupSlot(ctx, fx.OrderID, fx.OwnerID, slotID))

		var memberID uuid.UUID
		readTx(t, env, func(ctx context.Context, tx shared.Tx) error {
			member, err := tx.Participants().FindByOrderAndProfile(ctx, fx.OrderID, fx.OwnerID)
			require.NoError(t, err)
			memberID = member.ID()
			return nil
		})

		require.NoError(t, env.pickup.ApprovePickupSlot(ctx, fx.OrderID, fx.OwnerID, memberID))

		readTx(t, env, func(ctx context.Context, tx shared.Tx) error {
			member, err := tx.Participants().FindByID(ctx, memberID)
			require.NoError(t, err)
			assert.Equal(t, participant.SlotAccepted, member.PickupSlotStatus())
			return nil
		})
	})

	t.Run("disabling a slot blocks later selections", func(t *testing.T) {
		env := newTestEnv()
		fx := deliveredOrder(t, env, nil)
		slotID := createSlot(t, env, fx, true)

		require.NoError(t, env.pickup.SetPickupSlotEnabled(ctx, fx.OrderID, fx.OwnerID, slotID, false))

		err := env.pickup.SelectPickupSlot(ctx, fx.OrderID, fx.OwnerID, slotID)
		assert.ErrorIs(t, err, participant.ErrSlotDisabled)
	})
}
