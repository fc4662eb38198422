//go:build unit

package order_test

import (
	"testing"
	"time"

	"partage/internal/domain/order"
	"partage/internal/pkg/errs"
	"partage/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var transitionNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func openedOrder(t *testing.T, b *builder.OrderBuilder) *order.Order {
	t.Helper()
	o, err := b.BuildDomain()
	require.NoError(t, err)
	require.NoError(t, o.Open(b.OwnerID, transitionNow))
	return o
}

func TestLifecycleHappyPath(t *testing.T) {
	b := builder.NewOrderBuilder().WithMinWeight(0)
	o := openedOrder(t, b)

	require.NoError(t, o.Lock(b.OwnerID, transitionNow))
	require.NoError(t, o.Confirm(b.ProducerID, transitionNow))
	require.NoError(t, o.StartPreparing(b.ProducerID, transitionNow))
	require.NoError(t, o.MarkPrepared(b.ProducerID, transitionNow))
	require.NoError(t, o.MarkDelivered(b.OwnerID, transitionNow))
	require.NoError(t, o.MarkDistributed(b.OwnerID, transitionNow))
	require.NoError(t, o.Finish(b.OwnerID, transitionNow))

	assert.Equal(t, order.StatusFinished, o.Status())
	assert.True(t, o.Status().IsTerminal())
}

func TestTransitionActorRules(t *testing.T) {
	t.Run("producer cannot open", func(t *testing.T) {
		b := builder.NewOrderBuilder()
		o, err := b.BuildDomain()
		require.NoError(t, err)

		err = o.Open(b.ProducerID, transitionNow)
		assert.ErrorIs(t, err, errs.ErrWrongActor)
		assert.Equal(t, order.StatusDraft, o.Status())
	})

	t.Run("owner cannot confirm", func(t *testing.T) {
		b := builder.NewOrderBuilder().WithMinWeight(0)
		o := openedOrder(t, b)
		require.NoError(t, o.Lock(b.OwnerID, transitionNow))

		err := o.Confirm(b.OwnerID, transitionNow)
		assert.ErrorIs(t, err, errs.ErrWrongActor)
		assert.Equal(t, order.StatusLocked, o.Status())
	})

	t.Run("stranger cannot transition at all", func(t *testing.T) {
		b := builder.NewOrderBuilder()
		o, err := b.BuildDomain()
		require.NoError(t, err)

		assert.ErrorIs(t, o.Open(uuid.New(), transitionNow), errs.ErrWrongActor)
	})

	t.Run("nil actor is rejected before state checks", func(t *testing.T) {
		b := builder.NewOrderBuilder()
		o, err := b.BuildDomain()
		require.NoError(t, err)

		assert.ErrorIs(t, o.Open(uuid.Nil, transitionNow), errs.ErrMissingActor)
	})
}

func TestTransitionOrderingRules(t *testing.T) {
	t.Run("states cannot be skipped", func(t *testing.T) {
		b := builder.NewOrderBuilder()
		o := openedOrder(t, b)

		err := o.MarkDelivered(b.OwnerID, transitionNow)
		assert.ErrorIs(t, err, errs.ErrIllegalTransition)
		assert.Equal(t, order.StatusOpen, o.Status())
	})

	t.Run("no transition leaves a terminal state", func(t *testing.T) {
		b := builder.NewOrderBuilder()
		o := openedOrder(t, b)
		require.NoError(t, o.Cancel(b.OwnerID, transitionNow))

		assert.ErrorIs(t, o.Lock(b.OwnerID, transitionNow), errs.ErrIllegalTransition)
	})
}

func TestLockMinWeightPrecondition(t *testing.T) {
	t.Run("below minimum is rejected and status unchanged", func(t *testing.T) {
		b := builder.NewOrderBuilder().WithMinWeight(10)
		o := openedOrder(t, b)

		err := o.Lock(b.OwnerID, transitionNow)
		assert.ErrorIs(t, err, errs.ErrMinWeightNotReached)
		assert.Equal(t, order.StatusOpen, o.Status())
	})

	t.Run("threshold reached allows locking", func(t *testing.T) {
		b := builder.NewOrderBuilder().WithMinWeight(10)
		o := openedOrder(t, b)
		o.ApplyTotals(order.Totals{OrderedWeightKg: 10}, transitionNow)

		assert.NoError(t, o.Lock(b.OwnerID, transitionNow))
		assert.Equal(t, order.StatusLocked, o.Status())
	})
}

func TestCancel(t *testing.T) {
	t.Run("owner cancels from any live state", func(t *testing.T) {
		b := builder.NewOrderBuilder().WithMinWeight(0)
		o := openedOrder(t, b)
		require.NoError(t, o.Lock(b.OwnerID, transitionNow))
		require.NoError(t, o.Confirm(b.ProducerID, transitionNow))

		require.NoError(t, o.Cancel(b.OwnerID, transitionNow))
		assert.Equal(t, order.StatusCancelled, o.Status())
	})

	t.Run("producer cannot cancel", func(t *testing.T) {
		b := builder.NewOrderBuilder()
		o := openedOrder(t, b)

		assert.ErrorIs(t, o.Cancel(b.ProducerID, transitionNow), errs.ErrWrongActor)
	})

	t.Run("finished order cannot be cancelled", func(t *testing.T) {
		b := builder.NewOrderBuilder().WithMinWeight(0)
		o := openedOrder(t, b)
		require.NoError(t, o.Lock(b.OwnerID, transitionNow))
		require.NoError(t, o.Confirm(b.ProducerID, transitionNow))
		require.NoError(t, o.StartPreparing(b.ProducerID, transitionNow))
		require.NoError(t, o.MarkPrepared(b.ProducerID, transitionNow))
		require.NoError(t, o.MarkDelivered(b.OwnerID, transitionNow))
		require.NoError(t, o.MarkDistributed(b.OwnerID, transitionNow))
		require.NoError(t, o.Finish(b.OwnerID, transitionNow))

		assert.ErrorIs(t, o.Cancel(b.OwnerID, transitionNow), errs.ErrIllegalTransition)
	})
}

func TestEffectiveWeightClamping(t *testing.T) {
	t.Run("clamps up to minimum", func(t *testing.T) {
		b := builder.NewOrderBuilder().WithMinWeight(10)
		o, err := b.BuildDomain()
		require.NoError(t, err)
		o.ApplyTotals(order.Totals{OrderedWeightKg: 4}, transitionNow)

		assert.InDelta(t, 10.0, o.EffectiveWeightKg(), 1e-9)
	})

	t.Run("clamps down to maximum", func(t *testing.T) {
		b := builder.NewOrderBuilder().WithMinWeight(10).WithMaxWeight(20)
		o, err := b.BuildDomain()
		require.NoError(t, err)
		o.ApplyTotals(order.Totals{OrderedWeightKg: 35}, transitionNow)

		assert.InDelta(t, 20.0, o.EffectiveWeightKg(), 1e-9)
	})

	t.Run("within range passes through", func(t *testing.T) {
		b := builder.NewOrderBuilder().WithMinWeight(10).WithMaxWeight(20)
		o, err := b.BuildDomain()
		require.NoError(t, err)
		o.ApplyTotals(order.Totals{OrderedWeightKg: 15}, transitionNow)

		assert.InDelta(t, 15.0, o.EffectiveWeightKg(), 1e-9)
	})
}
