//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"partage/internal/domain/order"
	"partage/internal/domain/participant"
	"partage/internal/domain/pricing"
	"partage/internal/domain/profile"
	"partage/internal/infra/memory"
	"partage/internal/pkg/errs"
	"partage/internal/usecase/queries"
	"partage/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seedTime = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

type viewFixture struct {
	uow     *memory.UnitOfWork
	queries queries.OrderQueries

	orderID   uuid.UUID
	code      string
	ownerID   uuid.UUID
	producer  uuid.UUID
	joinerID  uuid.UUID
	sharerRow uuid.UUID
	joinerRow uuid.UUID
}

// seedViewFixture stores an order with two accepted participants, one line
// item each, and display names backing the profile flag. The offer carries a
// base-only unit price so the expected amounts stay round.
func seedViewFixture(t *testing.T, visibility order.Visibility, flags order.ParticipantFlags) *viewFixture {
	t.Helper()

	fx := &viewFixture{
		uow:      memory.NewUnitOfWork(),
		ownerID:  uuid.New(),
		producer: uuid.New(),
		joinerID: uuid.New(),
	}
	fx.queries = queries.NewOrderQueries(fx.uow)

	o, err := order.NewOrder(order.NewOrderParams{
		Code:         "VIEWTEST",
		OwnerID:      fx.ownerID,
		ProducerID:   fx.producer,
		Visibility:   visibility,
		MinWeightKg:  10,
		SharerPct:    10,
		DeliveryMode: pricing.ModeProducerDelivery,
		FlatFeeCents: 1500,
		Flags:        flags,
	}, seedTime)
	require.NoError(t, err)
	fx.orderID = o.ID()
	fx.code = o.Code()

	unit := pricing.UnitPrice{BaseCents: 1000, FinalCents: 1000}
	offer, err := order.NewOffer(o.ID(), uuid.New(), uuid.New(), "Carrots 2kg", 2, unit, seedTime)
	require.NoError(t, err)

	sharer := participant.NewParticipant(o.ID(), &fx.ownerID, participant.RoleSharer, false, "OWNER1", seedTime)
	joiner := participant.NewParticipant(o.ID(), &fx.joinerID, participant.RoleParticipant, true, "JOINR1", seedTime)
	fx.sharerRow = sharer.ID()
	fx.joinerRow = joiner.ID()

	li1, err := order.NewLineItem(offer, sharer.ID(), 2, seedTime)
	require.NoError(t, err)
	li2, err := order.NewLineItem(offer, joiner.ID(), 1, seedTime)
	require.NoError(t, err)

	ledger := order.RecomputeLedger([]*order.LineItem{li1, li2})
	o.ApplyTotals(ledger.Order, seedTime)
	st := ledger.Participant[sharer.ID()]
	sharer.ApplyTotals(st.WeightKg, st.AmountCents, seedTime)
	jt := ledger.Participant[joiner.ID()]
	joiner.ApplyTotals(jt.WeightKg, jt.AmountCents, seedTime)

	ownerProfile := profile.ReconstructProfile(fx.ownerID, "marie@example.test", "x", "Marie the Sharer", profile.RoleMember, seedTime)
	joinerProfile := profile.ReconstructProfile(fx.joinerID, "paul@example.test", "x", "Paul the Joiner", profile.RoleMember, seedTime)

	require.NoError(t, fx.uow.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		require.NoError(t, tx.Orders().Create(ctx, o))
		require.NoError(t, tx.Offers().Create(ctx, offer))
		require.NoError(t, tx.Participants().Create(ctx, sharer))
		require.NoError(t, tx.Participants().Create(ctx, joiner))
		require.NoError(t, tx.LineItems().Create(ctx, li1))
		require.NoError(t, tx.LineItems().Create(ctx, li2))
		require.NoError(t, tx.Profiles().Create(ctx, ownerProfile))
		require.NoError(t, tx.Profiles().Create(ctx, joinerProfile))
		return nil
	}))

	return fx
}

func rowByID(t *testing.T, view *queries.OrderView, rowID uuid.UUID) queries.ParticipantView {
	t.Helper()
	for _, pv := range view.Participants {
		if pv.ID == rowID {
			return pv
		}
	}
	t.Fatalf("participant row %s not in view", rowID)
	return queries.ParticipantView{}
}

func TestGetOrderRedaction(t *testing.T) {
	ctx := context.Background()
	storedFlags := order.ParticipantFlags{Profile: true, Content: true}

	t.Run("owner sees every field and every pickup code", func(t *testing.T) {
		fx := seedViewFixture(t, order.VisibilityPrivate, storedFlags)

		view, err := fx.queries.GetOrder(ctx, fx.orderID, fx.ownerID)
		require.NoError(t, err)

		row := rowByID(t, view, fx.joinerRow)
		require.NotNil(t, row.DisplayName)
		assert.Equal(t, "Paul the Joiner", *row.DisplayName)
		require.NotNil(t, row.TotalAmountCents)
		assert.Equal(t, int64(1000), *row.TotalAmountCents)
		assert.Len(t, row.Items, 1)
		require.NotNil(t, row.PickupCode)
		assert.Equal(t, "JOINR1", *row.PickupCode)
	})

	t.Run("producer sees amounts but never identities or codes", func(t *testing.T) {
		fx := seedViewFixture(t, order.VisibilityPrivate, storedFlags)

		view, err := fx.queries.GetOrder(ctx, fx.orderID, fx.producer)
		require.NoError(t, err)

		row := rowByID(t, view, fx.joinerRow)
		assert.Nil(t, row.DisplayName)
		assert.NotNil(t, row.TotalAmountCents)
		assert.NotNil(t, row.TotalWeightKg)
		assert.Nil(t, row.PickupCode)
	})

	t.Run("participant sees own code but not the sharer's", func(t *testing.T) {
		fx := seedViewFixture(t, order.VisibilityPrivate, storedFlags)

		view, err := fx.queries.GetOrder(ctx, fx.orderID, fx.joinerID)
		require.NoError(t, err)

		own := rowByID(t, view, fx.joinerRow)
		require.NotNil(t, own.PickupCode)
		assert.Equal(t, "JOINR1", *own.PickupCode)

		sharer := rowByID(t, view, fx.sharerRow)
		assert.Nil(t, sharer.PickupCode)
	})

	t.Run("stored flags gate third-party fields on a private order", func(t *testing.T) {
		fx := seedViewFixture(t, order.VisibilityPrivate, storedFlags)

		view, err := fx.queries.GetOrder(ctx, fx.orderID, fx.joinerID)
		require.NoError(t, err)

		sharer := rowByID(t, view, fx.sharerRow)
		require.NotNil(t, sharer.DisplayName)
		assert.Equal(t, "Marie the Sharer", *sharer.DisplayName)
		assert.Nil(t, sharer.TotalWeightKg)
		assert.Nil(t, sharer.TotalAmountCents)
		assert.Len(t, sharer.Items, 1)
	})

	t.Run("public order hides identities from third parties", func(t *testing.T) {
		fx := seedViewFixture(t, order.VisibilityPublic, storedFlags)

		view, err := fx.queries.GetOrder(ctx, fx.orderID, fx.joinerID)
		require.NoError(t, err)

		sharer := rowByID(t, view, fx.sharerRow)
		assert.Nil(t, sharer.DisplayName)
	})

	t.Run("content flag off hides items and slot choice", func(t *testing.T) {
		fx := seedViewFixture(t, order.VisibilityPrivate, order.ParticipantFlags{Profile: true})

		view, err := fx.queries.GetOrder(ctx, fx.orderID, fx.joinerID)
		require.NoError(t, err)

		sharer := rowByID(t, view, fx.sharerRow)
		assert.Empty(t, sharer.Items)
		assert.Nil(t, sharer.PickupSlotID)
	})
}

func TestGetOrderProjection(t *testing.T) {
	ctx := context.Background()

	t.Run("totals and derived fields are projected", func(t *testing.T) {
		fx := seedViewFixture(t, order.VisibilityPrivate, order.ParticipantFlags{})

		view, err := fx.queries.GetOrder(ctx, fx.orderID, fx.ownerID)
		require.NoError(t, err)

		// 3 units x 2kg, clamped up to the 10kg minimum.
		assert.InDelta(t, 6.0, view.OrderedWeightKg, 1e-9)
		assert.InDelta(t, 10.0, view.EffectiveWeightKg, 1e-9)
		assert.Equal(t, int64(3000), view.BaseCents)
		assert.Equal(t, int64(1500), view.DeliveryFeeTotalCents)
		require.Len(t, view.Offers, 1)
		assert.Equal(t, "Carrots 2kg", view.Offers[0].Name)
		assert.Equal(t, int64(1000), view.Offers[0].BaseCents)
	})

	t.Run("short code resolves the same view", func(t *testing.T) {
		fx := seedViewFixture(t, order.VisibilityPrivate, order.ParticipantFlags{})

		byID, err := fx.queries.GetOrder(ctx, fx.orderID, fx.ownerID)
		require.NoError(t, err)
		byCode, err := fx.queries.GetOrderByCode(ctx, fx.code, fx.ownerID)
		require.NoError(t, err)

		assert.Equal(t, byID.ID, byCode.ID)
	})

	t.Run("unknown order is not found", func(t *testing.T) {
		fx := seedViewFixture(t, order.VisibilityPrivate, order.ParticipantFlags{})

		_, err := fx.queries.GetOrder(ctx, uuid.New(), fx.ownerID)
		assert.ErrorIs(t, err, errs.ErrOrderNotFound)
	})
}
