//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"partage/internal/domain/order"
	"partage/internal/domain/pricing"
	"partage/internal/infra"
	"partage/internal/infra/memory"
	"partage/internal/pkg/clock"
	"partage/internal/usecase/commands"
	"partage/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

type stubCatalog struct {
	products map[uuid.UUID]*shared.ProductSnapshot
	lots     map[uuid.UUID]*shared.LotSnapshot
	zones    map[uuid.UUID]*shared.ProducerZone
}

func newStubCatalog() *stubCatalog {
	return &stubCatalog{
		products: make(map[uuid.UUID]*shared.ProductSnapshot),
		lots:     make(map[uuid.UUID]*shared.LotSnapshot),
		zones:    make(map[uuid.UUID]*shared.ProducerZone),
	}
}

// addProduct registers a product with an active lot and returns the product ID.
func (s *stubCatalog) addProduct(name string, unitWeightKg float64, priceCents int64, stock int) uuid.UUID {
	productID := uuid.New()
	w := unitWeightKg
	s.products[productID] = &shared.ProductSnapshot{
		ID:                   productID,
		Name:                 name,
		Category:             "vegetables",
		DeclaredUnitWeightKg: &w,
		CategoryDefaultKg:    1,
	}
	s.lots[productID] = &shared.LotSnapshot{
		ID:             uuid.New(),
		ProductID:      productID,
		PriceCents:     priceCents,
		RemainingStock: stock,
	}
	return productID
}

func (s *stubCatalog) Product(_ context.Context, id uuid.UUID) (*shared.ProductSnapshot, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	return p, nil
}

func (s *stubCatalog) ActiveLot(_ context.Context, productID uuid.UUID) (*shared.LotSnapshot, error) {
	l, ok := s.lots[productID]
	if !ok {
		return nil, infra.WrapRepoErr("lot not found", nil, infra.KindNotFound)
	}
	return l, nil
}

func (s *stubCatalog) ProducerZone(_ context.Context, producerID uuid.UUID) (*shared.ProducerZone, error) {
	z, ok := s.zones[producerID]
	if !ok {
		return nil, infra.WrapRepoErr("zone not found", nil, infra.KindNotFound)
	}
	return z, nil
}

type stubGateway struct {
	ref   string
	err   error
	calls int
}

func (g *stubGateway) Charge(_ context.Context, _ shared.ChargeRequest) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.ref, nil
}

type capturePublisher struct {
	mu     sync.Mutex
	events []shared.OrderEvent
}

func (p *capturePublisher) PublishOrderEvent(_ context.Context, evt shared.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

func (p *capturePublisher) published() []shared.OrderEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]shared.OrderEvent(nil), p.events...)
}

type testEnv struct {
	uow       *memory.UnitOfWork
	clock     *clock.MockClock
	catalog   *stubCatalog
	gateway   *stubGateway
	publisher *capturePublisher

	orders        commands.OrderCommands
	lineItems     commands.LineItemCommands
	participation commands.ParticipationCommands
	pickup        commands.PickupCommands
	payments      commands.PaymentCommands
}

func newTestEnv() *testEnv {
	env := &testEnv{
		uow:       memory.NewUnitOfWork(),
		clock:     clock.NewMockClock(baseTime),
		catalog:   newStubCatalog(),
		gateway:   &stubGateway{ref: "ch_test_1"},
		publisher: &capturePublisher{},
	}
	env.orders = commands.NewOrderCommands(env.uow, env.catalog, env.publisher, env.clock)
	env.lineItems = commands.NewLineItemCommands(env.uow, env.catalog, 30*time.Minute, env.clock)
	env.participation = commands.NewParticipationCommands(env.uow, env.clock)
	env.pickup = commands.NewPickupCommands(env.uow, env.clock)
	env.payments = commands.NewPaymentCommands(env.uow, env.gateway, env.clock)
	return env
}

type orderFixture struct {
	OrderID    uuid.UUID
	Code       string
	OwnerID    uuid.UUID
	ProducerID uuid.UUID
	ProductID  uuid.UUID
	OfferID    uuid.UUID
}

// createOpenOrder sets up a single-product order, opens it and returns the
// handles the scenarios need. Stock of 10 units of a 2kg product at 10 euro.
func createOpenOrder(t *testing.T, env *testEnv, mutate func(*commands.CreateOrderParams)) orderFixture {
	t.Helper()
	ctx := context.Background()

	productID := env.catalog.addProduct("Heritage carrots 2kg", 2, 1000, 10)

	params := commands.CreateOrderParams{
		OwnerID:      uuid.New(),
		ProducerID:   uuid.New(),
		Visibility:   order.VisibilityPrivate,
		MinWeightKg:  10,
		SharerPct:    10,
		DeliveryMode: pricing.ModeProducerDelivery,
		FlatFeeCents: 1500,
		Flags:        order.ParticipantFlags{Content: true},
		Selections:   []commands.ProductSelection{{ProductID: productID}},
	}
	if mutate != nil {
		mutate(&params)
	}

	res, err := env.orders.CreateOrder(ctx, params)
	require.NoError(t, err)
	require.NoError(t, env.orders.Transition(ctx, res.OrderID, params.OwnerID, order.StatusOpen))

	var offerID uuid.UUID
	readTx(t, env, func(ctx context.Context, tx shared.Tx) error {
		offers, err := tx.Offers().FindByOrderID(ctx, res.OrderID)
		require.NoError(t, err)
		require.Len(t, offers, 1)
		offerID = offers[0].ID()
		return nil
	})

	return orderFixture{
		OrderID:    res.OrderID,
		Code:       res.Code,
		OwnerID:    params.OwnerID,
		ProducerID: params.ProducerID,
		ProductID:  productID,
		OfferID:    offerID,
	}
}

func readTx(t *testing.T, env *testEnv, fn func(ctx context.Context, tx shared.Tx) error) {
	t.Helper()
	require.NoError(t, env.uow.WithinReadOnly(context.Background(), fn))
}

// walkTo drives the order from open to the given status with the right actor
// at each step.
func walkTo(t *testing.T, env *testEnv, fx orderFixture, target order.Status) {
	t.Helper()
	ctx := context.Background()

	steps := []struct {
		status order.Status
		actor  uuid.UUID
	}{
		{order.StatusLocked, fx.OwnerID},
		{order.StatusConfirmed, fx.ProducerID},
		{order.StatusPreparing, fx.ProducerID},
		{order.StatusPrepared, fx.ProducerID},
		{order.StatusDelivered, fx.OwnerID},
		{order.StatusDistributed, fx.OwnerID},
		{order.StatusFinished, fx.OwnerID},
	}
	for _, step := range steps {
		require.NoError(t, env.orders.Transition(ctx, fx.OrderID, step.actor, step.status))
		if step.status == target {
			return
		}
	}
	t.Fatalf("unreachable target status %s", target)
}
