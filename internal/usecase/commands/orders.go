package commands

import (
	"context"
	"log/slog"
	"time"

	"partage/internal/domain/order"
	"partage/internal/domain/participant"
	"partage/internal/domain/payment"
	"partage/internal/domain/pricing"
	"partage/internal/infra"
	"partage/internal/pkg/clock"
	"partage/internal/pkg/errs"
	"partage/internal/pkg/shortcode"
	"partage/internal/usecase/shared"

	"github.com/google/uuid"
)

// ProductSelection is one product the sharer puts up in the order.
type ProductSelection struct {
	ProductID uuid.UUID
}

type CreateOrderParams struct {
	OwnerID      uuid.UUID
	ProducerID   uuid.UUID
	Visibility   order.Visibility
	MinWeightKg  float64
	MaxWeightKg  *float64
	SharerPct    int
	DeliveryMode pricing.DeliveryMode
	FlatFeeCents int64
	Flags        order.ParticipantFlags
	AutoApproveParticipants bool
	AutoApprovePickupSlots  bool
	Selections   []ProductSelection
}

type CreateOrderResult struct {
	OrderID uuid.UUID
	Code    string
}

type OrderCommands interface {
	CreateOrder(ctx context.Context, p CreateOrderParams) (*CreateOrderResult, error)
	// Transition drives the lifecycle state machine; actor rules and
	// preconditions are validated server-side against the stored order.
	Transition(ctx context.Context, orderID, actorID uuid.UUID, target order.Status) error
	SetVisibility(ctx context.Context, orderID, actorID uuid.UUID, v order.Visibility, flags order.ParticipantFlags) error
}

type orderCommands struct {
	uow       shared.UnitOfWork
	catalog   shared.Catalog
	publisher shared.EventPublisher
	clock     clock.Clock
}

func NewOrderCommands(uow shared.UnitOfWork, catalog shared.Catalog, publisher shared.EventPublisher, clk clock.Clock) OrderCommands {
	return &orderCommands{
		uow:       uow,
		catalog:   catalog,
		publisher: publisher,
		clock:     clk,
	}
}

func (c *orderCommands) CreateOrder(ctx context.Context, p CreateOrderParams) (*CreateOrderResult, error) {
	if len(p.Selections) == 0 {
		return nil, errs.ErrEmptySelection
	}
	if p.OwnerID == uuid.Nil {
		return nil, errs.ErrMissingActor
	}

	// Catalog lookups happen outside the ledger transaction; an oracle
	// failure aborts creation before anything is written.
	type frozenOffer struct {
		product *shared.ProductSnapshot
		lot     *shared.LotSnapshot
	}
	frozen := make([]frozenOffer, 0, len(p.Selections))
	for _, sel := range p.Selections {
		product, err := c.catalog.Product(ctx, sel.ProductID)
		if err != nil {
			return nil, markCatalogErr(err)
		}
		lot, err := c.catalog.ActiveLot(ctx, sel.ProductID)
		if err != nil {
			return nil, markCatalogErr(err)
		}
		frozen = append(frozen, frozenOffer{product: product, lot: lot})
	}

	now := c.clock.Now()
	o, err := order.NewOrder(order.NewOrderParams{
		Code:         shortcode.NewOrderCode(),
		OwnerID:      p.OwnerID,
		ProducerID:   p.ProducerID,
		Visibility:   p.Visibility,
		MinWeightKg:  p.MinWeightKg,
		MaxWeightKg:  p.MaxWeightKg,
		SharerPct:    p.SharerPct,
		DeliveryMode: p.DeliveryMode,
		FlatFeeCents: p.FlatFeeCents,
		Flags:        p.Flags,
		AutoApproveParticipants: p.AutoApproveParticipants,
		AutoApprovePickupSlots:  p.AutoApprovePickupSlots,
	}, now)
	if err != nil {
		return nil, err
	}

	// Offers freeze the unit breakdown against the creation-time effective
	// weight (= the minimum threshold while nothing is ordered yet).
	effectiveWeight := o.EffectiveWeightKg()
	deliveryTotal := o.DeliveryFeeTotalCents()
	offers := make([]*order.Offer, 0, len(frozen))
	for _, fo := range frozen {
		unitWeight := order.ResolveUnitWeightKg(fo.product.DeclaredUnitWeightKg, fo.product.PackagingLabel, fo.product.CategoryDefaultKg)
		unit, err := pricing.UnitBreakdown(fo.lot.PriceCents, unitWeight, effectiveWeight, deliveryTotal, p.SharerPct)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrDomainValidation)
		}
		offer, err := order.NewOffer(o.ID(), fo.product.ID, fo.lot.ID, fo.product.Name, unitWeight, unit, now)
		if err != nil {
			return nil, err
		}
		offers = append(offers, offer)
	}

	sharer := participant.NewParticipant(o.ID(), &p.OwnerID, participant.RoleSharer, true, shortcode.NewPickupCode(), now)

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Orders().Create(ctx, o); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		for _, offer := range offers {
			if err := tx.Offers().Create(ctx, offer); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		}
		if err := tx.Participants().Create(ctx, sharer); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &CreateOrderResult{OrderID: o.ID(), Code: o.Code()}, nil
}

func (c *orderCommands) Transition(ctx context.Context, orderID, actorID uuid.UUID, target order.Status) error {
	var evt *shared.OrderEvent

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Orders().FindByID(ctx, orderID)
		if err != nil {
			return markOrderLookupErr(err)
		}

		now := c.clock.Now()
		if err := applyTransition(o, target, actorID, now); err != nil {
			return err
		}

		// Entering distribution emits the platform-to-producer invoice; the
		// unique order key makes re-entry a no-op.
		if target == order.StatusDistributed {
			if err := c.emitInvoice(ctx, tx, o, now); err != nil {
				return err
			}
		}

		if err := tx.Orders().Update(ctx, o); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		evt = &shared.OrderEvent{
			OrderID:    o.ID(),
			Code:       o.Code(),
			Status:     o.Status().String(),
			OccurredAt: now,
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Advisory only: a publish failure must never unwind the transition.
	if evt != nil {
		if pubErr := c.publisher.PublishOrderEvent(ctx, *evt); pubErr != nil {
			slog.Warn("failed to publish order event", "order_id", evt.OrderID, "status", evt.Status, "error", pubErr.Error())
		}
	}
	return nil
}

func applyTransition(o *order.Order, target order.Status, actorID uuid.UUID, now time.Time) error {
	switch target {
	case order.StatusOpen:
		return o.Open(actorID, now)
	case order.StatusLocked:
		return o.Lock(actorID, now)
	case order.StatusConfirmed:
		return o.Confirm(actorID, now)
	case order.StatusPreparing:
		return o.StartPreparing(actorID, now)
	case order.StatusPrepared:
		return o.MarkPrepared(actorID, now)
	case order.StatusDelivered:
		return o.MarkDelivered(actorID, now)
	case order.StatusDistributed:
		return o.MarkDistributed(actorID, now)
	case order.StatusFinished:
		return o.Finish(actorID, now)
	case order.StatusCancelled:
		return o.Cancel(actorID, now)
	default:
		return errs.Mark(errs.Newf("unknown target status %q", target), errs.ErrIllegalTransition)
	}
}

func (c *orderCommands) emitInvoice(ctx context.Context, tx shared.Tx, o *order.Order, now time.Time) error {
	totals := o.Totals()
	// The producer is owed goods plus delivery when they arrange transport;
	// with the platform courier the delivery share stays with the platform.
	amount := totals.BaseCents
	if o.DeliveryMode() != pricing.ModeCourier {
		amount += totals.DeliveryCents
	}
	inv := payment.NewInvoice(o.ID(), amount, now)
	if _, err := tx.Invoices().CreateIfAbsent(ctx, inv); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

func (c *orderCommands) SetVisibility(ctx context.Context, orderID, actorID uuid.UUID, v order.Visibility, flags order.ParticipantFlags) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Orders().FindByID(ctx, orderID)
		if err != nil {
			return markOrderLookupErr(err)
		}
		if actorID != o.OwnerID() {
			return errs.Mark(errs.New("only the owner changes visibility"), errs.ErrWrongActor)
		}
		now := c.clock.Now()
		if err := o.SetVisibility(v, now); err != nil {
			return err
		}
		o.SetParticipantFlags(flags, now)
		if err := tx.Orders().Update(ctx, o); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func markOrderLookupErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, errs.ErrOrderNotFound)
	}
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}

func markCatalogErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, errs.ErrProductNotFound)
	}
	return errs.Mark(err, errs.ErrCatalogUnavailable)
}
