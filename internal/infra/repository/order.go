package repository

import (
	"context"
	"time"

	"partage/internal/domain/order"
	"partage/internal/domain/pricing"
	"partage/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type OrderRepository struct {
	db DBTX
}

func NewOrderRepository(db DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

var _ shared.OrderRepository = (*OrderRepository)(nil)

const orderColumns = `
	id, code, owner_id, producer_id, status, visibility,
	min_weight_kg, max_weight_kg, sharer_pct, delivery_mode, flat_fee_cents,
	ordered_weight_kg, base_cents, delivery_cents, sharer_cents, participant_total_cents,
	flag_profile, flag_content, flag_weight, flag_amount,
	auto_approve_participants, auto_approve_pickup_slots,
	created_at, updated_at`

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	flags := o.ParticipantFlagsStored()
	totals := o.Totals()
	_, err := r.db.Exec(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
		        $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)`,
		o.ID(), o.Code(), o.OwnerID(), o.ProducerID(), string(o.Status()), string(o.Visibility()),
		o.MinWeightKg(), o.MaxWeightKg(), o.SharerPct(), string(o.DeliveryMode()), o.FlatFeeCents(),
		totals.OrderedWeightKg, totals.BaseCents, totals.DeliveryCents, totals.SharerCents, totals.ParticipantTotalCents,
		flags.Profile, flags.Content, flags.Weight, flags.Amount,
		o.AutoApproveParticipants(), o.AutoApprovePickupSlots(),
		o.CreatedAt(), o.UpdatedAt(),
	)
	if err != nil {
		return wrapPgErr("failed to create order", err)
	}
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	row := r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	return scanOrder(row)
}

func (r *OrderRepository) FindByCode(ctx context.Context, code string) (*order.Order, error) {
	row := r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE code = $1`, code)
	return scanOrder(row)
}

func (r *OrderRepository) Update(ctx context.Context, o *order.Order) error {
	flags := o.ParticipantFlagsStored()
	totals := o.Totals()
	tag, err := r.db.Exec(ctx, `
		UPDATE orders SET
			status = $2, visibility = $3,
			ordered_weight_kg = $4, base_cents = $5, delivery_cents = $6,
			sharer_cents = $7, participant_total_cents = $8,
			flag_profile = $9, flag_content = $10, flag_weight = $11, flag_amount = $12,
			updated_at = $13
		WHERE id = $1`,
		o.ID(), string(o.Status()), string(o.Visibility()),
		totals.OrderedWeightKg, totals.BaseCents, totals.DeliveryCents,
		totals.SharerCents, totals.ParticipantTotalCents,
		flags.Profile, flags.Content, flags.Weight, flags.Amount,
		o.UpdatedAt(),
	)
	if err != nil {
		return wrapPgErr("failed to update order", err)
	}
	if tag.RowsAffected() == 0 {
		return wrapPgErr("order disappeared during update", pgx.ErrNoRows)
	}
	return nil
}

func scanOrder(row pgx.Row) (*order.Order, error) {
	var (
		id, ownerID, producerID  uuid.UUID
		code, status, visibility string
		minWeight                float64
		maxWeight                *float64
		sharerPct                int
		deliveryMode             string
		flatFee                  int64
		totals                   order.Totals
		flags                    order.ParticipantFlags
		autoParticipants         bool
		autoSlots                bool
		createdAt, updatedAt     time.Time
	)
	err := row.Scan(
		&id, &code, &ownerID, &producerID, &status, &visibility,
		&minWeight, &maxWeight, &sharerPct, &deliveryMode, &flatFee,
		&totals.OrderedWeightKg, &totals.BaseCents, &totals.DeliveryCents,
		&totals.SharerCents, &totals.ParticipantTotalCents,
		&flags.Profile, &flags.Content, &flags.Weight, &flags.Amount,
		&autoParticipants, &autoSlots,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, wrapPgErr("failed to scan order", err)
	}
	return order.ReconstructOrder(
		id, code, ownerID, producerID,
		order.Status(status), order.Visibility(visibility),
		minWeight, maxWeight, sharerPct,
		pricing.DeliveryMode(deliveryMode), flatFee,
		totals, flags, autoParticipants, autoSlots,
		createdAt, updatedAt,
	), nil
}
