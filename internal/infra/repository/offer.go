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

type OfferRepository struct {
	db DBTX
}

func NewOfferRepository(db DBTX) *OfferRepository {
	return &OfferRepository{db: db}
}

var _ shared.OfferRepository = (*OfferRepository)(nil)

const offerColumns = `
	id, order_id, product_id, lot_id, name, unit_weight_kg,
	base_cents, delivery_cents, sharer_cents, final_cents, created_at`

func (r *OfferRepository) Create(ctx context.Context, f *order.Offer) error {
	unit := f.Unit()
	_, err := r.db.Exec(ctx, `
		INSERT INTO offers (`+offerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		f.ID(), f.OrderID(), f.ProductID(), f.LotID(), f.Name(), f.UnitWeightKg(),
		unit.BaseCents, unit.DeliveryCents, unit.SharerCents, unit.FinalCents, f.CreatedAt(),
	)
	if err != nil {
		return wrapPgErr("failed to create offer", err)
	}
	return nil
}

func (r *OfferRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Offer, error) {
	row := r.db.QueryRow(ctx, `SELECT `+offerColumns+` FROM offers WHERE id = $1`, id)
	return scanOffer(row)
}

func (r *OfferRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]*order.Offer, error) {
	rows, err := r.db.Query(ctx, `SELECT `+offerColumns+` FROM offers WHERE order_id = $1 ORDER BY created_at, id`, orderID)
	if err != nil {
		return nil, wrapPgErr("failed to list offers", err)
	}
	defer rows.Close()

	var offers []*order.Offer
	for rows.Next() {
		f, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		offers = append(offers, f)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to iterate offers", err)
	}
	return offers, nil
}

func scanOffer(row pgx.Row) (*order.Offer, error) {
	var (
		id, orderID, productID, lotID uuid.UUID
		name                          string
		unitWeight                    float64
		unit                          pricing.UnitPrice
		createdAt                     time.Time
	)
	err := row.Scan(
		&id, &orderID, &productID, &lotID, &name, &unitWeight,
		&unit.BaseCents, &unit.DeliveryCents, &unit.SharerCents, &unit.FinalCents, &createdAt,
	)
	if err != nil {
		return nil, wrapPgErr("failed to scan offer", err)
	}
	return order.ReconstructOffer(id, orderID, productID, lotID, name, unitWeight, unit, createdAt), nil
}
