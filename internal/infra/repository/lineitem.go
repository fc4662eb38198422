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

type LineItemRepository struct {
	db DBTX
}

func NewLineItemRepository(db DBTX) *LineItemRepository {
	return &LineItemRepository{db: db}
}

var _ shared.LineItemRepository = (*LineItemRepository)(nil)

const lineItemColumns = `
	id, order_id, participant_id, offer_id, product_id, lot_id,
	quantity, unit_weight_kg, base_cents, delivery_cents, sharer_cents, final_cents, created_at`

func (r *LineItemRepository) Create(ctx context.Context, li *order.LineItem) error {
	unit := li.Unit()
	_, err := r.db.Exec(ctx, `
		INSERT INTO line_items (`+lineItemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		li.ID(), li.OrderID(), li.ParticipantID(), li.OfferID(), li.ProductID(), li.LotID(),
		li.Quantity(), li.UnitWeightKg(), unit.BaseCents, unit.DeliveryCents, unit.SharerCents, unit.FinalCents, li.CreatedAt(),
	)
	if err != nil {
		return wrapPgErr("failed to create line item", err)
	}
	return nil
}

func (r *LineItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM line_items WHERE id = $1`, id)
	if err != nil {
		return wrapPgErr("failed to delete line item", err)
	}
	if tag.RowsAffected() == 0 {
		return wrapPgErr("line item not found", pgx.ErrNoRows)
	}
	return nil
}

func (r *LineItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.LineItem, error) {
	row := r.db.QueryRow(ctx, `SELECT `+lineItemColumns+` FROM line_items WHERE id = $1`, id)
	return scanLineItem(row)
}

func (r *LineItemRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]*order.LineItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+lineItemColumns+` FROM line_items
		WHERE order_id = $1 ORDER BY created_at, id`, orderID)
	if err != nil {
		return nil, wrapPgErr("failed to list line items", err)
	}
	defer rows.Close()

	var items []*order.LineItem
	for rows.Next() {
		li, err := scanLineItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, li)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to iterate line items", err)
	}
	return items, nil
}

func scanLineItem(row pgx.Row) (*order.LineItem, error) {
	var (
		id, orderID, participantID, offerID, productID, lotID uuid.UUID
		quantity                                              int
		unitWeight                                            float64
		unit                                                  pricing.UnitPrice
		createdAt                                             time.Time
	)
	err := row.Scan(
		&id, &orderID, &participantID, &offerID, &productID, &lotID,
		&quantity, &unitWeight, &unit.BaseCents, &unit.DeliveryCents, &unit.SharerCents, &unit.FinalCents, &createdAt,
	)
	if err != nil {
		return nil, wrapPgErr("failed to scan line item", err)
	}
	return order.ReconstructLineItem(id, orderID, participantID, offerID, productID, lotID, quantity, unitWeight, unit, createdAt), nil
}
