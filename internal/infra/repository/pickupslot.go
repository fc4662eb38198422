package repository

import (
	"context"
	"time"

	"partage/internal/domain/participant"
	"partage/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PickupSlotRepository struct {
	db DBTX
}

func NewPickupSlotRepository(db DBTX) *PickupSlotRepository {
	return &PickupSlotRepository{db: db}
}

var _ shared.PickupSlotRepository = (*PickupSlotRepository)(nil)

const pickupSlotColumns = `
	id, order_id, weekday, slot_date, start_time, end_time, enabled`

func (r *PickupSlotRepository) Create(ctx context.Context, s *participant.PickupSlot) error {
	var weekday *int16
	if wd := s.Weekday(); wd != nil {
		v := int16(*wd)
		weekday = &v
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO pickup_slots (`+pickupSlotColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID(), s.OrderID(), weekday, s.Date(), s.Start(), s.End(), s.Enabled(),
	)
	if err != nil {
		return wrapPgErr("failed to create pickup slot", err)
	}
	return nil
}

func (r *PickupSlotRepository) Update(ctx context.Context, s *participant.PickupSlot) error {
	tag, err := r.db.Exec(ctx, `UPDATE pickup_slots SET enabled = $2 WHERE id = $1`, s.ID(), s.Enabled())
	if err != nil {
		return wrapPgErr("failed to update pickup slot", err)
	}
	if tag.RowsAffected() == 0 {
		return wrapPgErr("pickup slot not found", pgx.ErrNoRows)
	}
	return nil
}

func (r *PickupSlotRepository) FindByID(ctx context.Context, id uuid.UUID) (*participant.PickupSlot, error) {
	row := r.db.QueryRow(ctx, `SELECT `+pickupSlotColumns+` FROM pickup_slots WHERE id = $1`, id)
	return scanPickupSlot(row)
}

func (r *PickupSlotRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]*participant.PickupSlot, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+pickupSlotColumns+` FROM pickup_slots
		WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, wrapPgErr("failed to list pickup slots", err)
	}
	defer rows.Close()

	var slots []*participant.PickupSlot
	for rows.Next() {
		s, err := scanPickupSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to iterate pickup slots", err)
	}
	return slots, nil
}

func scanPickupSlot(row pgx.Row) (*participant.PickupSlot, error) {
	var (
		id, orderID uuid.UUID
		weekdayRaw  *int16
		date        *time.Time
		start, end  string
		enabled     bool
	)
	err := row.Scan(&id, &orderID, &weekdayRaw, &date, &start, &end, &enabled)
	if err != nil {
		return nil, wrapPgErr("failed to scan pickup slot", err)
	}
	var weekday *time.Weekday
	if weekdayRaw != nil {
		wd := time.Weekday(*weekdayRaw)
		weekday = &wd
	}
	return participant.ReconstructPickupSlot(id, orderID, weekday, date, start, end, enabled), nil
}
