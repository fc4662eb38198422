package repository

import (
	"context"
	"time"

	"partage/internal/domain/reservation"
	"partage/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ReservationRepository struct {
	db DBTX
}

func NewReservationRepository(db DBTX) *ReservationRepository {
	return &ReservationRepository{db: db}
}

var _ shared.ReservationRepository = (*ReservationRepository)(nil)

const reservationColumns = `
	id, lot_id, line_item_id, quantity, status, expires_at, created_at`

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO lot_reservations (`+reservationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		res.ID(), res.LotID(), res.LineItemID(), res.Quantity(), string(res.Status()), res.ExpiresAt(), res.CreatedAt(),
	)
	if err != nil {
		return wrapPgErr("failed to create reservation", err)
	}
	return nil
}

func (r *ReservationRepository) Update(ctx context.Context, res *reservation.Reservation) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE lot_reservations SET status = $2 WHERE id = $1`,
		res.ID(), string(res.Status()),
	)
	if err != nil {
		return wrapPgErr("failed to update reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return wrapPgErr("reservation not found", pgx.ErrNoRows)
	}
	return nil
}

func (r *ReservationRepository) FindByLotID(ctx context.Context, lotID uuid.UUID) ([]*reservation.Reservation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+reservationColumns+` FROM lot_reservations
		WHERE lot_id = $1 ORDER BY created_at, id`, lotID)
	if err != nil {
		return nil, wrapPgErr("failed to list reservations by lot", err)
	}
	return collectReservations(rows)
}

func (r *ReservationRepository) FindByLineItemID(ctx context.Context, lineItemID uuid.UUID) (*reservation.Reservation, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+reservationColumns+` FROM lot_reservations WHERE line_item_id = $1`, lineItemID)
	return scanReservation(row)
}

func (r *ReservationRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]*reservation.Reservation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT r.id, r.lot_id, r.line_item_id, r.quantity, r.status, r.expires_at, r.created_at
		FROM lot_reservations r
		JOIN line_items li ON li.id = r.line_item_id
		WHERE li.order_id = $1 ORDER BY r.created_at, r.id`, orderID)
	if err != nil {
		return nil, wrapPgErr("failed to list reservations by order", err)
	}
	return collectReservations(rows)
}

func collectReservations(rows pgx.Rows) ([]*reservation.Reservation, error) {
	defer rows.Close()
	var holds []*reservation.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		holds = append(holds, res)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to iterate reservations", err)
	}
	return holds, nil
}

func scanReservation(row pgx.Row) (*reservation.Reservation, error) {
	var (
		id, lotID, lineItemID uuid.UUID
		quantity              int
		status                string
		expiresAt, createdAt  time.Time
	)
	err := row.Scan(&id, &lotID, &lineItemID, &quantity, &status, &expiresAt, &createdAt)
	if err != nil {
		return nil, wrapPgErr("failed to scan reservation", err)
	}
	return reservation.ReconstructReservation(id, lotID, lineItemID, quantity, reservation.Status(status), expiresAt, createdAt), nil
}
