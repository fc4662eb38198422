package repository

import (
	"context"
	"time"

	"partage/internal/domain/participant"
	"partage/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ParticipantRepository struct {
	db DBTX
}

func NewParticipantRepository(db DBTX) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

var _ shared.ParticipantRepository = (*ParticipantRepository)(nil)

const participantColumns = `
	id, order_id, profile_id, role, status,
	pickup_slot_id, pickup_slot_status, total_weight_kg, total_amount_cents,
	pickup_code, created_at, updated_at`

func (r *ParticipantRepository) Create(ctx context.Context, p *participant.Participant) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO participants (`+participantColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		p.ID(), p.OrderID(), p.ProfileID(), string(p.Role()), string(p.Status()),
		p.PickupSlotID(), string(p.PickupSlotStatus()), p.TotalWeightKg(), p.TotalAmountCents(),
		p.PickupCode(), p.CreatedAt(), p.UpdatedAt(),
	)
	if err != nil {
		return wrapPgErr("failed to create participant", err)
	}
	return nil
}

func (r *ParticipantRepository) Update(ctx context.Context, p *participant.Participant) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE participants SET
			status = $2, pickup_slot_id = $3, pickup_slot_status = $4,
			total_weight_kg = $5, total_amount_cents = $6, pickup_code = $7,
			updated_at = $8
		WHERE id = $1`,
		p.ID(), string(p.Status()), p.PickupSlotID(), string(p.PickupSlotStatus()),
		p.TotalWeightKg(), p.TotalAmountCents(), p.PickupCode(), p.UpdatedAt(),
	)
	if err != nil {
		return wrapPgErr("failed to update participant", err)
	}
	if tag.RowsAffected() == 0 {
		return wrapPgErr("participant disappeared during update", pgx.ErrNoRows)
	}
	return nil
}

func (r *ParticipantRepository) FindByID(ctx context.Context, id uuid.UUID) (*participant.Participant, error) {
	row := r.db.QueryRow(ctx, `SELECT `+participantColumns+` FROM participants WHERE id = $1`, id)
	return scanParticipant(row)
}

func (r *ParticipantRepository) FindByOrderAndProfile(ctx context.Context, orderID, profileID uuid.UUID) (*participant.Participant, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+participantColumns+` FROM participants
		WHERE order_id = $1 AND profile_id = $2`, orderID, profileID)
	return scanParticipant(row)
}

func (r *ParticipantRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]*participant.Participant, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+participantColumns+` FROM participants
		WHERE order_id = $1 ORDER BY created_at, id`, orderID)
	if err != nil {
		return nil, wrapPgErr("failed to list participants", err)
	}
	defer rows.Close()

	var members []*participant.Participant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to iterate participants", err)
	}
	return members, nil
}

func scanParticipant(row pgx.Row) (*participant.Participant, error) {
	var (
		id, orderID          uuid.UUID
		profileID            *uuid.UUID
		role, status         string
		pickupSlotID         *uuid.UUID
		pickupSlotStatus     string
		totalWeight          float64
		totalAmount          int64
		pickupCode           *string
		createdAt, updatedAt time.Time
	)
	err := row.Scan(
		&id, &orderID, &profileID, &role, &status,
		&pickupSlotID, &pickupSlotStatus, &totalWeight, &totalAmount,
		&pickupCode, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, wrapPgErr("failed to scan participant", err)
	}
	return participant.ReconstructParticipant(
		id, orderID, profileID,
		participant.Role(role), participant.Status(status),
		pickupSlotID, participant.SlotStatus(pickupSlotStatus),
		totalWeight, totalAmount, pickupCode,
		createdAt, updatedAt,
	), nil
}
