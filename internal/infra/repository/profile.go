package repository

import (
	"context"
	"time"

	"partage/internal/domain/profile"
	"partage/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ProfileRepository struct {
	db DBTX
}

func NewProfileRepository(db DBTX) *ProfileRepository {
	return &ProfileRepository{db: db}
}

var _ shared.ProfileRepository = (*ProfileRepository)(nil)

func (r *ProfileRepository) Create(ctx context.Context, p *profile.Profile) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO profiles (id, email, password_hash, display_name, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID(), p.Email(), p.PasswordHash(), p.DisplayName(), string(p.Role()), p.CreatedAt(),
	)
	if err != nil {
		return wrapPgErr("failed to create profile", err)
	}
	return nil
}

func (r *ProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*profile.Profile, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, email, password_hash, display_name, role, created_at
		FROM profiles WHERE id = $1`, id)
	return scanProfile(row)
}

func (r *ProfileRepository) FindByEmail(ctx context.Context, email string) (*profile.Profile, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, email, password_hash, display_name, role, created_at
		FROM profiles WHERE email = $1`, email)
	return scanProfile(row)
}

func scanProfile(row pgx.Row) (*profile.Profile, error) {
	var (
		id                             uuid.UUID
		email, hash, displayName, role string
		createdAt                      time.Time
	)
	if err := row.Scan(&id, &email, &hash, &displayName, &role, &createdAt); err != nil {
		return nil, wrapPgErr("failed to scan profile", err)
	}
	return profile.ReconstructProfile(id, email, hash, displayName, profile.Role(role), createdAt), nil
}
