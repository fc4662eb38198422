package repository

import (
	"context"
	"time"

	"partage/internal/domain/payment"
	"partage/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PaymentRepository struct {
	db DBTX
}

func NewPaymentRepository(db DBTX) *PaymentRepository {
	return &PaymentRepository{db: db}
}

var _ shared.PaymentRepository = (*PaymentRepository)(nil)

func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO payments (id, order_id, participant_id, amount_cents, status, external_ref, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID(), p.OrderID(), p.ParticipantID(), p.AmountCents(), string(p.Status()), p.ExternalRef(), p.CreatedAt(), p.UpdatedAt(),
	)
	if err != nil {
		return wrapPgErr("failed to create payment", err)
	}
	return nil
}

func (r *PaymentRepository) Update(ctx context.Context, p *payment.Payment) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE payments SET status = $2, external_ref = $3, updated_at = $4 WHERE id = $1`,
		p.ID(), string(p.Status()), p.ExternalRef(), p.UpdatedAt(),
	)
	if err != nil {
		return wrapPgErr("failed to update payment", err)
	}
	if tag.RowsAffected() == 0 {
		return wrapPgErr("payment not found", pgx.ErrNoRows)
	}
	return nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	var (
		pid, orderID, participantID uuid.UUID
		amount                      int64
		status                      string
		externalRef                 *string
		createdAt, updatedAt        time.Time
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, order_id, participant_id, amount_cents, status, external_ref, created_at, updated_at
		FROM payments WHERE id = $1`, id,
	).Scan(&pid, &orderID, &participantID, &amount, &status, &externalRef, &createdAt, &updatedAt)
	if err != nil {
		return nil, wrapPgErr("failed to scan payment", err)
	}
	return payment.ReconstructPayment(pid, orderID, participantID, amount, payment.Status(status), externalRef, createdAt, updatedAt), nil
}

type InvoiceRepository struct {
	db DBTX
}

func NewInvoiceRepository(db DBTX) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

var _ shared.InvoiceRepository = (*InvoiceRepository)(nil)

// CreateIfAbsent relies on the unique order key; re-issuing for an already
// invoiced order is a silent no-op.
func (r *InvoiceRepository) CreateIfAbsent(ctx context.Context, inv *payment.Invoice) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO invoices (id, order_id, amount_cents, issued_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (order_id) DO NOTHING`,
		inv.ID(), inv.OrderID(), inv.AmountCents(), inv.IssuedAt(),
	)
	if err != nil {
		return false, wrapPgErr("failed to create invoice", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *InvoiceRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*payment.Invoice, error) {
	var (
		id, oid  uuid.UUID
		amount   int64
		issuedAt time.Time
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, order_id, amount_cents, issued_at FROM invoices WHERE order_id = $1`, orderID,
	).Scan(&id, &oid, &amount, &issuedAt)
	if err != nil {
		return nil, wrapPgErr("failed to scan invoice", err)
	}
	return payment.ReconstructInvoice(id, oid, amount, issuedAt), nil
}
