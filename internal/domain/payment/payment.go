package payment

import (
	"time"

	"partage/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidAmount = errs.New("payment amount must be positive")
	ErrNotPending    = errs.New("payment is not pending")
)

type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusFailed  Status = "failed"
)

// Payment is one charge attempt against a participant's due amount. The
// amount is the participant total cached by the ledger at charge time; the
// engine never computes provider fees.
type Payment struct {
	id            uuid.UUID
	orderID       uuid.UUID
	participantID uuid.UUID
	amountCents   int64
	status        Status
	externalRef   *string
	createdAt     time.Time
	updatedAt     time.Time
}

func NewPayment(orderID, participantID uuid.UUID, amountCents int64, now time.Time) (*Payment, error) {
	if amountCents <= 0 {
		return nil, errs.Mark(ErrInvalidAmount, errs.ErrDomainValidation)
	}
	return &Payment{
		id:            uuid.New(),
		orderID:       orderID,
		participantID: participantID,
		amountCents:   amountCents,
		status:        StatusPending,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func ReconstructPayment(id, orderID, participantID uuid.UUID, amountCents int64, status Status, externalRef *string, createdAt, updatedAt time.Time) *Payment {
	return &Payment{
		id:            id,
		orderID:       orderID,
		participantID: participantID,
		amountCents:   amountCents,
		status:        status,
		externalRef:   externalRef,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (p *Payment) ID() uuid.UUID            { return p.id }
func (p *Payment) OrderID() uuid.UUID       { return p.orderID }
func (p *Payment) ParticipantID() uuid.UUID { return p.participantID }
func (p *Payment) AmountCents() int64       { return p.amountCents }
func (p *Payment) Status() Status           { return p.status }
func (p *Payment) ExternalRef() *string     { return p.externalRef }
func (p *Payment) CreatedAt() time.Time     { return p.createdAt }
func (p *Payment) UpdatedAt() time.Time     { return p.updatedAt }

func (p *Payment) AttachExternalRef(ref string, now time.Time) {
	p.externalRef = &ref
	p.updatedAt = now
}

// MarkPaid settles a pending payment; reservations are consumed by the
// caller in the same transaction.
func (p *Payment) MarkPaid(now time.Time) error {
	if p.status != StatusPending {
		return errs.Mark(ErrNotPending, errs.ErrIllegalTransition)
	}
	p.status = StatusPaid
	p.updatedAt = now
	return nil
}

// MarkFailed records a provider failure. The participant's due amount is
// untouched; there is no phantom paid state.
func (p *Payment) MarkFailed(now time.Time) error {
	if p.status != StatusPending {
		return errs.Mark(ErrNotPending, errs.ErrIllegalTransition)
	}
	p.status = StatusFailed
	p.updatedAt = now
	return nil
}
