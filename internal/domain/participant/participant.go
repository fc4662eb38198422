package participant

import (
	"time"

	"partage/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrAlreadyAccepted   = errs.New("participant is already accepted")
	ErrNotPending        = errs.New("participant has no pending request")
	ErrSlotNotSelectable = errs.New("pickup slot cannot be selected yet")
)

type Role string

const (
	RoleSharer      Role = "sharer"
	RoleParticipant Role = "participant"
)

// Status is the participation state for one (order, profile) pair.
type Status string

const (
	StatusRequested Status = "requested"
	StatusInvited   Status = "invited"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusRemoved   Status = "removed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusRequested, StatusInvited, StatusAccepted, StatusRejected, StatusRemoved:
		return true
	default:
		return false
	}
}

// SlotStatus mirrors the participation-approval pattern for pickup slots.
type SlotStatus string

const (
	SlotNone      SlotStatus = "none"
	SlotRequested SlotStatus = "requested"
	SlotAccepted  SlotStatus = "accepted"
)

// Participant is one member of an order: the sharer or a joined participant.
// There is at most one row per (order, profile); re-requests update it.
type Participant struct {
	id               uuid.UUID
	orderID          uuid.UUID
	profileID        *uuid.UUID
	role             Role
	status           Status
	pickupSlotID     *uuid.UUID
	pickupSlotStatus SlotStatus
	totalWeightKg    float64
	totalAmountCents int64
	pickupCode       *string
	createdAt        time.Time
	updatedAt        time.Time
}

// NewParticipant creates a joining participant. If autoApprove is set the
// request is accepted immediately and a pickup code is issued.
func NewParticipant(orderID uuid.UUID, profileID *uuid.UUID, role Role, autoApprove bool, pickupCode string, now time.Time) *Participant {
	p := &Participant{
		id:               uuid.New(),
		orderID:          orderID,
		profileID:        profileID,
		role:             role,
		status:           StatusRequested,
		pickupSlotStatus: SlotNone,
		createdAt:        now,
		updatedAt:        now,
	}
	if role == RoleSharer || autoApprove {
		p.status = StatusAccepted
		p.pickupCode = &pickupCode
	}
	return p
}

func ReconstructParticipant(
	id, orderID uuid.UUID,
	profileID *uuid.UUID,
	role Role,
	status Status,
	pickupSlotID *uuid.UUID,
	pickupSlotStatus SlotStatus,
	totalWeightKg float64,
	totalAmountCents int64,
	pickupCode *string,
	createdAt, updatedAt time.Time,
) *Participant {
	return &Participant{
		id:               id,
		orderID:          orderID,
		profileID:        profileID,
		role:             role,
		status:           status,
		pickupSlotID:     pickupSlotID,
		pickupSlotStatus: pickupSlotStatus,
		totalWeightKg:    totalWeightKg,
		totalAmountCents: totalAmountCents,
		pickupCode:       pickupCode,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

func (p *Participant) ID() uuid.UUID               { return p.id }
func (p *Participant) OrderID() uuid.UUID          { return p.orderID }
func (p *Participant) ProfileID() *uuid.UUID       { return p.profileID }
func (p *Participant) Role() Role                  { return p.role }
func (p *Participant) Status() Status              { return p.status }
func (p *Participant) PickupSlotID() *uuid.UUID    { return p.pickupSlotID }
func (p *Participant) PickupSlotStatus() SlotStatus { return p.pickupSlotStatus }
func (p *Participant) TotalWeightKg() float64      { return p.totalWeightKg }
func (p *Participant) TotalAmountCents() int64     { return p.totalAmountCents }
func (p *Participant) PickupCode() *string         { return p.pickupCode }
func (p *Participant) CreatedAt() time.Time        { return p.createdAt }
func (p *Participant) UpdatedAt() time.Time        { return p.updatedAt }

func (p *Participant) IsAccepted() bool {
	return p.status == StatusAccepted
}

// Rerequest supersedes an earlier non-accepted state with a fresh request;
// an already accepted participant is left untouched (idempotent).
func (p *Participant) Rerequest(autoApprove bool, pickupCode string, now time.Time) {
	if p.status == StatusAccepted {
		return
	}
	if autoApprove {
		p.accept(pickupCode, now)
		return
	}
	p.status = StatusRequested
	p.updatedAt = now
}

// Accept approves a pending request and issues the pickup code exactly once.
func (p *Participant) Accept(pickupCode string, now time.Time) error {
	if p.status == StatusAccepted {
		return errs.Mark(ErrAlreadyAccepted, errs.ErrIllegalTransition)
	}
	if p.status != StatusRequested && p.status != StatusInvited {
		return errs.Mark(ErrNotPending, errs.ErrIllegalTransition)
	}
	p.accept(pickupCode, now)
	return nil
}

func (p *Participant) accept(pickupCode string, now time.Time) {
	p.status = StatusAccepted
	if p.pickupCode == nil {
		p.pickupCode = &pickupCode
	}
	p.updatedAt = now
}

func (p *Participant) Reject(now time.Time) error {
	if p.status != StatusRequested && p.status != StatusInvited {
		return errs.Mark(ErrNotPending, errs.ErrIllegalTransition)
	}
	p.status = StatusRejected
	p.updatedAt = now
	return nil
}

func (p *Participant) Remove(now time.Time) {
	p.status = StatusRemoved
	p.updatedAt = now
}

// ApplyTotals overwrites the cached per-participant aggregates after a
// ledger rebuild.
func (p *Participant) ApplyTotals(weightKg float64, amountCents int64, now time.Time) {
	p.totalWeightKg = weightKg
	p.totalAmountCents = amountCents
	p.updatedAt = now
}

// SelectPickupSlot records the participant's slot choice. A later selection
// from the same participant supersedes the previous one; approval mirrors
// the participation pattern via autoApprove.
func (p *Participant) SelectPickupSlot(slotID uuid.UUID, autoApprove bool, now time.Time) error {
	if !p.IsAccepted() {
		return errs.Mark(errs.New("only accepted participants select pickup slots"), errs.ErrParticipantNotActive)
	}
	p.pickupSlotID = &slotID
	if autoApprove {
		p.pickupSlotStatus = SlotAccepted
	} else {
		p.pickupSlotStatus = SlotRequested
	}
	p.updatedAt = now
	return nil
}

// ApprovePickupSlot resolves a requested slot.
func (p *Participant) ApprovePickupSlot(now time.Time) error {
	if p.pickupSlotID == nil || p.pickupSlotStatus != SlotRequested {
		return errs.Mark(errs.New("no pending pickup slot request"), errs.ErrIllegalTransition)
	}
	p.pickupSlotStatus = SlotAccepted
	p.updatedAt = now
	return nil
}
