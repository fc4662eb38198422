//go:build unit || integration

package builder

import (
	"time"

	"partage/internal/domain/participant"

	"github.com/google/uuid"
)

type ParticipantBuilder struct {
	OrderID     uuid.UUID
	ProfileID   *uuid.UUID
	Role        participant.Role
	AutoApprove bool
	PickupCode  string
	Now         time.Time
}

func NewParticipantBuilder() *ParticipantBuilder {
	profileID := uuid.New()
	return &ParticipantBuilder{
		OrderID:     uuid.New(),
		ProfileID:   &profileID,
		Role:        participant.RoleParticipant,
		AutoApprove: false,
		PickupCode:  "ABC234",
		Now:         time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
	}
}

func (b *ParticipantBuilder) With(mutate func(*ParticipantBuilder)) *ParticipantBuilder {
	mutate(b)
	return b
}

func (b *ParticipantBuilder) ForOrder(orderID uuid.UUID) *ParticipantBuilder {
	b.OrderID = orderID
	return b
}

func (b *ParticipantBuilder) AsSharer() *ParticipantBuilder {
	b.Role = participant.RoleSharer
	return b
}

func (b *ParticipantBuilder) WithAutoApprove() *ParticipantBuilder {
	b.AutoApprove = true
	return b
}

func (b *ParticipantBuilder) BuildDomain() *participant.Participant {
	return participant.NewParticipant(b.OrderID, b.ProfileID, b.Role, b.AutoApprove, b.PickupCode, b.Now)
}
