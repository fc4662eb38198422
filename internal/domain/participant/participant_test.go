//go:build unit

package participant_test

import (
	"testing"
	"time"

	"partage/internal/domain/participant"
	"partage/internal/pkg/errs"
	"partage/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func TestNewParticipant(t *testing.T) {
	t.Run("sharer is accepted immediately with a pickup code", func(t *testing.T) {
		p := builder.NewParticipantBuilder().AsSharer().BuildDomain()

		assert.Equal(t, participant.StatusAccepted, p.Status())
		require.NotNil(t, p.PickupCode())
		assert.Equal(t, "ABC234", *p.PickupCode())
	})

	t.Run("plain request is pending without a code", func(t *testing.T) {
		p := builder.NewParticipantBuilder().BuildDomain()

		assert.Equal(t, participant.StatusRequested, p.Status())
		assert.Nil(t, p.PickupCode())
	})

	t.Run("auto-approve accepts on creation", func(t *testing.T) {
		p := builder.NewParticipantBuilder().WithAutoApprove().BuildDomain()

		assert.Equal(t, participant.StatusAccepted, p.Status())
		assert.NotNil(t, p.PickupCode())
	})
}

func TestAccept(t *testing.T) {
	t.Run("approval issues the pickup code exactly once", func(t *testing.T) {
		p := builder.NewParticipantBuilder().BuildDomain()

		require.NoError(t, p.Accept("FIRST1", now))
		require.NotNil(t, p.PickupCode())
		assert.Equal(t, "FIRST1", *p.PickupCode())

		err := p.Accept("SECOND", now)
		assert.ErrorIs(t, err, participant.ErrAlreadyAccepted)
		assert.Equal(t, "FIRST1", *p.PickupCode())
	})

	t.Run("rejected request cannot be accepted", func(t *testing.T) {
		p := builder.NewParticipantBuilder().BuildDomain()
		require.NoError(t, p.Reject(now))

		err := p.Accept("CODE42", now)
		assert.ErrorIs(t, err, participant.ErrNotPending)
	})
}

func TestRerequest(t *testing.T) {
	t.Run("accepted participant is untouched", func(t *testing.T) {
		p := builder.NewParticipantBuilder().BuildDomain()
		require.NoError(t, p.Accept("FIRST1", now))

		p.Rerequest(false, "OTHER2", now)
		assert.Equal(t, participant.StatusAccepted, p.Status())
		assert.Equal(t, "FIRST1", *p.PickupCode())
	})

	t.Run("rejected participant can ask again", func(t *testing.T) {
		p := builder.NewParticipantBuilder().BuildDomain()
		require.NoError(t, p.Reject(now))

		p.Rerequest(false, "CODE42", now)
		assert.Equal(t, participant.StatusRequested, p.Status())
		assert.Nil(t, p.PickupCode())
	})

	t.Run("re-request under auto-approve accepts directly", func(t *testing.T) {
		p := builder.NewParticipantBuilder().BuildDomain()
		require.NoError(t, p.Reject(now))

		p.Rerequest(true, "CODE42", now)
		assert.Equal(t, participant.StatusAccepted, p.Status())
		require.NotNil(t, p.PickupCode())
		assert.Equal(t, "CODE42", *p.PickupCode())
	})
}

func TestSelectPickupSlot(t *testing.T) {
	slotID := uuid.New()

	t.Run("pending participant cannot select", func(t *testing.T) {
		p := builder.NewParticipantBuilder().BuildDomain()

		err := p.SelectPickupSlot(slotID, false, now)
		assert.ErrorIs(t, err, errs.ErrParticipantNotActive)
	})

	t.Run("selection requires approval by default", func(t *testing.T) {
		p := builder.NewParticipantBuilder().WithAutoApprove().BuildDomain()

		require.NoError(t, p.SelectPickupSlot(slotID, false, now))
		require.NotNil(t, p.PickupSlotID())
		assert.Equal(t, slotID, *p.PickupSlotID())
		assert.Equal(t, participant.SlotRequested, p.PickupSlotStatus())
	})

	t.Run("auto-approve accepts the slot immediately", func(t *testing.T) {
		p := builder.NewParticipantBuilder().WithAutoApprove().BuildDomain()

		require.NoError(t, p.SelectPickupSlot(slotID, true, now))
		assert.Equal(t, participant.SlotAccepted, p.PickupSlotStatus())
	})

	t.Run("a later selection supersedes the previous one", func(t *testing.T) {
		p := builder.NewParticipantBuilder().WithAutoApprove().BuildDomain()
		require.NoError(t, p.SelectPickupSlot(slotID, true, now))

		other := uuid.New()
		require.NoError(t, p.SelectPickupSlot(other, false, now))
		assert.Equal(t, other, *p.PickupSlotID())
		assert.Equal(t, participant.SlotRequested, p.PickupSlotStatus())
	})
}

func TestApprovePickupSlot(t *testing.T) {
	t.Run("approves a requested slot", func(t *testing.T) {
		p := builder.NewParticipantBuilder().WithAutoApprove().BuildDomain()
		require.NoError(t, p.SelectPickupSlot(uuid.New(), false, now))

		require.NoError(t, p.ApprovePickupSlot(now))
		assert.Equal(t, participant.SlotAccepted, p.PickupSlotStatus())
	})

	t.Run("nothing to approve without a pending request", func(t *testing.T) {
		p := builder.NewParticipantBuilder().WithAutoApprove().BuildDomain()

		assert.ErrorIs(t, p.ApprovePickupSlot(now), errs.ErrIllegalTransition)
	})
}

func TestNewPickupSlot(t *testing.T) {
	orderID := uuid.New()
	wednesday := time.Wednesday
	date := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	t.Run("weekday-recurring slot", func(t *testing.T) {
		s, err := participant.NewPickupSlot(orderID, &wednesday, nil, "17:00", "19:00", true)
		require.NoError(t, err)
		assert.Equal(t, &wednesday, s.Weekday())
		assert.True(t, s.Enabled())
	})

	t.Run("date-specific slot", func(t *testing.T) {
		s, err := participant.NewPickupSlot(orderID, nil, &date, "09:30", "12:00", true)
		require.NoError(t, err)
		assert.Nil(t, s.Weekday())
	})

	t.Run("weekday and date are mutually exclusive", func(t *testing.T) {
		_, err := participant.NewPickupSlot(orderID, &wednesday, &date, "17:00", "19:00", true)
		assert.ErrorIs(t, err, errs.ErrDomainValidation)

		_, err = participant.NewPickupSlot(orderID, nil, nil, "17:00", "19:00", true)
		assert.ErrorIs(t, err, errs.ErrDomainValidation)
	})

	t.Run("window must be well formed", func(t *testing.T) {
		_, err := participant.NewPickupSlot(orderID, &wednesday, nil, "19:00", "17:00", true)
		assert.ErrorIs(t, err, participant.ErrInvalidSlotWindow)

		_, err = participant.NewPickupSlot(orderID, &wednesday, nil, "5pm", "19:00", true)
		assert.ErrorIs(t, err, participant.ErrInvalidSlotWindow)
	})
}
