//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"partage/internal/domain/reservation"
	"partage/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func newHold(t *testing.T, lotID uuid.UUID, qty int) *reservation.Reservation {
	t.Helper()
	r, err := reservation.NewReservation(lotID, uuid.New(), qty, 30*time.Minute, t0)
	require.NoError(t, err)
	return r
}

func TestReservationLifecycle(t *testing.T) {
	lotID := uuid.New()

	t.Run("active until the ttl elapses", func(t *testing.T) {
		r := newHold(t, lotID, 3)

		assert.True(t, r.IsActive(t0))
		assert.True(t, r.IsActive(t0.Add(30*time.Minute)))
		assert.False(t, r.IsActive(t0.Add(30*time.Minute+time.Second)))
	})

	t.Run("consume settles an active hold", func(t *testing.T) {
		r := newHold(t, lotID, 3)

		require.NoError(t, r.Consume(t0.Add(10*time.Minute)))
		assert.Equal(t, reservation.StatusConsumed, r.Status())
	})

	t.Run("an expired hold cannot be consumed", func(t *testing.T) {
		r := newHold(t, lotID, 3)

		err := r.Consume(t0.Add(time.Hour))
		assert.ErrorIs(t, err, reservation.ErrNotActive)
	})

	t.Run("release is a no-op on a consumed hold", func(t *testing.T) {
		r := newHold(t, lotID, 3)
		require.NoError(t, r.Consume(t0))

		r.Release()
		assert.Equal(t, reservation.StatusConsumed, r.Status())
	})

	t.Run("non-positive quantity rejected", func(t *testing.T) {
		_, err := reservation.NewReservation(lotID, uuid.New(), 0, 30*time.Minute, t0)
		assert.ErrorIs(t, err, reservation.ErrInvalidQuantity)
	})

	t.Run("non-positive ttl falls back to the default", func(t *testing.T) {
		r, err := reservation.NewReservation(lotID, uuid.New(), 1, 0, t0)
		require.NoError(t, err)
		assert.Equal(t, t0.Add(reservation.DefaultTTL), r.ExpiresAt())
	})
}

func TestActiveQuantity(t *testing.T) {
	lotID := uuid.New()
	otherLot := uuid.New()

	holds := []*reservation.Reservation{
		newHold(t, lotID, 3),
		newHold(t, lotID, 2),
		newHold(t, otherLot, 10),
	}
	released := newHold(t, lotID, 4)
	released.Release()
	holds = append(holds, released)

	t.Run("sums only active holds of the lot", func(t *testing.T) {
		assert.Equal(t, 5, reservation.ActiveQuantity(holds, lotID, t0))
	})

	t.Run("expired holds stop counting", func(t *testing.T) {
		assert.Equal(t, 0, reservation.ActiveQuantity(holds, lotID, t0.Add(time.Hour)))
	})
}

func TestCheckAvailability(t *testing.T) {
	lotID := uuid.New()
	holds := []*reservation.Reservation{newHold(t, lotID, 6)}

	t.Run("request within remaining stock passes", func(t *testing.T) {
		assert.NoError(t, reservation.CheckAvailability(10, holds, lotID, 4, t0))
	})

	t.Run("request exceeding stock plus holds fails", func(t *testing.T) {
		err := reservation.CheckAvailability(10, holds, lotID, 5, t0)
		assert.ErrorIs(t, err, errs.ErrInsufficientStock)
	})

	t.Run("expiry frees the held quantity", func(t *testing.T) {
		later := t0.Add(time.Hour)
		assert.NoError(t, reservation.CheckAvailability(10, holds, lotID, 10, later))
	})
}
