package participant

import (
	"time"

	"partage/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidSlotWindow = errs.New("slot window is invalid")
	ErrSlotDisabled      = errs.New("pickup slot is disabled")
)

// PickupSlot is a collection window offered by the order owner: either
// recurring on a weekday or bound to a specific date. Times are local
// wall-clock "15:04" strings.
type PickupSlot struct {
	id      uuid.UUID
	orderID uuid.UUID
	weekday *time.Weekday
	date    *time.Time
	start   string
	end     string
	enabled bool
}

func NewPickupSlot(orderID uuid.UUID, weekday *time.Weekday, date *time.Time, start, end string, enabled bool) (*PickupSlot, error) {
	if (weekday == nil) == (date == nil) {
		return nil, errs.Mark(errs.New("a slot is either weekday-recurring or date-specific"), errs.ErrDomainValidation)
	}
	startT, err := time.Parse("15:04", start)
	if err != nil {
		return nil, errs.Mark(ErrInvalidSlotWindow, errs.ErrDomainValidation)
	}
	endT, err := time.Parse("15:04", end)
	if err != nil {
		return nil, errs.Mark(ErrInvalidSlotWindow, errs.ErrDomainValidation)
	}
	if !startT.Before(endT) {
		return nil, errs.Mark(ErrInvalidSlotWindow, errs.ErrDomainValidation)
	}
	return &PickupSlot{
		id:      uuid.New(),
		orderID: orderID,
		weekday: weekday,
		date:    date,
		start:   start,
		end:     end,
		enabled: enabled,
	}, nil
}

func ReconstructPickupSlot(id, orderID uuid.UUID, weekday *time.Weekday, date *time.Time, start, end string, enabled bool) *PickupSlot {
	return &PickupSlot{
		id:      id,
		orderID: orderID,
		weekday: weekday,
		date:    date,
		start:   start,
		end:     end,
		enabled: enabled,
	}
}

func (s *PickupSlot) ID() uuid.UUID          { return s.id }
func (s *PickupSlot) OrderID() uuid.UUID     { return s.orderID }
func (s *PickupSlot) Weekday() *time.Weekday { return s.weekday }
func (s *PickupSlot) Date() *time.Time       { return s.date }
func (s *PickupSlot) Start() string          { return s.start }
func (s *PickupSlot) End() string            { return s.end }
func (s *PickupSlot) Enabled() bool          { return s.enabled }

func (s *PickupSlot) SetEnabled(enabled bool) {
	s.enabled = enabled
}
