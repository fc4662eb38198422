package order

import (
	"time"

	"partage/internal/domain/pricing"
	"partage/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidWeightRange = errs.New("min/max weight range is invalid")
	ErrInvalidSharerPct   = errs.New("sharer percentage must be in [0, 100)")
	ErrInvalidDeliveryMode = errs.New("invalid delivery mode")
	ErrInvalidVisibility   = errs.New("invalid visibility")
)

// Totals are the order-level cached aggregates, in minor units. They must
// always equal the sum over current line items; RecomputeLedger is the only
// writer.
type Totals struct {
	OrderedWeightKg       float64
	BaseCents             int64
	DeliveryCents         int64
	SharerCents           int64
	ParticipantTotalCents int64
}

// Order is the aggregate root of the settlement engine.
type Order struct {
	id               uuid.UUID
	code             string
	ownerID          uuid.UUID
	producerID       uuid.UUID
	status           Status
	visibility       Visibility
	minWeightKg      float64
	maxWeightKg      *float64
	sharerPct        int
	deliveryMode     pricing.DeliveryMode
	flatFeeCents     int64
	totals           Totals
	participantFlags ParticipantFlags
	autoApproveParticipants bool
	autoApprovePickupSlots  bool
	createdAt        time.Time
	updatedAt        time.Time
}

type NewOrderParams struct {
	Code         string
	OwnerID      uuid.UUID
	ProducerID   uuid.UUID
	Visibility   Visibility
	MinWeightKg  float64
	MaxWeightKg  *float64
	SharerPct    int
	DeliveryMode pricing.DeliveryMode
	FlatFeeCents int64
	Flags        ParticipantFlags
	AutoApproveParticipants bool
	AutoApprovePickupSlots  bool
}

func NewOrder(p NewOrderParams, now time.Time) (*Order, error) {
	if p.OwnerID == uuid.Nil || p.ProducerID == uuid.Nil {
		return nil, errs.Mark(errs.New("owner and producer are required"), errs.ErrMissingActor)
	}
	if !p.Visibility.IsValid() {
		return nil, errs.Mark(ErrInvalidVisibility, errs.ErrDomainValidation)
	}
	if !p.DeliveryMode.IsValid() {
		return nil, errs.Mark(ErrInvalidDeliveryMode, errs.ErrDomainValidation)
	}
	if p.MinWeightKg < 0 || (p.MaxWeightKg != nil && *p.MaxWeightKg < p.MinWeightKg) {
		return nil, errs.Mark(ErrInvalidWeightRange, errs.ErrDomainValidation)
	}
	if p.SharerPct < 0 || p.SharerPct >= 100 {
		return nil, errs.Mark(ErrInvalidSharerPct, errs.ErrDomainValidation)
	}

	return &Order{
		id:               uuid.New(),
		code:             p.Code,
		ownerID:          p.OwnerID,
		producerID:       p.ProducerID,
		status:           StatusDraft,
		visibility:       p.Visibility,
		minWeightKg:      p.MinWeightKg,
		maxWeightKg:      p.MaxWeightKg,
		sharerPct:        p.SharerPct,
		deliveryMode:     p.DeliveryMode,
		flatFeeCents:     p.FlatFeeCents,
		participantFlags: p.Flags,
		autoApproveParticipants: p.AutoApproveParticipants,
		autoApprovePickupSlots:  p.AutoApprovePickupSlots,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

// ReconstructOrder rebuilds an Order from persistence without re-validating
// business rules.
func ReconstructOrder(
	id uuid.UUID,
	code string,
	ownerID, producerID uuid.UUID,
	status Status,
	visibility Visibility,
	minWeightKg float64,
	maxWeightKg *float64,
	sharerPct int,
	deliveryMode pricing.DeliveryMode,
	flatFeeCents int64,
	totals Totals,
	flags ParticipantFlags,
	autoApproveParticipants, autoApprovePickupSlots bool,
	createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:               id,
		code:             code,
		ownerID:          ownerID,
		producerID:       producerID,
		status:           status,
		visibility:       visibility,
		minWeightKg:      minWeightKg,
		maxWeightKg:      maxWeightKg,
		sharerPct:        sharerPct,
		deliveryMode:     deliveryMode,
		flatFeeCents:     flatFeeCents,
		totals:           totals,
		participantFlags: flags,
		autoApproveParticipants: autoApproveParticipants,
		autoApprovePickupSlots:  autoApprovePickupSlots,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

func (o *Order) ID() uuid.UUID                  { return o.id }
func (o *Order) Code() string                   { return o.code }
func (o *Order) OwnerID() uuid.UUID             { return o.ownerID }
func (o *Order) ProducerID() uuid.UUID          { return o.producerID }
func (o *Order) Status() Status                 { return o.status }
func (o *Order) Visibility() Visibility         { return o.visibility }
func (o *Order) MinWeightKg() float64           { return o.minWeightKg }
func (o *Order) MaxWeightKg() *float64          { return o.maxWeightKg }
func (o *Order) SharerPct() int                 { return o.sharerPct }
func (o *Order) DeliveryMode() pricing.DeliveryMode { return o.deliveryMode }
func (o *Order) FlatFeeCents() int64            { return o.flatFeeCents }
func (o *Order) Totals() Totals                 { return o.totals }
func (o *Order) ParticipantFlagsStored() ParticipantFlags { return o.participantFlags }
func (o *Order) AutoApproveParticipants() bool  { return o.autoApproveParticipants }
func (o *Order) AutoApprovePickupSlots() bool   { return o.autoApprovePickupSlots }
func (o *Order) CreatedAt() time.Time           { return o.createdAt }
func (o *Order) UpdatedAt() time.Time           { return o.updatedAt }

// EffectiveWeightKg clamps the ordered weight to [min, max]; with no max the
// result is max(ordered, min). Delivery cost is apportioned over this value.
func (o *Order) EffectiveWeightKg() float64 {
	w := o.totals.OrderedWeightKg
	if w < o.minWeightKg {
		w = o.minWeightKg
	}
	if o.maxWeightKg != nil && w > *o.maxWeightKg {
		w = *o.maxWeightKg
	}
	return w
}

// DeliveryFeeTotalCents derives the order-level delivery total for the
// configured mode and current effective weight.
func (o *Order) DeliveryFeeTotalCents() int64 {
	return pricing.DeliveryFeeTotalCents(o.deliveryMode, o.EffectiveWeightKg(), o.flatFeeCents)
}

// ApplyTotals overwrites the cached aggregates after a ledger rebuild.
func (o *Order) ApplyTotals(t Totals, now time.Time) {
	o.totals = t
	o.updatedAt = now
}

// SetVisibility flips the public/private listing; the cross-field profile
// override in ResolveVisibility reacts at read time.
func (o *Order) SetVisibility(v Visibility, now time.Time) error {
	if !v.IsValid() {
		return errs.Mark(ErrInvalidVisibility, errs.ErrDomainValidation)
	}
	o.visibility = v
	o.updatedAt = now
	return nil
}

func (o *Order) SetParticipantFlags(f ParticipantFlags, now time.Time) {
	o.participantFlags = f
	o.updatedAt = now
}
