// Package pricing is the single source of truth for the settlement formulas.
// Every caller (order creation, offer freezing, ledger rebuild) goes through
// here; the breakdown is never re-derived anywhere else.
package pricing

import (
	"errors"
	"math"
)

var (
	ErrNegativePrice    = errors.New("price cannot be negative")
	ErrInvalidSharerPct = errors.New("sharer percentage must be in [0, 100)")
)

// UnitPrice is a per-unit price breakdown in minor currency units. Once
// frozen onto an offer it is immutable.
type UnitPrice struct {
	BaseCents     int64
	DeliveryCents int64
	SharerCents   int64
	FinalCents    int64
}

// DeliveryFeePerKg apportions the order-level delivery total over the
// effective weight. Zero effective weight yields zero, not a division error.
func DeliveryFeePerKg(deliveryTotalCents int64, effectiveWeightKg float64) float64 {
	if effectiveWeightKg == 0 {
		return 0
	}
	return float64(deliveryTotalCents) / effectiveWeightKg
}

// SharerShareFraction returns pct/(100-pct) for 0 < pct < 100, else 0.
// The gross-up makes the sharer fee approximate pct% of the final price
// rather than a flat pct of cost. Deliberate business policy; do not
// replace with pct/100.
func SharerShareFraction(pct int) float64 {
	if pct <= 0 || pct >= 100 {
		return 0
	}
	return float64(pct) / float64(100-pct)
}

// UnitBreakdown computes the frozen per-unit breakdown. Rounding is applied
// at each intermediate step, in this exact order, so that totals are
// reproducible across callers.
func UnitBreakdown(baseCents int64, unitWeightKg, effectiveWeightKg float64, deliveryTotalCents int64, sharerPct int) (UnitPrice, error) {
	if baseCents < 0 {
		return UnitPrice{}, ErrNegativePrice
	}
	if sharerPct < 0 || sharerPct >= 100 {
		return UnitPrice{}, ErrInvalidSharerPct
	}

	feePerKg := DeliveryFeePerKg(deliveryTotalCents, effectiveWeightKg)
	unitDelivery := int64(math.Round(feePerKg * unitWeightKg))
	basePlusDelivery := baseCents + unitDelivery
	unitSharer := int64(math.Round(float64(basePlusDelivery) * SharerShareFraction(sharerPct)))

	return UnitPrice{
		BaseCents:     baseCents,
		DeliveryCents: unitDelivery,
		SharerCents:   unitSharer,
		FinalCents:    basePlusDelivery + unitSharer,
	}, nil
}
