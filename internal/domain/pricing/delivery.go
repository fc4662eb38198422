package pricing

import "math"

// DeliveryMode selects how the order-level delivery total is derived.
type DeliveryMode string

const (
	// ModeCourier uses the platform courier weight-banded cost curve.
	ModeCourier DeliveryMode = "courier"
	// ModeProducerDelivery is a flat fee configured on the order.
	ModeProducerDelivery DeliveryMode = "producer_delivery"
	// ModeProducerPickup is a flat fee for producer-arranged pickup.
	ModeProducerPickup DeliveryMode = "producer_pickup"
)

func (m DeliveryMode) IsValid() bool {
	switch m {
	case ModeCourier, ModeProducerDelivery, ModeProducerPickup:
		return true
	default:
		return false
	}
}

// courier curve constants, in whole currency units
const (
	courierFloorUnits = 15
	courierRoundUnits = 5
)

// CourierDeliveryFeeCents is the platform-courier cost curve:
// max(15, 5*round((7+8*sqrt(weightKg))/5)) whole units, returned in cents.
func CourierDeliveryFeeCents(weightKg float64) int64 {
	if weightKg < 0 {
		weightKg = 0
	}
	banded := courierRoundUnits * math.Round((7+8*math.Sqrt(weightKg))/courierRoundUnits)
	units := math.Max(courierFloorUnits, banded)
	return int64(units) * 100
}

// DeliveryFeeTotalCents derives the order-level delivery total for a mode.
// Flat-fee modes ignore weight entirely.
func DeliveryFeeTotalCents(mode DeliveryMode, effectiveWeightKg float64, flatFeeCents int64) int64 {
	if mode == ModeCourier {
		return CourierDeliveryFeeCents(effectiveWeightKg)
	}
	return flatFeeCents
}
