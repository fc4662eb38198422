package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Collaborator ports. These services are asynchronous relative to the
// engine: calls never run inside the pricing/ledger transaction, and a
// failure surfaces as an external-service error without corrupting state.

// ProductSnapshot is the read-only catalog view of a product.
type ProductSnapshot struct {
	ID                   uuid.UUID
	Name                 string
	Category             string
	PackagingLabel       string
	DeclaredUnitWeightKg *float64
	CategoryDefaultKg    float64
}

// LotSnapshot is the current sellable priced batch of a product. At most one
// lot per product is active at a time.
type LotSnapshot struct {
	ID             uuid.UUID
	ProductID      uuid.UUID
	PriceCents     int64
	RemainingStock int
}

// ProducerZone is the producer's configured delivery area.
type ProducerZone struct {
	Lat      float64
	Lon      float64
	RadiusKm float64
}

// Catalog is the read-only inventory oracle. The engine never mutates
// catalog data; it only writes reservations against lots in its own store.
type Catalog interface {
	Product(ctx context.Context, id uuid.UUID) (*ProductSnapshot, error)
	ActiveLot(ctx context.Context, productID uuid.UUID) (*LotSnapshot, error)
	ProducerZone(ctx context.Context, producerID uuid.UUID) (*ProducerZone, error)
}

type Coordinates struct {
	Lat float64
	Lon float64
}

// Geocoder resolves free-text addresses; consumed only to gate
// delivery-zone eligibility, never part of the money math.
type Geocoder interface {
	Resolve(ctx context.Context, address string) (Coordinates, error)
}

type ChargeRequest struct {
	PaymentID     uuid.UUID
	ParticipantID uuid.UUID
	AmountCents   int64
}

// PaymentGateway accepts a charge request and later reports paid/failed via
// the confirmation command. The engine supplies only the prior participant
// total.
type PaymentGateway interface {
	Charge(ctx context.Context, req ChargeRequest) (externalRef string, err error)
}

// OrderEvent mirrors a lifecycle transition for downstream consumers. It is
// advisory: emitted after commit, never load-bearing for consistency.
type OrderEvent struct {
	OrderID    uuid.UUID `json:"order_id"`
	Code       string    `json:"code"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, evt OrderEvent) error
}
