package queries

import (
	"context"
	"math"
	"strings"

	"partage/internal/pkg/errs"
	"partage/internal/usecase/shared"

	"github.com/google/uuid"
)

type EligibilityResult struct {
	Eligible   bool
	DistanceKm float64
	RadiusKm   float64
}

type EligibilityQueries interface {
	// CheckDeliveryEligibility reports whether an address falls inside the
	// producer's delivery zone. Geocoding failures fail closed.
	CheckDeliveryEligibility(ctx context.Context, producerID uuid.UUID, address string) (*EligibilityResult, error)
}

type eligibilityQueries struct {
	catalog  shared.Catalog
	geocoder shared.Geocoder
}

func NewEligibilityQueries(catalog shared.Catalog, geocoder shared.Geocoder) EligibilityQueries {
	return &eligibilityQueries{catalog: catalog, geocoder: geocoder}
}

func (q *eligibilityQueries) CheckDeliveryEligibility(ctx context.Context, producerID uuid.UUID, address string) (*EligibilityResult, error) {
	if strings.TrimSpace(address) == "" {
		return nil, errs.ErrIncompleteAddress
	}

	zone, err := q.catalog.ProducerZone(ctx, producerID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrCatalogUnavailable)
	}
	coords, err := q.geocoder.Resolve(ctx, address)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrGeocodingFailed)
	}

	dist := haversineKm(zone.Lat, zone.Lon, coords.Lat, coords.Lon)
	return &EligibilityResult{
		Eligible:   dist <= zone.RadiusKm,
		DistanceKm: dist,
		RadiusKm:   zone.RadiusKm,
	}, nil
}

const earthRadiusKm = 6371.0

func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLon := (lon2 - lon1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}
