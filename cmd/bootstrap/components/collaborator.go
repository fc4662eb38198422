package components

import (
	"context"

	"partage/internal/infra/catalog"
	"partage/internal/infra/events"
	"partage/internal/infra/geocode"
	"partage/internal/infra/payment"
	"partage/internal/pkg/config"
	"partage/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var CollaboratorModule = fx.Module("collaborator",
	fx.Provide(
		fx.Annotate(
			NewCatalogClient,
			fx.As(new(shared.Catalog)),
		),
		fx.Annotate(
			NewGeocoder,
			fx.As(new(shared.Geocoder)),
		),
		fx.Annotate(
			NewPaymentGateway,
			fx.As(new(shared.PaymentGateway)),
		),
		NewEventPublisher,
	),
)

func NewCatalogClient(cfg config.Config) *catalog.Client {
	return catalog.NewClient(cfg.Collaborate)
}

func NewGeocoder(cfg config.Config, rdb *redis.Client) *geocode.CachedGeocoder {
	direct := geocode.NewClient(cfg.Collaborate)

	var cache geocode.Cache
	if cfg.Redis.Addr == "" {
		cache = geocode.NewMemoryCache(cfg.Engine.GeocodeCacheCap)
	} else {
		cache = geocode.NewRedisCache(rdb, cfg.Engine.GeocodeCacheTTL)
	}
	return geocode.NewCachedGeocoder(direct, cache)
}

func NewPaymentGateway(cfg config.Config) *payment.Client {
	return payment.NewClient(cfg.Collaborate)
}

// NewEventPublisher yields the kafka publisher, or the no-op publisher when
// no broker is configured.
func NewEventPublisher(lc fx.Lifecycle, cfg config.Config) shared.EventPublisher {
	if len(cfg.Kafka.Brokers) == 0 {
		return events.NopPublisher{}
	}

	publisher := events.NewKafkaPublisher(cfg.Kafka)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})

	return publisher
}
