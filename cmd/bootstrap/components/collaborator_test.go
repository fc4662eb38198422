//go:build unit

package components_test

import (
	"testing"

	"partage/cmd/bootstrap/components"
	"partage/internal/infra/events"
	"partage/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func TestNewEventPublisher(t *testing.T) {
	t.Run("no brokers configured yields the no-op publisher", func(t *testing.T) {
		cfg := config.NewTestConfig()
		cfg.Kafka.Brokers = nil

		pub := components.NewEventPublisher(fxtest.NewLifecycle(t), cfg)
		assert.IsType(t, events.NopPublisher{}, pub)
	})

	t.Run("configured brokers yield the kafka publisher", func(t *testing.T) {
		cfg := config.NewTestConfig()
		cfg.Kafka.Brokers = []string{"localhost:9092"}
		cfg.Kafka.Topic = "partage.order-events"

		pub := components.NewEventPublisher(fxtest.NewLifecycle(t), cfg)
		assert.IsType(t, &events.KafkaPublisher{}, pub)
	})
}

func TestNewGeocoder(t *testing.T) {
	t.Run("builds without redis using the in-memory cache", func(t *testing.T) {
		cfg := config.NewTestConfig()
		cfg.Redis.Addr = ""
		cfg.Engine.GeocodeCacheCap = 8

		g := components.NewGeocoder(cfg, nil)
		require.NotNil(t, g)
	})
}
