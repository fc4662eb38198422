package events

import (
	"context"
	"encoding/json"

	"partage/internal/pkg/config"
	"partage/internal/pkg/errs"
	"partage/internal/usecase/shared"

	"github.com/segmentio/kafka-go"
)

// KafkaPublisher mirrors lifecycle transitions to a kafka topic keyed by
// order ID so per-order ordering is preserved across partitions.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(cfg config.KafkaConfig) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

var _ shared.EventPublisher = (*KafkaPublisher)(nil)

func (p *KafkaPublisher) PublishOrderEvent(ctx context.Context, evt shared.OrderEvent) error {
	value, err := json.Marshal(evt)
	if err != nil {
		return errs.Wrap(err, "failed to marshal order event")
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(evt.OrderID.String()),
		Value: value,
		Time:  evt.OccurredAt,
	})
	if err != nil {
		return errs.Wrap(err, "failed to write order event")
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher discards events. Deployments without a configured broker get
// this instead of a kafka writer.
type NopPublisher struct{}

var _ shared.EventPublisher = NopPublisher{}

func (NopPublisher) PublishOrderEvent(context.Context, shared.OrderEvent) error { return nil }
