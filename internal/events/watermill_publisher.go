package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// WatermillPublisher adapts a watermill publisher to EventPublisher.
// Every event goes to a single topic; consumers filter on the type field.
type WatermillPublisher struct {
	publisher message.Publisher
	topic     string
}

// NewGoChannelPublisher returns an in-process publisher. This is the
// default transport; it keeps the event path alive without any broker.
func NewGoChannelPublisher(topic string, logger *slog.Logger) *WatermillPublisher {
	pub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 256},
		watermill.NewSlogLogger(logger),
	)
	return &WatermillPublisher{publisher: pub, topic: topic}
}

// NewKafkaPublisher returns a Kafka-backed publisher for deployments that
// share events across services.
func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) (*WatermillPublisher, error) {
	pub, err := kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:   brokers,
			Marshaler: kafka.DefaultMarshaler{},
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("creating kafka publisher: %w", err)
	}
	return &WatermillPublisher{publisher: pub, topic: topic}, nil
}

func (p *WatermillPublisher) Publish(_ context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling event %s: %w", event.Type, err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.Metadata.Set("event_type", event.Type)
	msg.Metadata.Set("source", event.Source)

	if err := p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("publishing event %s: %w", event.Type, err)
	}
	return nil
}

func (p *WatermillPublisher) Close() error {
	return p.publisher.Close()
}
