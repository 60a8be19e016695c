// Package eventbus provides the in-process publish/subscribe bus used for sync notifications.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// EventBus publishes and subscribes to topics.
type EventBus interface {
	message.Publisher
	message.Subscriber
	// PublishJSON marshals payload into a new message and publishes it on topic.
	PublishJSON(ctx context.Context, topic string, payload any) error
}

// eventBus implements EventBus over a watermill GoChannel.
type eventBus struct {
	pubsub *gochannel.GoChannel
	logger *slog.Logger
}

// NewEventBus creates an in-memory EventBus. Subscribers joining after a publish do not see it.
func NewEventBus(logger *slog.Logger) EventBus {
	if logger == nil {
		logger = slog.Default()
	}
	pubsub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 64,
	}, watermill.NewSlogLogger(logger))

	return &eventBus{pubsub: pubsub, logger: logger}
}

func (eb *eventBus) Publish(topic string, msgs ...*message.Message) error {
	for _, msg := range msgs {
		if msg.UUID == "" {
			msg.UUID = watermill.NewUUID()
		}
		eb.logger.Debug("Publishing message",
			slog.String("topic", topic),
			slog.String("message_id", msg.UUID),
		)
	}
	if err := eb.pubsub.Publish(topic, msgs...); err != nil {
		eb.logger.Error("Failed to publish message", slog.String("topic", topic), slog.Any("error", err))
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

func (eb *eventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	eb.logger.Info("Subscribing to topic", slog.String("topic", topic))
	return eb.pubsub.Subscribe(ctx, topic)
}

func (eb *eventBus) PublishJSON(ctx context.Context, topic string, payload any) error {
	msg, err := NewJSONMessage(ctx, payload)
	if err != nil {
		return err
	}
	return eb.Publish(topic, msg)
}

func (eb *eventBus) Close() error {
	return eb.pubsub.Close()
}

// NewJSONMessage encodes payload as a watermill message carrying ctx.
func NewJSONMessage(ctx context.Context, payload any) (*message.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.SetContext(ctx)
	return msg, nil
}

// NewRouter creates a watermill router logging through logger.
func NewRouter(logger *slog.Logger) (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create router: %w", err)
	}
	return router, nil
}

// Handle registers a typed consumer for topic on router. The payload is JSON-decoded into T;
// a decoding failure drops the message after logging it.
func Handle[T any](router *message.Router, bus EventBus, logger *slog.Logger, name, topic string, fn func(ctx context.Context, payload *T) error) {
	router.AddNoPublisherHandler(name, topic, bus, func(msg *message.Message) error {
		payload := new(T)
		if err := json.Unmarshal(msg.Payload, payload); err != nil {
			logger.Error("Dropping undecodable message",
				slog.String("handler", name),
				slog.String("message_id", msg.UUID),
				slog.Any("error", err),
			)
			return nil
		}
		return fn(msg.Context(), payload)
	})
}
