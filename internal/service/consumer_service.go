package service

import (
	"context"
	"encoding/json"

	"ai-storefront-be/internal/dto"
	"ai-storefront-be/internal/pkg/logger"
	"ai-storefront-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	forwarder  events.Publisher
	logger     logger.ILogger
}

// NewConsumerService reads chat events from the in-process bus. When forwarder
// is nil events are only logged.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	forwarder events.Publisher,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		forwarder:  forwarder,
		logger:     logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.ChatEventMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("EVENTS", "Failed to unmarshal chat event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack() // never retry a malformed payload
		return
	}

	cs.logger.Info("EVENTS", "Chat message processed", map[string]interface{}{
		"user_id":       payload.UserId,
		"intent":        payload.Intent,
		"response_type": payload.ResponseType,
		"product_count": payload.ProductCount,
		"has_error":     payload.HasError,
		"duration_ms":   payload.DurationMs,
	})

	if cs.forwarder == nil {
		msg.Ack()
		return
	}

	evt := events.BaseEvent{
		Type: events.ChatMessageProcessed,
		Data: map[string]interface{}{
			"user_id":       payload.UserId,
			"intent":        payload.Intent,
			"response_type": payload.ResponseType,
			"product_count": payload.ProductCount,
			"has_error":     payload.HasError,
			"duration_ms":   payload.DurationMs,
			"occurred_at":   payload.OccurredAt,
		},
		OccurredAt: payload.OccurredAt,
	}
	if err := cs.forwarder.Publish(ctx, evt); err != nil {
		// Dropped rather than redelivered in a tight loop while the bus is down.
		cs.logger.Warn("EVENTS", "Failed to forward chat event", map[string]interface{}{
			"error": err.Error(),
		})
	}
	msg.Ack()
}
