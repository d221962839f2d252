package service

import (
	"context"
	"encoding/json"
	"time"

	"vetscribe-be/internal/dto"
	"vetscribe-be/internal/pkg/logger"
	"vetscribe-be/pkg/events"
	"vetscribe-be/pkg/metrics"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// EventForwarder ships events off-process (NATS in production).
type EventForwarder interface {
	Publish(ctx context.Context, event events.Event) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	metrics    *metrics.Metrics
	eventLog   logger.ILogger
	logger     logger.ILogger
	forwarder  EventForwarder
}

// NewConsumerService wires the generation event consumer. forwarder may be nil.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	m *metrics.Metrics,
	eventLog logger.ILogger,
	log logger.ILogger,
	forwarder EventForwarder,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		metrics:    m,
		eventLog:   eventLog,
		logger:     log,
		forwarder:  forwarder,
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
	// Events are best-effort: always Ack, a bad message must not be redelivered forever
	defer msg.Ack()

	var payload dto.GenerationEventMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("EventConsumer", "Failed to unmarshal generation event", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	cs.metrics.GenerationTotal.WithLabelValues(payload.Kind, payload.Mode, payload.Outcome, payload.Source).Inc()
	cs.metrics.GenerationDuration.WithLabelValues(payload.Kind, payload.Source).
		Observe((time.Duration(payload.DurationMs) * time.Millisecond).Seconds())

	cs.eventLog.Info("EventConsumer", "Generation completed", payload.Payload())

	if cs.forwarder == nil {
		return
	}
	event := events.NewBaseEvent(events.TypeGenerationCompleted, payload.Payload(), payload.OccurredAt)
	if err := cs.forwarder.Publish(ctx, event); err != nil {
		cs.logger.Warn("EventConsumer", "Failed to forward generation event", map[string]interface{}{
			"event_id": payload.EventId,
			"error":    err.Error(),
		})
	}
}
