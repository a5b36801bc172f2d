package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/phrazzld/wordsmith-api/internal/config"
)

const (
	// publishTimeout bounds a single write to the brokers.
	publishTimeout = 5 * time.Second
	// publishBatchTimeout caps how long a write waits for a batch to fill.
	// Each request publishes one event, so batches are flushed at one message.
	publishBatchTimeout = 10 * time.Millisecond
)

// messageWriter is the subset of *kafka.Writer used by KafkaPublisher.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher is an EventHandler that writes each event as JSON to a
// Kafka topic, keyed by event type.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
	logger *slog.Logger
}

var _ EventHandler = (*KafkaPublisher)(nil)

// NewKafkaPublisher creates a publisher for the configured brokers and topic.
func NewKafkaPublisher(cfg config.EventsConfig, logger *slog.Logger) *KafkaPublisher {
	return newKafkaPublisher(newKafkaWriter(cfg), cfg.KafkaTopic, logger)
}

func newKafkaWriter(cfg config.EventsConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchSize:              1,
		BatchTimeout:           publishBatchTimeout,
		AllowAutoTopicCreation: true,
	}
}

func newKafkaPublisher(writer messageWriter, topic string, logger *slog.Logger) *KafkaPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &KafkaPublisher{
		writer: writer,
		topic:  topic,
		logger: logger.With("component", "kafka_publisher"),
	}
}

// HandleEvent implements EventHandler.
func (p *KafkaPublisher) HandleEvent(ctx context.Context, event *Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.Type),
		Value: data,
		Time:  event.CreatedAt,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.ID.String())},
		},
	}

	writeCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := p.writer.WriteMessages(writeCtx, msg); err != nil {
		p.logger.Error("failed to publish event",
			"error", err,
			"event_id", event.ID,
			"event_type", event.Type,
			"topic", p.topic)
		return fmt.Errorf("kafka: write failed: %w", err)
	}

	p.logger.Debug("published event",
		"event_id", event.ID,
		"event_type", event.Type,
		"topic", p.topic)
	return nil
}

// Close flushes pending writes and releases the broker connections.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
