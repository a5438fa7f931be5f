package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"matchday/pkg/logger"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

// BookingEventType identifies the lifecycle transition carried by a message
type BookingEventType string

const (
	BookingCreated   BookingEventType = "booking.created"
	BookingUpdated   BookingEventType = "booking.updated"
	BookingCancelled BookingEventType = "booking.cancelled"
)

// BookingEvent is the wire payload published for every booking
// lifecycle transition. Messages are keyed by event ID so all activity
// for one event lands on the same partition.
type BookingEvent struct {
	ID          uuid.UUID        `json:"id"`
	Type        BookingEventType `json:"type"`
	BookingID   uuid.UUID        `json:"booking_id"`
	UserID      uuid.UUID        `json:"user_id"`
	EventID     uuid.UUID        `json:"event_id"`
	TotalAmount float64          `json:"total_amount"`
	OccurredAt  time.Time        `json:"occurred_at"`
}

// Publisher defines the contract for publishing booking lifecycle events
type Publisher interface {
	Publish(ctx context.Context, event BookingEvent) error
	HealthCheck(ctx context.Context) error
	Close() error
}

// Config contains configuration for the Kafka booking event publisher
type Config struct {
	Brokers      []string
	Topic        string
	RetryMax     int
	Timeout      time.Duration
	RequiredAcks sarama.RequiredAcks
	Compression  sarama.CompressionCodec
	Idempotent   bool
}

// DefaultConfig returns a default publisher configuration
func DefaultConfig(brokers []string, topic string) *Config {
	return &Config{
		Brokers:      brokers,
		Topic:        topic,
		RetryMax:     3,
		Timeout:      10 * time.Second,
		RequiredAcks: sarama.WaitForAll,
		Compression:  sarama.CompressionSnappy,
		Idempotent:   true,
	}
}

type kafkaPublisher struct {
	producer sarama.SyncProducer
	config   *Config
	log      *logger.Logger
}

// NewKafkaPublisher creates a synchronous Kafka publisher for booking events
func NewKafkaPublisher(config *Config) (Publisher, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.Compression
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = config.Timeout
	saramaConfig.Producer.Idempotent = config.Idempotent
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	if config.Idempotent {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &kafkaPublisher{
		producer: producer,
		config:   config,
		log:      logger.GetDefault(),
	}, nil
}

func (p *kafkaPublisher) Publish(ctx context.Context, event BookingEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.config.Topic,
		Key:   sarama.StringEncoder(event.EventID.String()),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.Type)},
			{Key: []byte("booking_id"), Value: []byte(event.BookingID.String())},
			{Key: []byte("occurred_at"), Value: []byte(event.OccurredAt.Format(time.RFC3339))},
		},
		Timestamp: event.OccurredAt,
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send booking event to Kafka: %w", err)
	}

	p.log.Info("booking event published",
		"topic", p.config.Topic,
		"partition", partition,
		"offset", offset,
		"type", string(event.Type),
		"booking_id", event.BookingID.String(),
	)

	return nil
}

func (p *kafkaPublisher) HealthCheck(ctx context.Context) error {
	if p.producer == nil {
		return fmt.Errorf("kafka producer is nil")
	}
	if p.config.Topic == "" {
		return fmt.Errorf("bookings topic not configured")
	}
	return nil
}

func (p *kafkaPublisher) Close() error {
	if p.producer != nil {
		if err := p.producer.Close(); err != nil {
			return fmt.Errorf("failed to close Kafka producer: %w", err)
		}
	}
	return nil
}

// noopPublisher is used when Kafka is disabled in configuration
type noopPublisher struct{}

// NewNoopPublisher returns a publisher that drops every event
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(ctx context.Context, event BookingEvent) error { return nil }
func (noopPublisher) HealthCheck(ctx context.Context) error                 { return nil }
func (noopPublisher) Close() error                                          { return nil }
