package notifications

import (
	"context"
	"fmt"
	"time"

	"fittrack/pkg/logger"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

// ActivityProducer publishes activity events to Kafka.
type ActivityProducer interface {
	Publish(ctx context.Context, event *ActivityEvent) error
	Close() error
}

// KafkaProducerConfig contains configuration for the Kafka activity producer.
type KafkaProducerConfig struct {
	Brokers          []string
	ActivityTopic    string
	RetryMax         int
	TimeoutMs        int
	RequiredAcks     sarama.RequiredAcks
	CompressionType  sarama.CompressionCodec
	IdempotentWrites bool
	MaxMessageBytes  int
}

// DefaultKafkaProducerConfig returns a default producer configuration.
func DefaultKafkaProducerConfig() *KafkaProducerConfig {
	return &KafkaProducerConfig{
		Brokers:          []string{"localhost:9092"},
		ActivityTopic:    "activity-events",
		RetryMax:         3,
		TimeoutMs:        10000,
		RequiredAcks:     sarama.WaitForAll,
		CompressionType:  sarama.CompressionSnappy,
		IdempotentWrites: true,
		MaxMessageBytes:  1000000, // 1MB
	}
}

// KafkaActivityProducer handles publishing activity events to Kafka.
type KafkaActivityProducer struct {
	producer sarama.SyncProducer
	config   *KafkaProducerConfig
	logger   *logger.Logger
}

func NewKafkaActivityProducer(config *KafkaProducerConfig, log *logger.Logger) (*KafkaActivityProducer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.CompressionType
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = config.IdempotentWrites
	saramaConfig.Producer.MaxMessageBytes = config.MaxMessageBytes

	if config.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	// Hash partitioner keeps each user's events on one partition
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &KafkaActivityProducer{
		producer: producer,
		config:   config,
		logger:   log,
	}, nil
}

func (p *KafkaActivityProducer) Publish(ctx context.Context, event *ActivityEvent) error {
	messageBytes, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal activity event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     p.config.ActivityTopic,
		Key:       sarama.StringEncoder(event.GetPartitionKey()),
		Value:     sarama.ByteEncoder(messageBytes),
		Headers:   p.createHeaders(event),
		Timestamp: event.CreatedAt,
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send activity event to Kafka: %w", err)
	}

	p.logger.InfoWithContext(ctx, "Activity event published", map[string]interface{}{
		"topic":     p.config.ActivityTopic,
		"partition": partition,
		"offset":    offset,
		"type":      string(event.Type),
		"user_id":   event.UserID.String(),
	})

	return nil
}

func (p *KafkaActivityProducer) createHeaders(event *ActivityEvent) []sarama.RecordHeader {
	return []sarama.RecordHeader{
		{Key: []byte("event_id"), Value: []byte(event.ID.String())},
		{Key: []byte("event_type"), Value: []byte(event.Type)},
		{Key: []byte("user_id"), Value: []byte(event.UserID.String())},
		{Key: []byte("producer"), Value: []byte("fittrack-api")},
		{Key: []byte("created_at"), Value: []byte(event.CreatedAt.Format(time.RFC3339))},
	}
}

func (p *KafkaActivityProducer) Close() error {
	if p.producer != nil {
		if err := p.producer.Close(); err != nil {
			return fmt.Errorf("failed to close Kafka producer: %w", err)
		}
	}
	return nil
}

// ActivityPublisher adapts the raw producer to the publish methods the
// domain services depend on.
type ActivityPublisher struct {
	producer ActivityProducer
}

func NewActivityPublisher(producer ActivityProducer) *ActivityPublisher {
	return &ActivityPublisher{producer: producer}
}

func (p *ActivityPublisher) PublishWorkoutCompleted(ctx context.Context, userID, workoutID, name string, calories int) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}
	event := NewActivityEvent(EventWorkoutCompleted, uid, map[string]interface{}{
		"workout_id": workoutID,
		"name":       name,
		"calories":   calories,
	})
	return p.producer.Publish(ctx, event)
}

func (p *ActivityPublisher) PublishHabitMilestone(ctx context.Context, userID, habitID uuid.UUID, name string, streak int) error {
	event := NewActivityEvent(EventHabitMilestone, userID, map[string]interface{}{
		"habit_id": habitID.String(),
		"name":     name,
		"streak":   streak,
	})
	return p.producer.Publish(ctx, event)
}

func (p *ActivityPublisher) PublishOrderPlaced(ctx context.Context, userID, orderID uuid.UUID, totalCents int64) error {
	event := NewActivityEvent(EventOrderPlaced, userID, map[string]interface{}{
		"order_id":    orderID.String(),
		"total_cents": totalCents,
	})
	return p.producer.Publish(ctx, event)
}
