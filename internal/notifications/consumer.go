package notifications

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fittrack/pkg/logger"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

// FeedWriter materializes activity events as feed posts.
type FeedWriter interface {
	WriteActivityPost(ctx context.Context, userID uuid.UUID, content string) error
}

// UserDirectory resolves user contact details for email delivery.
type UserDirectory interface {
	GetUserEmail(ctx context.Context, userID uuid.UUID) (string, error)
}

type ActivityConsumer interface {
	StartConsumers(ctx context.Context, numWorkers int) error
	Stop() error
}

type ConsumerConfig struct {
	Brokers              []string
	GroupID              string
	Topics               []string
	SessionTimeoutMs     int
	HeartbeatMs          int
	RetryBackoffMs       int
	MaxProcessingTime    time.Duration
	AutoCommit           bool
	OffsetOldest         bool
	MaxRetries           int
	RetryBackoffDuration time.Duration
}

func DefaultConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:              []string{"localhost:9092"},
		GroupID:              "fittrack-activity-workers",
		Topics:               []string{"activity-events"},
		SessionTimeoutMs:     30000,
		HeartbeatMs:          3000,
		RetryBackoffMs:       100,
		MaxProcessingTime:    5 * time.Minute,
		AutoCommit:           true,
		OffsetOldest:         false,
		MaxRetries:           3,
		RetryBackoffDuration: time.Second,
	}
}

type KafkaActivityConsumer struct {
	consumerGroup sarama.ConsumerGroup
	config        *ConsumerConfig
	feedWriter    FeedWriter
	directory     UserDirectory
	emailService  EmailService
	logger        *logger.Logger
	topics        []string
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}

func NewKafkaActivityConsumer(config *ConsumerConfig, feedWriter FeedWriter, directory UserDirectory, emailService EmailService, log *logger.Logger) (*KafkaActivityConsumer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Consumer.Group.Session.Timeout = time.Duration(config.SessionTimeoutMs) * time.Millisecond
	saramaConfig.Consumer.Group.Heartbeat.Interval = time.Duration(config.HeartbeatMs) * time.Millisecond
	saramaConfig.Consumer.Retry.Backoff = time.Duration(config.RetryBackoffMs) * time.Millisecond
	saramaConfig.Consumer.MaxProcessingTime = config.MaxProcessingTime
	saramaConfig.Consumer.Return.Errors = true

	if config.OffsetOldest {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	}

	if config.AutoCommit {
		saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
		saramaConfig.Consumer.Offsets.AutoCommit.Interval = 1 * time.Second
	}

	consumerGroup, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &KafkaActivityConsumer{
		consumerGroup: consumerGroup,
		config:        config,
		feedWriter:    feedWriter,
		directory:     directory,
		emailService:  emailService,
		logger:        log,
		topics:        config.Topics,
		ctx:           ctx,
		cancel:        cancel,
	}, nil
}

func (c *KafkaActivityConsumer) StartConsumers(ctx context.Context, numWorkers int) error {
	c.logger.Info("Starting activity consumer workers",
		"workers", numWorkers, "topics", c.topics)

	go c.handleErrors()

	for i := 0; i < numWorkers; i++ {
		c.wg.Add(1)
		go func(workerID int) {
			defer c.wg.Done()
			c.runWorker(workerID)
		}(i)
	}

	return nil
}

func (c *KafkaActivityConsumer) runWorker(workerID int) {
	handler := &activityGroupHandler{
		consumer: c,
		workerID: workerID,
	}

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
			if err := c.consumerGroup.Consume(c.ctx, c.topics, handler); err != nil {
				c.logger.Error("Consumer worker error", "worker", workerID, "error", err.Error())
				time.Sleep(time.Second)
			}
		}
	}
}

func (c *KafkaActivityConsumer) handleErrors() {
	for err := range c.consumerGroup.Errors() {
		c.logger.Error("Consumer group error", "error", err.Error())
	}
}

func (c *KafkaActivityConsumer) Stop() error {
	c.cancel()
	c.wg.Wait()

	if err := c.consumerGroup.Close(); err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}
	return nil
}

type activityGroupHandler struct {
	consumer *KafkaActivityConsumer
	workerID int
}

func (h *activityGroupHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *activityGroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *activityGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}

			if err := h.processMessage(session.Context(), message); err != nil {
				h.consumer.logger.Error("Error processing activity event",
					"worker", h.workerID, "error", err.Error())
			}
			// Mark regardless: a poison message should not wedge the partition
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}

func (h *activityGroupHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	event, err := ActivityEventFromJSON(message.Value)
	if err != nil {
		return fmt.Errorf("failed to unmarshal activity event: %w", err)
	}

	switch event.Type {
	case EventWorkoutCompleted, EventHabitMilestone:
		return h.executeWithRetry(ctx, func() error {
			return h.consumer.feedWriter.WriteActivityPost(ctx, event.UserID, renderFeedContent(event))
		})
	case EventOrderPlaced:
		return h.executeWithRetry(ctx, func() error {
			return h.sendOrderEmail(ctx, event)
		})
	default:
		h.consumer.logger.Warn("Unknown activity event type, skipping",
			"type", string(event.Type), "event_id", event.ID.String())
		return nil
	}
}

func (h *activityGroupHandler) sendOrderEmail(ctx context.Context, event *ActivityEvent) error {
	if h.consumer.emailService == nil {
		return nil
	}

	email, err := h.consumer.directory.GetUserEmail(ctx, event.UserID)
	if err != nil {
		return fmt.Errorf("failed to resolve user email: %w", err)
	}

	subject := "Your order is confirmed"
	body := fmt.Sprintf("Thanks for your order! Order %s for a total of $%.2f has been confirmed.",
		event.PayloadString("order_id"),
		float64(event.PayloadInt("total_cents"))/100)

	return h.consumer.emailService.Send(ctx, email, subject, body)
}

func (h *activityGroupHandler) executeWithRetry(ctx context.Context, fn func() error) error {
	maxRetries := h.consumer.config.MaxRetries
	backoff := h.consumer.config.RetryBackoffDuration

	var err error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err = fn(); err == nil {
			return nil
		}

		if attempt == maxRetries {
			break
		}

		// Exponential backoff
		delay := backoff * time.Duration(1<<attempt)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

// renderFeedContent turns an activity event into the post body shown on the
// social feed.
func renderFeedContent(event *ActivityEvent) string {
	switch event.Type {
	case EventWorkoutCompleted:
		name := event.PayloadString("name")
		calories := event.PayloadInt("calories")
		if calories > 0 {
			return fmt.Sprintf("Completed a workout: %s (%d kcal burned)", name, calories)
		}
		return fmt.Sprintf("Completed a workout: %s", name)
	case EventHabitMilestone:
		return fmt.Sprintf("Hit a %d-day streak on %q!", event.PayloadInt("streak"), event.PayloadString("name"))
	default:
		return ""
	}
}
