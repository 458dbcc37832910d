package notifications

import (
	"context"
	"fmt"
	"sync"

	"fittrack/internal/shared/config"
	"fittrack/pkg/logger"
)

// ActivityService owns the Kafka producer, the consumer workers, and email
// delivery for the activity pipeline.
type ActivityService struct {
	config    *config.Config
	producer  ActivityProducer
	consumer  ActivityConsumer
	publisher *ActivityPublisher
	logger    *logger.Logger

	isRunning bool
	mu        sync.Mutex
}

// NewActivityService wires the pipeline. Email is optional: without SMTP
// configuration, order events simply skip the receipt.
func NewActivityService(cfg *config.Config, feedWriter FeedWriter, directory UserDirectory, log *logger.Logger) (*ActivityService, error) {
	if !cfg.Kafka.Enabled {
		return nil, fmt.Errorf("activity pipeline is disabled")
	}

	producerConfig := DefaultKafkaProducerConfig()
	producerConfig.Brokers = cfg.Kafka.Brokers
	producerConfig.ActivityTopic = cfg.Kafka.ActivityTopic

	producer, err := NewKafkaActivityProducer(producerConfig, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create activity producer: %w", err)
	}

	var emailService EmailService
	if cfg.Email.SMTPHost != "" {
		smtp, err := NewSMTPEmailService(NewSMTPConfig(cfg.Email))
		if err != nil {
			log.Warn("SMTP configuration invalid, order receipts disabled", "error", err.Error())
		} else {
			emailService = smtp
		}
	}

	consumerConfig := DefaultConsumerConfig()
	consumerConfig.Brokers = cfg.Kafka.Brokers
	consumerConfig.Topics = []string{cfg.Kafka.ActivityTopic}
	consumerConfig.GroupID = cfg.Kafka.GroupID

	consumer, err := NewKafkaActivityConsumer(consumerConfig, feedWriter, directory, emailService, log)
	if err != nil {
		producer.Close()
		return nil, fmt.Errorf("failed to create activity consumer: %w", err)
	}

	return &ActivityService{
		config:    cfg,
		producer:  producer,
		consumer:  consumer,
		publisher: NewActivityPublisher(producer),
		logger:    log,
	}, nil
}

// Publisher exposes the domain-facing publish methods for wiring into the
// workout, habit, and shop services.
func (s *ActivityService) Publisher() *ActivityPublisher {
	return s.publisher
}

func (s *ActivityService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("activity service is already running")
	}

	if err := s.consumer.StartConsumers(ctx, s.config.Kafka.NumWorkers); err != nil {
		return fmt.Errorf("failed to start consumers: %w", err)
	}

	s.isRunning = true
	s.logger.Info("Activity service started",
		"topic", s.config.Kafka.ActivityTopic, "workers", s.config.Kafka.NumWorkers)
	return nil
}

func (s *ActivityService) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	if err := s.consumer.Stop(); err != nil {
		s.logger.Error("Error stopping activity consumer", "error", err.Error())
	}
	if err := s.producer.Close(); err != nil {
		s.logger.Error("Error closing activity producer", "error", err.Error())
	}

	s.isRunning = false
	s.logger.Info("Activity service stopped")
	return nil
}
