package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cinebook/internal/bookings"
	"cinebook/pkg/logger"

	"github.com/IBM/sarama"
)

// UserDirectory resolves a user ID to the address confirmations go to.
// Implemented by an adapter over the auth repository.
type UserDirectory interface {
	GetEmailByID(ctx context.Context, userID string) (string, error)
}

type Consumer interface {
	Start(ctx context.Context) error
	Stop() error
}

type ConsumerConfig struct {
	Brokers       []string
	GroupID       string
	BookingsTopic string
}

func DefaultConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:       []string{"localhost:9092"},
		GroupID:       "cinebook-notification-workers",
		BookingsTopic: "booking-confirmations",
	}
}

type kafkaConsumer struct {
	group     sarama.ConsumerGroup
	config    *ConsumerConfig
	emailer   Emailer
	directory UserDirectory
	cancel    context.CancelFunc
}

func NewConsumer(config *ConsumerConfig, emailer Emailer, directory UserDirectory) (Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Session.Timeout = 30 * time.Second
	saramaConfig.Consumer.Group.Heartbeat.Interval = 3 * time.Second
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Offsets.AutoCommit.Interval = time.Second
	saramaConfig.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &kafkaConsumer{
		group:     group,
		config:    config,
		emailer:   emailer,
		directory: directory,
	}, nil
}

func (c *kafkaConsumer) Start(ctx context.Context) error {
	ctx, c.cancel = context.WithCancel(ctx)

	go func() {
		for err := range c.group.Errors() {
			logger.Error("consumer group error", "error", err)
		}
	}()

	go func() {
		handler := &confirmationHandler{emailer: c.emailer, directory: c.directory}
		for {
			if err := c.group.Consume(ctx, []string{c.config.BookingsTopic}, handler); err != nil {
				logger.Error("consume failed", "error", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	logger.Info("notification consumer started", "topic", c.config.BookingsTopic, "group", c.config.GroupID)
	return nil
}

func (c *kafkaConsumer) Stop() error {
	if c.cancel != nil {
		c.cancel()
	}
	return c.group.Close()
}

type confirmationHandler struct {
	emailer   Emailer
	directory UserDirectory
}

func (h *confirmationHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *confirmationHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *confirmationHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		h.handle(session.Context(), message)
		session.MarkMessage(message, "")
	}
	return nil
}

func (h *confirmationHandler) handle(ctx context.Context, message *sarama.ConsumerMessage) {
	var event bookings.BookingConfirmedEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		logger.Error("failed to decode booking event", "error", err, "offset", message.Offset)
		return
	}

	email, err := h.directory.GetEmailByID(ctx, event.UserID)
	if err != nil {
		logger.Error("failed to resolve recipient", "user_id", event.UserID, "error", err)
		return
	}

	if err := h.emailer.SendBookingConfirmation(email, &event); err != nil {
		logger.Error("failed to send confirmation", "booking_id", event.BookingID, "error", err)
	}
}
