package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

// retryBackoff spaces out reconnect attempts when the brokers are down
const retryBackoff = 5 * time.Second

// MessageHandler defines the interface for handling consumed messages
type MessageHandler interface {
	// HandleMessage processes a Kafka message and returns whether to mark it as processed
	// If shouldMark is false, the message will not be marked (allowing retry)
	HandleMessage(ctx context.Context, message []byte) (shouldMark bool, err error)
}

// Consumer handles Kafka message consumption with pluggable message handling
type Consumer struct {
	consumer sarama.ConsumerGroup
	handler  MessageHandler
	topic    string
	groupID  string
	ready    chan bool
	backoff  time.Duration
	logger   *zap.Logger
}

// ConsumerConfig holds Kafka consumer configuration
type ConsumerConfig struct {
	Brokers []string
	Topic   string
	GroupID string
	Handler MessageHandler
	Logger  *zap.Logger
}

// NewConsumer creates a new Kafka consumer
func NewConsumer(config ConsumerConfig) (*Consumer, error) {
	if config.Handler == nil {
		return nil, errors.New("kafka consumer requires a handler")
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_6_0_0
	saramaConfig.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Return.Errors = true

	client, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		consumer: client,
		handler:  config.Handler,
		topic:    config.Topic,
		groupID:  config.GroupID,
		ready:    make(chan bool),
		backoff:  retryBackoff,
		logger:   logger,
	}, nil
}

// Start begins consuming messages and returns once the first session is set up
func (c *Consumer) Start(ctx context.Context) error {
	handler := &consumerGroupHandler{
		messageHandler: c.handler,
		ready:          c.ready,
		logger:         c.logger,
	}

	go func() {
		for {
			if err := c.consumer.Consume(ctx, []string{c.topic}, handler); err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, sarama.ErrClosedConsumerGroup) {
					c.logger.Info("Kafka consumer stopped")
					return
				}
				c.logger.Error("Kafka consume failed", zap.Error(err))
				select {
				case <-time.After(c.backoff):
				case <-ctx.Done():
					return
				}
			}

			if ctx.Err() != nil {
				return
			}
			// Only a session that ran Setup used up the ready channel
			select {
			case <-handler.ready:
				handler.ready = make(chan bool)
			default:
			}
		}
	}()

	select {
	case <-c.ready:
	case <-ctx.Done():
		return ctx.Err()
	}
	c.logger.Info("Kafka consumer started", zap.String("group", c.groupID), zap.String("topic", c.topic))

	// Handle errors
	go func() {
		for err := range c.consumer.Errors() {
			c.logger.Error("Kafka consumer error", zap.Error(err))
		}
	}()

	return nil
}

// Close gracefully shuts down the consumer
func (c *Consumer) Close() error {
	c.logger.Info("Closing Kafka consumer")
	return c.consumer.Close()
}

// consumerGroupHandler implements sarama.ConsumerGroupHandler
type consumerGroupHandler struct {
	messageHandler MessageHandler
	ready          chan bool
	logger         *zap.Logger
}

// Setup is run at the beginning of a new session, before ConsumeClaim
func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error {
	close(h.ready)
	return nil
}

// Cleanup is run at the end of a session, once all ConsumeClaim goroutines have exited
func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim must start a consumer loop of ConsumerGroupClaim's Messages()
func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}

			h.logger.Debug("Received Kafka message",
				zap.Int32("partition", message.Partition),
				zap.Int64("offset", message.Offset),
				zap.ByteString("key", message.Key))

			shouldMark, err := h.messageHandler.HandleMessage(session.Context(), message.Value)
			if err != nil {
				h.logger.Warn("Failed to handle message", zap.Error(err))
			}
			if shouldMark {
				session.MarkMessage(message, "")
			}

		case <-session.Context().Done():
			return nil
		}
	}
}

// TypedMessageHandler is a generic helper that decodes JSON messages into T
type TypedMessageHandler[T any] struct {
	// Validate checks if the message should be processed
	Validate func(msg *T) bool
	// Process handles the actual message processing
	Process func(ctx context.Context, msg *T) error
	// AlwaysMark determines if messages should be marked even on validation failure
	AlwaysMark bool
}

// HandleMessage implements MessageHandler interface
func (h *TypedMessageHandler[T]) HandleMessage(ctx context.Context, message []byte) (bool, error) {
	var msg T
	if err := json.Unmarshal(message, &msg); err != nil {
		return h.AlwaysMark, nil // Mark to skip invalid messages
	}

	if h.Validate != nil && !h.Validate(&msg) {
		return h.AlwaysMark, nil
	}

	if err := h.Process(ctx, &msg); err != nil {
		return false, err // Don't mark - allow retry
	}

	return true, nil
}
