package kafka

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/IBM/sarama"

	"courier-admin/internal/logx"
	"courier-admin/internal/service/ingest"
)

// HandleFunc processes a single ingest.Event from Kafka
type HandleFunc func(context.Context, ingest.Event) error

var newConsumerGroup = sarama.NewConsumerGroup

const defaultRetryDelay = time.Second

// Consumer wraps a Sarama consumer group and dispatches events to a handler
type Consumer struct {
	group      sarama.ConsumerGroup
	topic      string
	handler    HandleFunc
	logger     logx.Logger
	retryDelay time.Duration
}

// NewConsumer creates a new Kafka consumer. It returns nil, nil when kafka is not configured.
func NewConsumer(logger logx.Logger, brokers []string, groupID, topic string, h HandleFunc) (*Consumer, error) {
	// no brokers or topic means nothing to consume
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" || strings.TrimSpace(groupID) == "" {
		return nil, nil
	}

	cfg := sarama.NewConfig()
	cfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	cfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}

	group, err := newConsumerGroup(brokers, groupID, cfg)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		group:      group,
		topic:      topic,
		handler:    h,
		logger:     logger,
		retryDelay: defaultRetryDelay,
	}, nil
}

// Run consumes until ctx is cancelled
func (c *Consumer) Run(ctx context.Context) error {
	if c == nil {
		return nil
	}

	h := &groupHandler{c: c}

	for {
		if err := c.group.Consume(ctx, []string{c.topic}, h); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Warn("kafka consume error", logx.String("topic", c.topic), logx.Err(err))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.retryDelay):
			}
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// Close leaves the consumer group
func (c *Consumer) Close() error {
	if c == nil {
		return nil
	}
	return c.group.Close()
}

type groupHandler struct{ c *Consumer }

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim marks bad and permanently failing messages; a retryable failure
// ends the claim without marking so the message is delivered again.
func (h *groupHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case <-sess.Context().Done():
			return nil
		case msg, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			if err := h.handle(sess.Context(), msg); err != nil {
				return err
			}
			sess.MarkMessage(msg, "")
		}
	}
}

func (h *groupHandler) handle(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var dto ShipmentCreatedDTO
	if err := json.Unmarshal(msg.Value, &dto); err != nil {
		h.c.logger.Warn("kafka bad json",
			logx.Int64("offset", msg.Offset),
			logx.Err(err),
		)
		return nil
	}

	ev := ToDomain(dto)
	if ev.TrackingNumber == "" {
		h.c.logger.Warn("kafka empty tracking_number", logx.Int64("offset", msg.Offset))
		return nil
	}

	err := h.c.handler(ctx, ev)
	switch {
	case err == nil:
		return nil
	case IsPermanent(err):
		h.c.logger.Warn("kafka permanent failure, skipping message",
			logx.String("tracking_number", ev.TrackingNumber),
			logx.Err(err),
		)
		return nil
	default:
		h.c.logger.Error("kafka handle failed, will retry",
			logx.String("tracking_number", ev.TrackingNumber),
			logx.Err(err),
		)
		return err
	}
}
