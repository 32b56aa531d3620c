package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"credit-conveyor/internal/notification"
)

// Handler processes one consumed workflow notification.
type Handler func(ctx context.Context, msg notification.Message) error

// Consumer wraps a kafka-go reader for one topic.
type Consumer struct {
	reader  *kafkago.Reader
	handler Handler
	log     *logrus.Logger
}

// NewConsumer creates a Consumer for the given topic with the provided handler.
func NewConsumer(brokers []string, group, topic string, handler Handler, log *logrus.Logger) *Consumer {
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  group,
		MinBytes: 1,
		MaxBytes: 10 * 1024 * 1024, // 10 MB
	})
	return &Consumer{reader: r, handler: handler, log: log}
}

// Start consumes until the context is canceled. Messages whose handler
// fails are not committed and will be redelivered.
func (c *Consumer) Start(ctx context.Context) error {
	c.log.WithFields(logrus.Fields{
		"topic": c.reader.Config().Topic,
		"group": c.reader.Config().GroupID,
	}).Info("consumer starting")

	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				c.log.WithField("topic", c.reader.Config().Topic).Info("consumer stopping")
				return nil
			}
			return fmt.Errorf("fetching message: %w", err)
		}

		var msg notification.Message
		if err := json.Unmarshal(m.Value, &msg); err != nil {
			c.log.WithFields(logrus.Fields{
				"topic":  m.Topic,
				"offset": m.Offset,
			}).WithError(err).Error("malformed notification, skipping")
			_ = c.reader.CommitMessages(ctx, m)
			continue
		}

		if err := c.handler(ctx, msg); err != nil {
			c.log.WithFields(logrus.Fields{
				"topic":     m.Topic,
				"partition": m.Partition,
				"offset":    m.Offset,
			}).WithError(err).Error("handler error")
			continue
		}

		if err := c.reader.CommitMessages(ctx, m); err != nil {
			c.log.WithFields(logrus.Fields{
				"topic":     m.Topic,
				"partition": m.Partition,
				"offset":    m.Offset,
			}).WithError(err).Error("commit error")
		}
	}
}

// Close closes the reader.
func (c *Consumer) Close() error {
	if err := c.reader.Close(); err != nil {
		return fmt.Errorf("closing kafka reader: %w", err)
	}
	return nil
}
