package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/config"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/logging"
)

// AuditHandler receives each decoded audit event.
type AuditHandler func(ctx context.Context, event *AuditEvent) error

// AuditConsumer follows the audit topic.
type AuditConsumer struct {
	reader  *kafka.Reader
	handler AuditHandler
	logger  *logging.LoggerV2
	stopCh  chan struct{}
}

// NewAuditConsumer creates a consumer on the audit topic in the configured group.
func NewAuditConsumer(cfg config.KafkaConfig, handler AuditHandler, logger *logging.LoggerV2) *AuditConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.AuditTopic,
		GroupID:  cfg.ConsumerGroup,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  time.Second,
	})

	return &AuditConsumer{
		reader:  reader,
		handler: handler,
		logger:  logger,
		stopCh:  make(chan struct{}),
	}
}

// Start consumes until ctx is done or Stop is called.
func (c *AuditConsumer) Start(ctx context.Context) error {
	c.logger.Info("Starting audit consumer")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.stopCh:
			c.logger.Info("Audit consumer stopped")
			return nil
		default:
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				c.logger.Error("Failed to read message", logging.Fields{"error": err.Error()})
				continue
			}

			c.handleMessage(ctx, msg)
		}
	}
}

// Stop stops the consumer.
func (c *AuditConsumer) Stop() {
	close(c.stopCh)
	c.reader.Close()
}

func (c *AuditConsumer) handleMessage(ctx context.Context, msg kafka.Message) {
	c.logger.Debug("Received message", logging.Fields{
		"topic":     msg.Topic,
		"partition": msg.Partition,
		"offset":    msg.Offset,
	})

	var event AuditEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		c.logger.Error("Failed to unmarshal event", logging.Fields{"error": err.Error()})
		return
	}
	if event.Type == "" {
		c.logger.Debug("Ignoring event without type", logging.Fields{"event_id": event.ID})
		return
	}

	if err := c.handler(ctx, &event); err != nil {
		c.logger.Error("Failed to handle audit event", logging.Fields{
			"event_id":   event.ID,
			"event_type": string(event.Type),
			"error":      err.Error(),
		})
	}
}
