package events

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/config"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/logging"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/middleware"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/models"
)

var (
	_ Publisher = (*KafkaPublisher)(nil)
	_ Publisher = (*MockPublisher)(nil)
	_ Publisher = NoopPublisher{}
)

// EventType is the audit action carried by an event.
type EventType = models.AuditAction

// Publisher emits console audit events.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, order *models.Order) error
	PublishOrderStatusChanged(ctx context.Context, order *models.Order, previousStatus models.OrderStatus) error
	PublishOrderDeleted(ctx context.Context, order *models.Order) error
	PublishAudit(ctx context.Context, entry *models.AuditEntry) error
	Close() error
}

// AuditEvent is the message value written to the audit topic.
type AuditEvent struct {
	ID            string            `json:"id"`
	Type          EventType         `json:"type"`
	Resource      string            `json:"resource"`
	ResourceID    int64             `json:"resource_id"`
	Data          json.RawMessage   `json:"data,omitempty"`
	Metadata      map[string]string `json:"metadata"`
	Timestamp     time.Time         `json:"timestamp"`
	CorrelationID string            `json:"correlation_id,omitempty"`
}

// KafkaPublisher publishes audit events to Kafka.
type KafkaPublisher struct {
	writer *kafka.Writer
	topic  string
	logger *logging.LoggerV2
}

// NewKafkaPublisher creates a new Kafka-based event publisher.
func NewKafkaPublisher(cfg config.KafkaConfig, logger *logging.LoggerV2) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.AuditTopic,
		Balancer:     &kafka.Hash{},
		WriteTimeout: cfg.WriteTimeout,
		RequiredAcks: kafka.RequireOne,
	}

	return &KafkaPublisher{
		writer: writer,
		topic:  cfg.AuditTopic,
		logger: logger,
	}
}

func (p *KafkaPublisher) PublishOrderCreated(ctx context.Context, order *models.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return p.publish(ctx, NewEvent(ctx, models.AuditOrderCreated, "order", order.ID, data))
}

func (p *KafkaPublisher) PublishOrderStatusChanged(ctx context.Context, order *models.Order, previousStatus models.OrderStatus) error {
	p.logger.Debug("Publishing order status changed event", logging.Fields{
		"order_id":        order.ID,
		"previous_status": string(previousStatus),
		"new_status":      string(order.Status),
	})

	payload := struct {
		Order          *models.Order      `json:"order"`
		PreviousStatus models.OrderStatus `json:"previous_status"`
		NewStatus      models.OrderStatus `json:"new_status"`
	}{
		Order:          order,
		PreviousStatus: previousStatus,
		NewStatus:      order.Status,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.publish(ctx, NewEvent(ctx, models.AuditOrderStatusChanged, "order", order.ID, data))
}

func (p *KafkaPublisher) PublishOrderDeleted(ctx context.Context, order *models.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return p.publish(ctx, NewEvent(ctx, models.AuditOrderDeleted, "order", order.ID, data))
}

// PublishAudit publishes a user or product change.
func (p *KafkaPublisher) PublishAudit(ctx context.Context, entry *models.AuditEntry) error {
	data, err := json.Marshal(entry.Detail)
	if err != nil {
		return err
	}
	event := NewEvent(ctx, entry.Action, entry.Resource, entry.ResourceID, data)
	if entry.RequestID != "" {
		event.CorrelationID = entry.RequestID
	}
	return p.publish(ctx, event)
}

// NewEvent builds an event, taking the correlation id from the request.
func NewEvent(ctx context.Context, eventType EventType, resource string, resourceID int64, data []byte) *AuditEvent {
	return &AuditEvent{
		ID:            uuid.New().String(),
		Type:          eventType,
		Resource:      resource,
		ResourceID:    resourceID,
		Data:          data,
		Metadata:      map[string]string{"source": "admin-console"},
		Timestamp:     time.Now().UTC(),
		CorrelationID: middleware.RequestIDFromContext(ctx),
	}
}

// Message encodes the event, keyed by resource so one record's events stay
// on one partition.
func (e *AuditEvent) Message() (kafka.Message, error) {
	value, err := json.Marshal(e)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(e.Resource + ":" + strconv.FormatInt(e.ResourceID, 10)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(e.Type)},
			{Key: "event_id", Value: []byte(e.ID)},
		},
	}, nil
}

func (p *KafkaPublisher) publish(ctx context.Context, event *AuditEvent) error {
	msg, err := event.Message()
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish event", logging.Fields{
			"event_id":    event.ID,
			"event_type":  string(event.Type),
			"resource_id": event.ResourceID,
			"error":       err.Error(),
		})
		return err
	}

	p.logger.Info("Event published", logging.Fields{
		"event_id":    event.ID,
		"event_type":  string(event.Type),
		"resource_id": event.ResourceID,
	})
	return nil
}

// Close closes the Kafka writer.
func (p *KafkaPublisher) Close() error {
	p.logger.Info("Closing Kafka publisher")
	return p.writer.Close()
}

// NoopPublisher drops every event. Used when audit events are disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderCreated(context.Context, *models.Order) error { return nil }
func (NoopPublisher) PublishOrderStatusChanged(context.Context, *models.Order, models.OrderStatus) error {
	return nil
}
func (NoopPublisher) PublishOrderDeleted(context.Context, *models.Order) error { return nil }
func (NoopPublisher) PublishAudit(context.Context, *models.AuditEntry) error { return nil }
func (NoopPublisher) Close() error { return nil }

// MockPublisher is a mock implementation for testing.
type MockPublisher struct {
	mu     sync.Mutex
	Events []*AuditEvent
	Err    error
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{Events: make([]*AuditEvent, 0)}
}

func (m *MockPublisher) record(ctx context.Context, t EventType, resource string, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Events = append(m.Events, NewEvent(ctx, t, resource, id, nil))
	return nil
}

func (m *MockPublisher) PublishOrderCreated(ctx context.Context, order *models.Order) error {
	return m.record(ctx, models.AuditOrderCreated, "order", order.ID)
}

func (m *MockPublisher) PublishOrderStatusChanged(ctx context.Context, order *models.Order, previousStatus models.OrderStatus) error {
	return m.record(ctx, models.AuditOrderStatusChanged, "order", order.ID)
}

func (m *MockPublisher) PublishOrderDeleted(ctx context.Context, order *models.Order) error {
	return m.record(ctx, models.AuditOrderDeleted, "order", order.ID)
}

func (m *MockPublisher) PublishAudit(ctx context.Context, entry *models.AuditEntry) error {
	return m.record(ctx, entry.Action, entry.Resource, entry.ResourceID)
}

func (m *MockPublisher) Close() error { return nil }

// Types returns the published event types in order.
func (m *MockPublisher) Types() []EventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]EventType, 0, len(m.Events))
	for _, e := range m.Events {
		out = append(out, e.Type)
	}
	return out
}
