package service

import (
	"context"
	"strconv"
	"time"

	"github.com/tm-acme-shop/acme-shop-admin-console/internal/events"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/logging"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/middleware"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/models"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/repository"
)

// Auditor records successful mutations in the audit log and on the event
// stream. Failures are logged and never fail the mutation itself.
type Auditor struct {
	log       repository.AuditLog
	publisher events.Publisher
	logger    *logging.LoggerV2
}

// NewAuditor accepts nil for either sink.
func NewAuditor(log repository.AuditLog, publisher events.Publisher, logger *logging.LoggerV2) *Auditor {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &Auditor{log: log, publisher: publisher, logger: logger}
}

func (a *Auditor) OrderCreated(ctx context.Context, order *models.Order) {
	a.record(ctx, models.AuditOrderCreated, "order", order.ID, map[string]string{
		"userId": strconv.FormatInt(order.UserID, 10),
		"items":  strconv.Itoa(len(order.Items)),
	})
	a.published(ctx, order.ID, a.publisher.PublishOrderCreated(ctx, order))
}

func (a *Auditor) OrderStatusChanged(ctx context.Context, order *models.Order, previous models.OrderStatus) {
	a.record(ctx, models.AuditOrderStatusChanged, "order", order.ID, map[string]string{
		"from": string(previous),
		"to":   string(order.Status),
	})
	a.published(ctx, order.ID, a.publisher.PublishOrderStatusChanged(ctx, order, previous))
}

func (a *Auditor) OrderDeleted(ctx context.Context, order *models.Order) {
	a.record(ctx, models.AuditOrderDeleted, "order", order.ID, map[string]string{
		"status": string(order.Status),
	})
	a.published(ctx, order.ID, a.publisher.PublishOrderDeleted(ctx, order))
}

// Catalog records a user or product change.
func (a *Auditor) Catalog(ctx context.Context, action models.AuditAction, resource string, id int64) {
	entry := a.record(ctx, action, resource, id, nil)
	a.published(ctx, id, a.publisher.PublishAudit(ctx, entry))
}

// Recent returns the latest entries, or none when no audit log is wired.
func (a *Auditor) Recent(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	if a == nil || a.log == nil {
		return []models.AuditEntry{}, nil
	}
	return a.log.Recent(ctx, limit)
}

func (a *Auditor) record(ctx context.Context, action models.AuditAction, resource string, id int64, detail map[string]string) *models.AuditEntry {
	entry := &models.AuditEntry{
		Action:     action,
		Resource:   resource,
		ResourceID: id,
		RequestID:  middleware.RequestIDFromContext(ctx),
		Detail:     detail,
		CreatedAt:  time.Now().UTC(),
	}
	if a.log == nil {
		return entry
	}
	if err := a.log.Record(ctx, entry); err != nil {
		a.logger.Error("Failed to write audit entry", logging.Fields{
			"action":      string(action),
			"resource_id": id,
			"error":       err.Error(),
		})
	}
	return entry
}

func (a *Auditor) published(ctx context.Context, id int64, err error) {
	if err != nil {
		a.logger.Warn("Failed to publish audit event", logging.Fields{
			"resource_id": id,
			"request_id":  middleware.RequestIDFromContext(ctx),
			"error":       err.Error(),
		})
	}
}
