package models

import "time"

// AuditAction names an operator mutation that succeeded at the backend.
type AuditAction string

const (
	AuditOrderCreated       AuditAction = "order.created"
	AuditOrderStatusChanged AuditAction = "order.status_changed"
	AuditOrderDeleted       AuditAction = "order.deleted"
	AuditUserCreated        AuditAction = "user.created"
	AuditUserUpdated        AuditAction = "user.updated"
	AuditUserDeleted        AuditAction = "user.deleted"
	AuditProductCreated     AuditAction = "product.created"
	AuditProductUpdated     AuditAction = "product.updated"
	AuditProductDeleted     AuditAction = "product.deleted"
)

type AuditEntry struct {
	ID         int64             `json:"id,omitempty"`
	Action     AuditAction       `json:"action"`
	Resource   string            `json:"resource"`
	ResourceID int64             `json:"resourceId"`
	RequestID  string            `json:"requestId,omitempty"`
	Detail     map[string]string `json:"detail,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
}
