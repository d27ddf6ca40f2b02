package repository

import (
	"context"
	"time"

	"github.com/tm-acme-shop/acme-shop-admin-console/internal/editor"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/models"
)

// Ensure implementations satisfy their interfaces.
var (
	_ DraftStore = (*MemoryDraftStore)(nil)
	_ DraftStore = (*RedisDraftStore)(nil)
	_ AuditLog   = (*MemoryAuditLog)(nil)
	_ AuditLog   = (*PostgresAuditLog)(nil)
)

// DraftSession is an editor kept between requests.
type DraftSession struct {
	ID        string          `json:"id"`
	Snapshot  editor.Snapshot `json:"snapshot"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// DraftStore holds draft sessions. Get returns errors.ErrDraftNotFound for a
// missing or expired session; stores hand out copies.
type DraftStore interface {
	Get(ctx context.Context, id string) (*DraftSession, error)
	Save(ctx context.Context, session *DraftSession) error
	Delete(ctx context.Context, id string) error
}

// AuditLog records successful operator mutations.
type AuditLog interface {
	Record(ctx context.Context, entry *models.AuditEntry) error
	Recent(ctx context.Context, limit int) ([]models.AuditEntry, error)
}
