package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/tm-acme-shop/acme-shop-admin-console/internal/logging"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/models"
)

const defaultAuditLimit = 50

const createAuditTable = `
	CREATE TABLE IF NOT EXISTS console_audit_log (
		id          BIGSERIAL PRIMARY KEY,
		action      TEXT        NOT NULL,
		resource    TEXT        NOT NULL,
		resource_id BIGINT      NOT NULL,
		request_id  TEXT,
		detail      JSONB,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// PostgresAuditLog implements AuditLog using PostgreSQL.
type PostgresAuditLog struct {
	db     *sql.DB
	logger *logging.LoggerV2
}

// NewPostgresAuditLog creates a new PostgreSQL audit log.
func NewPostgresAuditLog(db *sql.DB, logger *logging.LoggerV2) *PostgresAuditLog {
	return &PostgresAuditLog{
		db:     db,
		logger: logger,
	}
}

// Migrate creates the audit table when it does not exist.
func (r *PostgresAuditLog) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createAuditTable); err != nil {
		r.logger.Error("Failed to create audit table", logging.Fields{"error": err.Error()})
		return err
	}
	return nil
}

func (r *PostgresAuditLog) Record(ctx context.Context, entry *models.AuditEntry) error {
	detail, err := encodeDetail(entry.Detail)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO console_audit_log (action, resource, resource_id, request_id, detail)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err = r.db.QueryRowContext(ctx, query,
		string(entry.Action),
		entry.Resource,
		entry.ResourceID,
		nullString(entry.RequestID),
		detail,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to record audit entry", logging.Fields{
			"action":      string(entry.Action),
			"resource_id": entry.ResourceID,
			"error":       err.Error(),
		})
		return err
	}

	r.logger.Debug("Audit entry recorded", logging.Fields{
		"audit_id": entry.ID,
		"action":   string(entry.Action),
	})
	return nil
}

// Recent returns up to limit entries, newest first.
func (r *PostgresAuditLog) Recent(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	if limit <= 0 {
		limit = defaultAuditLimit
	}

	query := `
		SELECT id, action, resource, resource_id, request_id, detail, created_at
		FROM console_audit_log
		ORDER BY id DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		r.logger.Error("Failed to list audit entries", logging.Fields{"error": err.Error()})
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.AuditEntry, 0)
	for rows.Next() {
		var entry models.AuditEntry
		var action string
		var requestID sql.NullString
		var detail []byte

		if err := rows.Scan(
			&entry.ID,
			&action,
			&entry.Resource,
			&entry.ResourceID,
			&requestID,
			&detail,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}

		entry.Action = models.AuditAction(action)
		if requestID.Valid {
			entry.RequestID = requestID.String
		}
		if entry.Detail, err = decodeDetail(detail); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func encodeDetail(detail map[string]string) (interface{}, error) {
	if len(detail) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(detail)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func decodeDetail(data []byte) (map[string]string, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var detail map[string]string
	if err := json.Unmarshal(data, &detail); err != nil {
		return nil, err
	}
	return detail, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
