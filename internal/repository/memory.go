package repository

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/tm-acme-shop/acme-shop-admin-console/internal/errors"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/models"
)

const defaultAuditCapacity = 500

type memoryDraft struct {
	data      []byte
	expiresAt time.Time
}

// MemoryDraftStore keeps sessions in process. Sessions are stored encoded
// so callers never share state with the store. Expired sessions are swept
// on every Save.
type MemoryDraftStore struct {
	mu     sync.Mutex
	drafts map[string]memoryDraft
	ttl    time.Duration
	now    func() time.Time
}

// NewMemoryDraftStore creates an in-process draft store. A zero TTL falls
// back to the same default as the Redis store.
func NewMemoryDraftStore(ttl time.Duration) *MemoryDraftStore {
	if ttl <= 0 {
		ttl = defaultDraftTTL
	}
	return &MemoryDraftStore{
		drafts: make(map[string]memoryDraft),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Get returns the session or ErrDraftNotFound when it is missing or expired.
func (s *MemoryDraftStore) Get(ctx context.Context, id string) (*DraftSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[id]
	if !ok {
		return nil, errors.ErrDraftNotFound
	}
	if !s.now().Before(d.expiresAt) {
		delete(s.drafts, id)
		return nil, errors.ErrDraftNotFound
	}

	var session DraftSession
	if err := json.Unmarshal(d.data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Save stores the session and restarts its TTL.
func (s *MemoryDraftStore) Save(ctx context.Context, session *DraftSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)
	s.drafts[session.ID] = memoryDraft{data: data, expiresAt: now.Add(s.ttl)}
	return nil
}

// Delete removes the session. Deleting a missing session is not an error.
func (s *MemoryDraftStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
	return nil
}

// Len reports how many sessions are held, expired or not.
func (s *MemoryDraftStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drafts)
}

// sweep drops expired sessions. Callers hold mu.
func (s *MemoryDraftStore) sweep(now time.Time) {
	for id, d := range s.drafts {
		if !now.Before(d.expiresAt) {
			delete(s.drafts, id)
		}
	}
}

// MemoryAuditLog keeps the most recent entries in process.
type MemoryAuditLog struct {
	mu       sync.Mutex
	entries  []models.AuditEntry
	capacity int
	nextID   int64
}

// NewMemoryAuditLog keeps at most capacity entries; zero or less uses the
// default capacity.
func NewMemoryAuditLog(capacity int) *MemoryAuditLog {
	if capacity <= 0 {
		capacity = defaultAuditCapacity
	}
	return &MemoryAuditLog{capacity: capacity}
}

// Record assigns the next id and drops the oldest entry past capacity.
func (l *MemoryAuditLog) Record(ctx context.Context, entry *models.AuditEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	entry.ID = l.nextID
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	l.entries = append(l.entries, copyEntry(*entry))
	if len(l.entries) > l.capacity {
		l.entries = l.entries[len(l.entries)-l.capacity:]
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (l *MemoryAuditLog) Recent(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if limit <= 0 || limit > len(l.entries) {
		limit = len(l.entries)
	}
	out := make([]models.AuditEntry, 0, limit)
	for i := len(l.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, copyEntry(l.entries[i]))
	}
	return out, nil
}

func copyEntry(e models.AuditEntry) models.AuditEntry {
	if e.Detail != nil {
		detail := make(map[string]string, len(e.Detail))
		for k, v := range e.Detail {
			detail[k] = v
		}
		e.Detail = detail
	}
	return e
}
