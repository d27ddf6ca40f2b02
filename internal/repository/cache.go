package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/config"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/errors"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/logging"
)

const (
	draftKeyPrefix  = "console:draft:"
	defaultDraftTTL = 30 * time.Minute
)

// RedisDraftStore implements DraftStore using Redis. Each session is a
// JSON value under its own key and expires after the TTL.
type RedisDraftStore struct {
	client redis.UniversalClient
	ttl    time.Duration
	logger *logging.LoggerV2
}

// NewRedisDraftStore creates a new Redis-based draft store.
func NewRedisDraftStore(cfg config.RedisConfig, ttl time.Duration, logger *logging.LoggerV2) *RedisDraftStore {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return NewRedisDraftStoreWithClient(client, ttl, logger)
}

// NewRedisDraftStoreWithClient wraps an existing client. A zero TTL uses
// the default.
func NewRedisDraftStoreWithClient(client redis.UniversalClient, ttl time.Duration, logger *logging.LoggerV2) *RedisDraftStore {
	if ttl <= 0 {
		ttl = defaultDraftTTL
	}
	return &RedisDraftStore{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Ping checks the connection, used by readiness probes.
func (s *RedisDraftStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Get returns the session or ErrDraftNotFound when the key is gone.
func (s *RedisDraftStore) Get(ctx context.Context, id string) (*DraftSession, error) {
	data, err := s.client.Get(ctx, draftKeyPrefix+id).Bytes()
	if err == redis.Nil {
		s.logger.Debug("Draft miss", logging.Fields{"draft_id": id})
		return nil, errors.ErrDraftNotFound
	}
	if err != nil {
		s.logger.Error("Draft get error", logging.Fields{
			"draft_id": id,
			"error":    err.Error(),
		})
		return nil, err
	}

	var session DraftSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Save stores the session and restarts its TTL.
func (s *RedisDraftStore) Save(ctx context.Context, session *DraftSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, draftKeyPrefix+session.ID, data, s.ttl).Err(); err != nil {
		s.logger.Error("Draft set error", logging.Fields{
			"draft_id": session.ID,
			"error":    err.Error(),
		})
		return err
	}

	s.logger.Debug("Draft stored", logging.Fields{
		"draft_id": session.ID,
		"ttl":      s.ttl.String(),
	})
	return nil
}

// Delete removes the session. Deleting a missing session is not an error.
func (s *RedisDraftStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, draftKeyPrefix+id).Err(); err != nil {
		s.logger.Error("Draft delete error", logging.Fields{
			"draft_id": id,
			"error":    err.Error(),
		})
		return err
	}
	return nil
}

// Close releases the client.
func (s *RedisDraftStore) Close() error {
	return s.client.Close()
}
