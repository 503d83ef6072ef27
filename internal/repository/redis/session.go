package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sriaruvi/storefront/internal/domain"
	apperrors "github.com/sriaruvi/storefront/pkg/errors"
)

const keyPrefix = "session:"

// SessionStore implements repository.SessionStore using Redis. Tokens expire
// through Redis TTLs; there is no separate reaper.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a new Redis-backed session store.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Save persists a session under its token with the given lifetime.
func (s *SessionStore) Save(ctx context.Context, session *domain.Session, ttl time.Duration) error {
	key := keyPrefix + session.Token

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}

	return nil
}

// Get retrieves a session by token. Unknown or expired tokens return a
// not-found error.
func (s *SessionStore) Get(ctx context.Context, token string) (*domain.Session, error) {
	key := keyPrefix + token

	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("session", token)
		}
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	return &session, nil
}

// Delete removes a session by token. Deleting an unknown token is a no-op.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}
	return nil
}
