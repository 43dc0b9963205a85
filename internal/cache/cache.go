package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/neexbeast/dokoiko/internal/selection"
)

// DefaultTTL is how long an idle draw session is kept.
const DefaultTTL = time.Hour

// SessionStore keeps draw sessions in Redis, one JSON value per session.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore constructs a SessionStore. A non-positive ttl uses DefaultTTL.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SessionStore{client: client, ttl: ttl}
}

func key(id string) string {
	return "draw:" + strings.ToLower(strings.TrimSpace(id))
}

// Get loads a session. Returns nil, nil when it does not exist or expired.
func (s *SessionStore) Get(ctx context.Context, id string) (*selection.Session, error) {
	val, err := s.client.Get(ctx, key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("session get %s: %w", id, err)
	}

	var sess selection.Session
	if err := json.Unmarshal(val, &sess); err != nil {
		return nil, fmt.Errorf("unmarshaling session %s: %w", id, err)
	}
	return &sess, nil
}

// Set stores a session and refreshes its TTL.
func (s *SessionStore) Set(ctx context.Context, sess *selection.Session) error {
	if sess == nil {
		return nil
	}

	b, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshaling session %s: %w", sess.ID, err)
	}

	if err := s.client.Set(ctx, key(sess.ID), b, s.ttl).Err(); err != nil {
		return fmt.Errorf("session set %s: %w", sess.ID, err)
	}
	return nil
}

// Delete removes a session.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("session delete %s: %w", id, err)
	}
	return nil
}
