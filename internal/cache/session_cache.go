package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tawsila/internal/models"
)

// ErrSessionCacheMiss covers both absent keys and entries that failed to
// decode. Callers fall back to the database either way.
var ErrSessionCacheMiss = errors.New("session not in cache")

// SessionCache mirrors session rows in redis so the auth middleware can
// validate tokens without a database round trip on every request. The
// database stays the source of truth; a corrupt mirror entry is deleted and
// reported as a miss rather than surfaced as an error.
type SessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionCache(client *redis.Client, ttl time.Duration) *SessionCache {
	return &SessionCache{client: client, ttl: ttl}
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

func (c *SessionCache) Get(ctx context.Context, id string) (models.Session, error) {
	raw, err := c.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.Session{}, ErrSessionCacheMiss
		}
		return models.Session{}, fmt.Errorf("session cache get: %w", err)
	}

	session, err := decodeSession(raw)
	if err != nil {
		_ = c.client.Del(ctx, sessionKey(id)).Err()
		return models.Session{}, ErrSessionCacheMiss
	}
	return session, nil
}

func (c *SessionCache) Set(ctx context.Context, session models.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return c.client.Set(ctx, sessionKey(session.ID), raw, c.ttl).Err()
}

func (c *SessionCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, sessionKey(id)).Err()
}

func decodeSession(raw []byte) (models.Session, error) {
	var session models.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return models.Session{}, err
	}
	if session.ID == "" || session.UserID == "" {
		return models.Session{}, errors.New("incomplete session entry")
	}
	return session, nil
}
