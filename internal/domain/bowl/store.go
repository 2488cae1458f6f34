// internal/domain/bowl/store.go
package bowl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// StateStore persists in-progress configurations per session
type StateStore interface {
	Load(ctx context.Context, sessionID string) (*State, error)
	Save(ctx context.Context, sessionID string, st State) error
	Delete(ctx context.Context, sessionID string) error
}

// RedisStore keeps configurations as JSON under bowl:session:<id>
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis backed state store
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Load returns nil without error when the session has no configuration
func (s *RedisStore) Load(ctx context.Context, sessionID string) (*State, error) {
	data, err := s.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to load bowl state: %w", err)
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	return &st, nil
}

// Save stores the configuration and refreshes its expiry
func (s *RedisStore) Save(ctx context.Context, sessionID string, st State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, sessionKey(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save bowl state: %w", err)
	}
	return nil
}

// Delete drops the session configuration
func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKey(sessionID)).Err()
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("bowl:session:%s", sessionID)
}
