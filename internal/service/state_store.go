package service

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jobreach/jobreach/internal/database"
)

const (
	oauthStatePrefix = "oauth_state:"
	oauthStateTTL    = 10 * time.Minute
)

// StateStore holds the anti-forgery state for an in-flight authorization,
// bound to the session's user ID. Consume removes the state so it can be
// checked at most once.
type StateStore interface {
	SaveState(ctx context.Context, userID, state string) error
	ConsumeState(ctx context.Context, userID string) (string, error)
}

// RedisStateStore stores authorization state in Redis with a TTL, so an
// abandoned consent flow expires on its own.
type RedisStateStore struct {
	rdb *database.Redis
}

// NewRedisStateStore creates a new RedisStateStore
func NewRedisStateStore(rdb *database.Redis) *RedisStateStore {
	return &RedisStateStore{rdb: rdb}
}

// SaveState stores the state for the user, replacing any previous one
func (s *RedisStateStore) SaveState(ctx context.Context, userID, state string) error {
	return s.rdb.SetWithTTL(ctx, oauthStatePrefix+userID, state, oauthStateTTL)
}

// ConsumeState retrieves and deletes the stored state. An expired or absent
// state returns empty without error; the caller treats it as a mismatch.
func (s *RedisStateStore) ConsumeState(ctx context.Context, userID string) (string, error) {
	state, err := s.rdb.GetDel(ctx, oauthStatePrefix+userID)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return state, nil
}
