package handoff

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Transcripts are not clinical records; they only need to survive between
// the capture and review invocations.
const defaultTTL = 24 * time.Hour

// RedisStore keeps transcript slots in Redis so a review flow can pick up
// a transcript recorded by an earlier process.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: defaultTTL}
}

func key(sessionID string) string { return "scribe:transcript:" + sessionID }

func (s *RedisStore) Set(ctx context.Context, sessionID, transcript string) error {
	return s.rdb.Set(ctx, key(sessionID), transcript, s.ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (string, bool, error) {
	v, err := s.rdb.Get(ctx, key(sessionID)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *RedisStore) Del(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, key(sessionID)).Err()
}
