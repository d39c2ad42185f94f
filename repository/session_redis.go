package repository

import (
	"context"
	"strconv"
	"time"

	"storefront/entity"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// RedisSessionStore keeps one key per session that expires with the token.
type RedisSessionStore struct {
	rdb *redis.Client
	now func() time.Time
}

func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb, now: time.Now}
}

func (s *RedisSessionStore) Create(ctx context.Context, sess *entity.Session) error {
	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, sessionKeyPrefix+sess.ID, strconv.FormatUint(uint64(sess.UserID), 10), ttl).Err()
}

func (s *RedisSessionStore) Active(ctx context.Context, id string) (bool, error) {
	n, err := s.rdb.Exists(ctx, sessionKeyPrefix+id).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *RedisSessionStore) Revoke(ctx context.Context, id string) (bool, error) {
	n, err := s.rdb.Del(ctx, sessionKeyPrefix+id).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
