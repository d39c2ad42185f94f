package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	rankingCacheKey    = "cache:most_bought"
	rankingCacheGenKey = rankingCacheKey + ":gen"
)

// RankingCache stores ranked product ids per limit under a generation number.
// Invalidate bumps the generation, so every key of the old generation stops
// being read at once and expires on its own TTL.
type RankingCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRankingCache(rdb *redis.Client, ttl time.Duration) *RankingCache {
	return &RankingCache{rdb: rdb, ttl: ttl}
}

func rankingKey(gen int64, limit int) string {
	return fmt.Sprintf("%s:%d:%d", rankingCacheKey, gen, limit)
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readGeneration(ctx context.Context, c stringGetter) (int64, error) {
	gen, err := c.Get(ctx, rankingCacheGenKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Get returns the ranking cached for limit and the generation it looked at.
// A miss still reports the generation; pass it back to Set.
func (c *RankingCache) Get(ctx context.Context, limit int) ([]uint, int64, bool, error) {
	gen, err := readGeneration(ctx, c.rdb)
	if err != nil {
		return nil, 0, false, err
	}
	raw, err := c.rdb.Get(ctx, rankingKey(gen, limit)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, gen, false, nil
	}
	if err != nil {
		return nil, gen, false, err
	}
	var ids []uint
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, gen, false, err
	}
	return ids, gen, true, nil
}

// Set stores ids only while gen is still the current generation. A ranking
// computed before an Invalidate is dropped silently.
func (c *RankingCache) Set(ctx context.Context, gen int64, limit int, ids []uint) error {
	if ids == nil {
		ids = []uint{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}

	err = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := readGeneration(ctx, tx)
		if err != nil {
			return err
		}
		if cur != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, rankingKey(gen, limit), data, c.ttl)
			return nil
		})
		return err
	}, rankingCacheGenKey)
	if errors.Is(err, redis.TxFailedErr) {
		// generation moved while we were writing
		return nil
	}
	return err
}

func (c *RankingCache) Invalidate(ctx context.Context) error {
	return c.rdb.Incr(ctx, rankingCacheGenKey).Err()
}
