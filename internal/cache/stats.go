package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"hotelbooking/internal/lifecycle"
)

const (
	statsPrefix        = "booking_stats:"
	statsGenerationKey = statsPrefix + "gen"
)

// StatsCache keeps computed booking statistics in Redis.
// Invalidate bumps a generation counter so every previously cached entry stops matching.
type StatsCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewStatsCache(client redis.Cmdable, ttl time.Duration) *StatsCache {
	return &StatsCache{client: client, ttl: ttl}
}

// Get returns the cached statistics for scope together with the generation it looked in;
// ok is false on a miss. Pass the generation back to Set.
func (c *StatsCache) Get(ctx context.Context, scope string) (lifecycle.Statistics, int64, bool, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return lifecycle.Statistics{}, 0, false, err
	}

	data, err := c.client.Get(ctx, StatsKey(gen, scope)).Bytes()
	if errors.Is(err, redis.Nil) {
		return lifecycle.Statistics{}, gen, false, nil
	}
	if err != nil {
		return lifecycle.Statistics{}, gen, false, err
	}

	var st lifecycle.Statistics
	if err := json.Unmarshal(data, &st); err != nil {
		return lifecycle.Statistics{}, gen, false, err
	}
	return st, gen, true, nil
}

// Set stores st under the generation returned by Get. An Invalidate in between
// leaves the entry in a generation nobody reads.
func (c *StatsCache) Set(ctx context.Context, scope string, generation int64, st lifecycle.Statistics) error {
	if c.ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, StatsKey(generation, scope), data, c.ttl).Err()
}

func (c *StatsCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, statsGenerationKey).Err()
}

func (c *StatsCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, statsGenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// StatsKey derives the Redis key for one generation and scope.
func StatsKey(generation int64, scope string) string {
	sum := sha256.Sum256([]byte(scope))
	return statsPrefix + strconv.FormatInt(generation, 10) + ":" + hex.EncodeToString(sum[:8])
}

// Noop is used when Redis is not configured.
type Noop struct{}

func (Noop) Get(context.Context, string) (lifecycle.Statistics, int64, bool, error) {
	return lifecycle.Statistics{}, 0, false, nil
}

func (Noop) Set(context.Context, string, int64, lifecycle.Statistics) error { return nil }

func (Noop) Invalidate(context.Context) error { return nil }
