package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/glucotrack/glucotrack/internal/database"
	"github.com/glucotrack/glucotrack/internal/logger"
)

const (
	glucoseRangesKey = "charts:glucose_ranges"
	ranksKey         = "charts:achievement_ranks"
)

// ChartCache fronts a ChartRepository with a redis cache. The TTL bounds
// chart staleness after a runtime edit. Every cache failure falls open to
// the underlying repository, so redis being down never fails a request.
type ChartCache struct {
	next   ChartRepository
	client *redis.Client
	ttl    time.Duration
}

// NewChartCache creates a redis-backed chart cache.
func NewChartCache(redisHost, redisPort string, ttl time.Duration, next ChartRepository) (*ChartCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", redisHost, redisPort),
		Password:     "", // no password
		DB:           0,  // default DB
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &ChartCache{
		next:   next,
		client: client,
		ttl:    ttl,
	}, nil
}

func (c *ChartCache) GlucoseRanges(ctx context.Context) ([]database.BloodGlucoseRange, error) {
	var cached []database.BloodGlucoseRange
	if c.lookup(ctx, glucoseRangesKey, &cached) {
		return cached, nil
	}

	ranges, err := c.next.GlucoseRanges(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, glucoseRangesKey, ranges)
	return ranges, nil
}

func (c *ChartCache) Ranks(ctx context.Context) ([]database.AchievementRank, error) {
	var cached []database.AchievementRank
	if c.lookup(ctx, ranksKey, &cached) {
		return cached, nil
	}

	ranks, err := c.next.Ranks(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, ranksKey, ranks)
	return ranks, nil
}

func (c *ChartCache) lookup(ctx context.Context, key string, out interface{}) bool {
	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("Chart cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		logger.Warn("Chart cache payload corrupt", "key", key, "error", err)
		return false
	}
	return true
}

func (c *ChartCache) store(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logger.Warn("Chart cache write failed", "key", key, "error", err)
	}
}

// Close closes the redis connection.
func (c *ChartCache) Close() error {
	return c.client.Close()
}
