package cache

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/TOULI-R/rentiva-backend-sub000/internal/compat"
)

// CompatStats summarizes the compatibility checks run against a property.
type CompatStats struct {
	Checks       int64            `json:"checks"`
	AverageScore float64          `json:"averageScore"`
	Conflicts    map[string]int64 `json:"conflicts"` // per dimension
}

// StatsCache accumulates per-property compatibility statistics in Redis
type StatsCache interface {
	RecordCheck(ctx context.Context, propertyID string, result compat.CompatibilityResult) error
	Get(ctx context.Context, propertyID string) (*CompatStats, error)
}

type statsCache struct {
	client *redis.Client
}

// NewStatsCache creates a new stats cache
func NewStatsCache(client *redis.Client) StatsCache {
	return &statsCache{client: client}
}

func (c *statsCache) key(propertyID string) string {
	return fmt.Sprintf("property:%s:compat", propertyID)
}

func (c *statsCache) RecordCheck(ctx context.Context, propertyID string, result compat.CompatibilityResult) error {
	key := c.key(propertyID)
	pipe := c.client.Pipeline()
	pipe.HIncrBy(ctx, key, "checks", 1)
	pipe.HIncrBy(ctx, key, "scoreSum", int64(result.Score))
	for _, conflict := range result.Conflicts {
		pipe.HIncrBy(ctx, key, "conflict:"+conflict.Dimension, 1)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (c *statsCache) Get(ctx context.Context, propertyID string) (*CompatStats, error) {
	fields, err := c.client.HGetAll(ctx, c.key(propertyID)).Result()
	if err != nil {
		return nil, err
	}

	stats := &CompatStats{Conflicts: make(map[string]int64, len(compat.DimensionOrder))}
	for _, dim := range compat.DimensionOrder {
		stats.Conflicts[dim] = 0
	}
	if len(fields) == 0 {
		return stats, nil
	}

	stats.Checks, _ = strconv.ParseInt(fields["checks"], 10, 64)
	scoreSum, _ := strconv.ParseInt(fields["scoreSum"], 10, 64)
	if stats.Checks > 0 {
		stats.AverageScore = float64(scoreSum) / float64(stats.Checks)
	}
	for field, value := range fields {
		if dim, ok := strings.CutPrefix(field, "conflict:"); ok {
			stats.Conflicts[dim], _ = strconv.ParseInt(value, 10, 64)
		}
	}
	return stats, nil
}
