// Package cache provides the redis-backed report cache.
package cache

import (
	"context"
	"encoding/json"
	"net"
	"time"

	"insight/config"
	"insight/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// redisReportCache implements service.ReportCache on top of go-redis,
// storing each report as a single JSON value with a TTL.
type redisReportCache struct {
	client *redis.Client
}

// NewReportCache connects to redis and returns the report cache. The
// connection is verified with a ping so a misconfigured cache fails at
// startup rather than on the first report.
func NewReportCache(ctx context.Context, cfg *config.RedisConfig) (service.ReportCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(err, "failed to ping redis")
	}

	return &redisReportCache{client: client}, nil
}

// Get unmarshals the cached report for key into dest.
func (c *redisReportCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}

		return false, errors.Wrap(err, "failed to read cached report")
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return false, errors.Wrap(err, "failed to decode cached report")
	}

	return true, nil
}

// Set stores value under key for at most ttl.
func (c *redisReportCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "failed to encode report")
	}

	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to write cached report")
	}

	return nil
}
