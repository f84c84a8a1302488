package services

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisChecker checks Redis connectivity
type RedisChecker struct {
	BaseChecker
	client redis.UniversalClient
}

// NewRedisChecker wraps an existing Redis client
func NewRedisChecker(client redis.UniversalClient) *RedisChecker {
	return &RedisChecker{
		BaseChecker: BaseChecker{serviceType: "redis"},
		client:      client,
	}
}

// HealthCheck verifies Redis connectivity
func (r *RedisChecker) HealthCheck(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
