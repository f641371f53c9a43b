package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// TemplateLock implements usecase.TemplateLocker using Redis SETNX. One
// lock per template serializes generation runs; the TTL bounds how long a
// crashed run can block others.
type TemplateLock struct {
	client *redis.Client
	prefix string
}

// NewTemplateLock creates a new TemplateLock.
func NewTemplateLock(client *redis.Client) *TemplateLock {
	return &TemplateLock{
		client: client,
		prefix: "genlock:",
	}
}

// Acquire takes the per-template lock. Returns false when another run
// holds it.
func (l *TemplateLock) Acquire(ctx context.Context, templateID string, ttl time.Duration) (bool, error) {
	return l.client.SetNX(ctx, l.prefix+templateID, "locked", ttl).Result()
}

// Release frees the per-template lock.
func (l *TemplateLock) Release(ctx context.Context, templateID string) error {
	return l.client.Del(ctx, l.prefix+templateID).Err()
}
