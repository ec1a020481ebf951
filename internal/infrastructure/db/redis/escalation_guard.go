package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultGuardTTL = 30 * 24 * time.Hour

// EscalationGuard provides replay protection for escalation outcomes, backed
// by Redis SET NX. A key claims one (member, stream, trigger) outcome; only
// the first claim within the TTL wins.
type EscalationGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewEscalationGuard wraps the given Redis client. A non-positive ttl falls
// back to defaultGuardTTL.
func NewEscalationGuard(client *redis.Client, ttl time.Duration) *EscalationGuard {
	if ttl <= 0 {
		ttl = defaultGuardTTL
	}
	return &EscalationGuard{client: client, ttl: ttl}
}

// Once reports whether this call is the first claim of the key. Subsequent
// calls within the TTL return false.
func (g *EscalationGuard) Once(ctx context.Context, key string) (bool, error) {
	ok, err := g.client.SetNX(ctx, key, "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("escalation guard: %w", err)
	}
	return ok, nil
}
