package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/openedu-labs/deptchat-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.RateLimiter = (*RateLimiter)(nil)

const ratelimitPrefix = "deptchat:ratelimit:"

// allowScript implements fixed-window-with-reset admission atomically.
// The window opens on a client's first request and closes via key TTL;
// an expired key is indistinguishable from a first request, which is the
// reset. At the limit the script returns 0 without touching the counter.
var allowScript = redis.NewScript(`
	local count = redis.call("GET", KEYS[1])
	if not count then
		redis.call("SET", KEYS[1], 1, "PX", ARGV[2])
		return 1
	end
	if tonumber(count) >= tonumber(ARGV[1]) then
		return 0
	end
	redis.call("INCR", KEYS[1])
	return 1
`)

// RateLimiter implements the admission gate on Redis, for deployments
// running more than one instance behind a load balancer. The single-script
// check-and-increment keeps concurrent requests from over-admitting.
type RateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewRateLimiter creates a Redis-backed rate limiter admitting `limit`
// requests per client per `window`.
func NewRateLimiter(client *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  limit,
		window: window,
	}
}

// Allow reports whether the client may proceed. Rejections do not mutate
// the counter. Redis errors surface to the caller; the orchestrator
// decides whether to fail open or closed.
func (r *RateLimiter) Allow(ctx context.Context, clientID string) (bool, error) {
	key := ratelimitPrefix + clientID
	result, err := allowScript.Run(ctx, r.client, []string{key},
		r.limit, r.window.Milliseconds()).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit check for %s: %w", clientID, err)
	}
	return result.(int64) == 1, nil
}
