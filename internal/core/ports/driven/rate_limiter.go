package driven

import (
	"context"
)

// RateLimiter gates requests per client identifier ahead of the paid
// provider calls. Implementations use a fixed-window-with-reset policy:
// the counter resets when the window elapses, so a client can burst up to
// twice the limit across a window boundary. Accepted imprecision.
type RateLimiter interface {
	// Allow reports whether the client may proceed. A rejected call must
	// not mutate the client's counter.
	Allow(ctx context.Context, clientID string) (bool, error)
}
