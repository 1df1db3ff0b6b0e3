package driving

import (
	"context"

	"github.com/openedu-labs/deptchat-core/internal/core/domain"
)

// ChatService handles one retrieval-augmented question/answer cycle
type ChatService interface {
	// Answer validates the message, consults the rate limiter, retrieves
	// grounding context and returns the generated answer with citations.
	// Returns domain.ErrInvalidInput, domain.ErrRateLimited or a wrapped
	// domain.ErrUpstream on failure.
	Answer(ctx context.Context, message, clientID string) (*domain.Answer, error)
}
