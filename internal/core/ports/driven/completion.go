package driven

import (
	"context"

	"github.com/openedu-labs/deptchat-core/internal/core/domain"
)

// CompletionResult is the outcome of one grounded generation call.
type CompletionResult struct {
	Text  string
	Usage domain.Usage
}

// CompletionService produces grounded chat completions
type CompletionService interface {
	// Complete issues a generation request with a system instruction and
	// the user's message. Sampling parameters are fixed by the adapter.
	Complete(ctx context.Context, system, user string) (*CompletionResult, error)

	// Model returns the model name being used
	Model() string

	// HealthCheck verifies the completion service is available
	HealthCheck(ctx context.Context) error

	// Close releases resources held by the completion service
	Close() error
}
