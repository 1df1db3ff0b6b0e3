package ai

import (
	"context"
	"fmt"

	"github.com/openedu-labs/deptchat-core/internal/core/ports/driven"
)

// Unconfigured stands in for the OpenAI adapters when no API key is
// set. The server stays up and serves health and static routes; chat
// requests fail individually until the key is provided.
type Unconfigured struct{}

// NewUnconfigured creates the placeholder provider
func NewUnconfigured() *Unconfigured {
	return &Unconfigured{}
}

var errNotConfigured = fmt.Errorf("OpenAI API key not configured")

func (u *Unconfigured) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	return nil, errNotConfigured
}

func (u *Unconfigured) Complete(ctx context.Context, system, user string) (*driven.CompletionResult, error) {
	return nil, errNotConfigured
}

func (u *Unconfigured) Dimensions() int { return 0 }

func (u *Unconfigured) Model() string { return "unconfigured" }

func (u *Unconfigured) HealthCheck(ctx context.Context) error {
	return errNotConfigured
}

func (u *Unconfigured) Close() error { return nil }
