package mocks

import (
	"context"

	"github.com/openedu-labs/deptchat-core/internal/core/domain"
	"github.com/openedu-labs/deptchat-core/internal/core/ports/driven"
)

// MockCompletionService is a mock implementation of CompletionService for testing
type MockCompletionService struct {
	model    string
	failNext bool
	calls    int

	// Response is returned for every call. Defaults to a canned answer.
	Response string

	// LastSystem and LastUser capture the most recent prompt pair,
	// so tests can assert on the grounding context.
	LastSystem string
	LastUser   string
}

// NewMockCompletionService creates a new MockCompletionService
func NewMockCompletionService() *MockCompletionService {
	return &MockCompletionService{
		model:    "mock-chat-model",
		Response: "mock answer",
	}
}

func (m *MockCompletionService) Complete(ctx context.Context, system, user string) (*driven.CompletionResult, error) {
	m.calls++
	m.LastSystem = system
	m.LastUser = user
	if m.failNext {
		m.failNext = false
		return nil, context.DeadlineExceeded
	}
	return &driven.CompletionResult{
		Text: m.Response,
		Usage: domain.Usage{
			PromptTokens:     12,
			CompletionTokens: 7,
			TotalTokens:      19,
		},
	}, nil
}

func (m *MockCompletionService) Model() string {
	return m.model
}

func (m *MockCompletionService) HealthCheck(ctx context.Context) error {
	return nil
}

func (m *MockCompletionService) Close() error {
	return nil
}

// Helper methods for testing

func (m *MockCompletionService) SetFailNext(fail bool) {
	m.failNext = fail
}

// Calls returns how many completion requests were made
func (m *MockCompletionService) Calls() int {
	return m.calls
}
