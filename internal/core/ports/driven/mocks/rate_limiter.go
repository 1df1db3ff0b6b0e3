package mocks

import (
	"context"
)

// MockRateLimiter is a mock implementation of RateLimiter for testing
type MockRateLimiter struct {
	// Denied causes every Allow call to reject
	Denied bool

	// Err is returned from Allow when set
	Err error

	calls int
}

// NewMockRateLimiter creates a new MockRateLimiter that admits everything
func NewMockRateLimiter() *MockRateLimiter {
	return &MockRateLimiter{}
}

func (m *MockRateLimiter) Allow(ctx context.Context, clientID string) (bool, error) {
	m.calls++
	if m.Err != nil {
		return false, m.Err
	}
	return !m.Denied, nil
}

// Calls returns how many admission checks were made
func (m *MockRateLimiter) Calls() int {
	return m.calls
}
