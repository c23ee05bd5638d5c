package mock

import (
	"context"

	"github.com/poiesic/newscout/ai"
)

// MockQueryRewriter is a test double for ai.QueryRewriter.
// It allows custom behavior injection via function fields.
type MockQueryRewriter struct {
	// RewriteQueryFunc is called by RewriteQuery if set.
	// If nil, the input is returned unchanged.
	RewriteQueryFunc func(ctx context.Context, input string, history []ai.Turn) (string, error)

	callCount int
}

var _ ai.QueryRewriter = (*MockQueryRewriter)(nil)

// NewMockQueryRewriter creates a mock rewriter with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockQueryRewriter() *MockQueryRewriter {
	return &MockQueryRewriter{}
}

// RewriteQuery returns the input unchanged unless RewriteQueryFunc is set.
func (m *MockQueryRewriter) RewriteQuery(ctx context.Context, input string, history []ai.Turn) (string, error) {
	m.callCount++

	if m.RewriteQueryFunc != nil {
		return m.RewriteQueryFunc(ctx, input, history)
	}
	return input, nil
}

// CallCount returns the number of times RewriteQuery was called.
func (m *MockQueryRewriter) CallCount() int {
	return m.callCount
}

// Reset clears the call count.
func (m *MockQueryRewriter) Reset() {
	m.callCount = 0
}
