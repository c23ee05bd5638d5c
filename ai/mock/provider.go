package mock

import "github.com/poiesic/newscout/ai"

// MockProvider aggregates mock services for testing.
type MockProvider struct {
	rewriter *MockQueryRewriter
	analyzer *MockRelevanceAnalyzer
}

var _ ai.AIProvider = (*MockProvider)(nil)

// NewMockProvider creates a provider backed by default mocks.
func NewMockProvider() ai.AIProvider {
	return &MockProvider{
		rewriter: NewMockQueryRewriter(),
		analyzer: NewMockRelevanceAnalyzer(),
	}
}

// QueryRewriter returns the mock rewriter as the interface type.
func (p *MockProvider) QueryRewriter() ai.QueryRewriter {
	return p.rewriter
}

// RelevanceAnalyzer returns the mock analyzer as the interface type.
func (p *MockProvider) RelevanceAnalyzer() ai.RelevanceAnalyzer {
	return p.analyzer
}

// GetMockRewriter returns the concrete mock for behavior injection and
// call-count assertions.
func (p *MockProvider) GetMockRewriter() *MockQueryRewriter {
	return p.rewriter
}

// GetMockAnalyzer returns the concrete mock for behavior injection and
// call-count assertions.
func (p *MockProvider) GetMockAnalyzer() *MockRelevanceAnalyzer {
	return p.analyzer
}

// Close is a no-op.
func (p *MockProvider) Close() error {
	return nil
}
