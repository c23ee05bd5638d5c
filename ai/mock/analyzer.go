package mock

import (
	"context"
	"fmt"
	"slices"

	"github.com/poiesic/newscout/ai"
	"github.com/poiesic/newscout/core"
)

// MockRelevanceAnalyzer is a test double for ai.RelevanceAnalyzer.
// It allows custom behavior injection via function fields.
type MockRelevanceAnalyzer struct {
	// AnalyzeResultsFunc is called by AnalyzeResults if set.
	// If nil, every candidate is marked relevant with score 9.
	AnalyzeResultsFunc func(ctx context.Context, query string, items []core.NewsItem, history []ai.Turn) (core.Analysis, error)

	callCount int
}

var _ ai.RelevanceAnalyzer = (*MockRelevanceAnalyzer)(nil)

// NewMockRelevanceAnalyzer creates a mock analyzer with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockRelevanceAnalyzer() *MockRelevanceAnalyzer {
	return &MockRelevanceAnalyzer{}
}

// AnalyzeResults marks every candidate relevant unless AnalyzeResultsFunc is
// set. The empty-candidate short circuit mirrors the production contract.
func (m *MockRelevanceAnalyzer) AnalyzeResults(ctx context.Context, query string, items []core.NewsItem, history []ai.Turn) (core.Analysis, error) {
	m.callCount++

	if m.AnalyzeResultsFunc != nil {
		return m.AnalyzeResultsFunc(ctx, query, items, history)
	}

	if len(items) == 0 {
		return core.Analysis{
			HasRelevant: false,
			Suggestions: fmt.Sprintf("No news found for '%s'.", query),
		}, nil
	}

	relevant := slices.Clone(items)
	for i := range relevant {
		relevant[i].Score = 9
		relevant[i].Reason = "mock analysis"
	}
	return core.Analysis{HasRelevant: true, Relevant: relevant}, nil
}

// CallCount returns the number of times AnalyzeResults was called.
func (m *MockRelevanceAnalyzer) CallCount() int {
	return m.callCount
}

// Reset clears the call count.
func (m *MockRelevanceAnalyzer) Reset() {
	m.callCount = 0
}
