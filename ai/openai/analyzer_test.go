package openai

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/poiesic/newscout/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// fakeModel is a canned llms.Model for exercising the parse/score logic
// without a network.
type fakeModel struct {
	reply string
	err   error
}

var _ llms.Model = (*fakeModel)(nil)

func (f *fakeModel) GenerateContent(_ context.Context, _ []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.reply}},
	}, nil
}

func (f *fakeModel) Call(_ context.Context, _ string, _ ...llms.CallOption) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newTestAnalyzer(model llms.Model) *Analyzer {
	return &Analyzer{
		client:    model,
		minScore:  7,
		maxTokens: 800,
		timeout:   time.Second,
		logger:    slog.Default(),
	}
}

func candidates() []core.NewsItem {
	return []core.NewsItem{
		{Title: "EU adopts AI act", URL: "https://example.com/a", Body: "Sweeping AI rules approved.", Source: "Wire"},
		{Title: "Local bake sale", URL: "https://example.com/b", Body: "Cookies sold out by noon.", Source: "Gazette"},
	}
}

func TestAnalyzeResults_EmptyCandidates(t *testing.T) {
	model := &fakeModel{err: errors.New("must not be called")}
	analyzer := newTestAnalyzer(model)

	analysis, err := analyzer.AnalyzeResults(context.Background(), "ai regulation", nil, nil)
	require.NoError(t, err)
	assert.False(t, analysis.HasRelevant)
	assert.Empty(t, analysis.Relevant)
	assert.Contains(t, analysis.Suggestions, "ai regulation")
}

func TestAnalyzeResults_ThresholdFiltering(t *testing.T) {
	model := &fakeModel{reply: `{
		"has_relevant": true,
		"analysis": "one strong hit",
		"result_analysis": [
			{"index": 0, "relevance_score": 9, "relevance_reason": "directly about AI regulation"},
			{"index": 1, "relevance_score": 5, "relevance_reason": "unrelated"}
		]
	}`}
	analyzer := newTestAnalyzer(model)

	analysis, err := analyzer.AnalyzeResults(context.Background(), "latest AI regulation news", candidates(), nil)
	require.NoError(t, err)
	assert.True(t, analysis.HasRelevant)
	require.Len(t, analysis.Relevant, 1)
	assert.Equal(t, "EU adopts AI act", analysis.Relevant[0].Title)
	assert.Equal(t, 9, analysis.Relevant[0].Score)
	assert.Equal(t, "directly about AI regulation", analysis.Relevant[0].Reason)
}

func TestAnalyzeResults_BoundaryScoreIsDropped(t *testing.T) {
	model := &fakeModel{reply: `{
		"has_relevant": true,
		"result_analysis": [{"index": 0, "relevance_score": 7, "relevance_reason": "borderline"}]
	}`}
	analyzer := newTestAnalyzer(model)

	analysis, err := analyzer.AnalyzeResults(context.Background(), "q", candidates()[:1], nil)
	require.NoError(t, err)
	assert.True(t, analysis.HasRelevant)
	assert.Empty(t, analysis.Relevant)
}

func TestAnalyzeResults_OverallFlagForcesEmpty(t *testing.T) {
	model := &fakeModel{reply: `{
		"has_relevant": false,
		"result_analysis": [{"index": 0, "relevance_score": 10, "relevance_reason": "high but moot"}],
		"suggestions": "try narrower terms"
	}`}
	analyzer := newTestAnalyzer(model)

	analysis, err := analyzer.AnalyzeResults(context.Background(), "q", candidates(), nil)
	require.NoError(t, err)
	assert.False(t, analysis.HasRelevant)
	assert.Empty(t, analysis.Relevant)
	assert.Equal(t, "try narrower terms", analysis.Suggestions)
}

func TestAnalyzeResults_MissingEntryExcluded(t *testing.T) {
	model := &fakeModel{reply: `{
		"has_relevant": true,
		"result_analysis": [{"index": 0, "relevance_score": 9, "relevance_reason": "good"}]
	}`}
	analyzer := newTestAnalyzer(model)

	analysis, err := analyzer.AnalyzeResults(context.Background(), "q", candidates(), nil)
	require.NoError(t, err)
	require.Len(t, analysis.Relevant, 1)
	assert.Equal(t, "EU adopts AI act", analysis.Relevant[0].Title)
}

func TestAnalyzeResults_SortedByScoreDescending(t *testing.T) {
	items := append(candidates(), core.NewsItem{Title: "AI act explained", URL: "https://example.com/c", Source: "Blog"})
	model := &fakeModel{reply: `{
		"has_relevant": true,
		"result_analysis": [
			{"index": 0, "relevance_score": 8, "relevance_reason": "a"},
			{"index": 1, "relevance_score": 10, "relevance_reason": "b"},
			{"index": 2, "relevance_score": 8, "relevance_reason": "c"}
		]
	}`}
	analyzer := newTestAnalyzer(model)

	analysis, err := analyzer.AnalyzeResults(context.Background(), "q", items, nil)
	require.NoError(t, err)
	require.Len(t, analysis.Relevant, 3)
	assert.Equal(t, 10, analysis.Relevant[0].Score)
	// Tie at 8: retrieval order preserved.
	assert.Equal(t, "EU adopts AI act", analysis.Relevant[1].Title)
	assert.Equal(t, "AI act explained", analysis.Relevant[2].Title)
}

func TestAnalyzeResults_ProseWrappedJSON(t *testing.T) {
	model := &fakeModel{reply: `Sure! {"has_relevant": true, "result_analysis": [{"index":0,"relevance_score":9,"relevance_reason":"x"}]} Thanks.`}
	analyzer := newTestAnalyzer(model)

	analysis, err := analyzer.AnalyzeResults(context.Background(), "q", candidates()[:1], nil)
	require.NoError(t, err)
	assert.True(t, analysis.HasRelevant)
	require.Len(t, analysis.Relevant, 1)
	assert.Equal(t, "x", analysis.Relevant[0].Reason)
}

func TestAnalyzeResults_HeuristicFallback(t *testing.T) {
	t.Run("no negative markers keeps everything", func(t *testing.T) {
		model := &fakeModel{reply: "These results look good to me overall."}
		analyzer := newTestAnalyzer(model)

		analysis, err := analyzer.AnalyzeResults(context.Background(), "q", candidates(), nil)
		require.NoError(t, err)
		assert.True(t, analysis.HasRelevant)
		assert.Len(t, analysis.Relevant, 2)
		// Heuristic branch attaches no per-item scores.
		assert.Zero(t, analysis.Relevant[0].Score)
	})

	t.Run("negative marker empties the set", func(t *testing.T) {
		model := &fakeModel{reply: "These results are not relevant to the query."}
		analyzer := newTestAnalyzer(model)

		analysis, err := analyzer.AnalyzeResults(context.Background(), "q", candidates(), nil)
		require.NoError(t, err)
		assert.False(t, analysis.HasRelevant)
		assert.Empty(t, analysis.Relevant)
		assert.NotEmpty(t, analysis.Suggestions)
	})
}

func TestAnalyzeResults_ModelFailureFailsOpen(t *testing.T) {
	model := &fakeModel{err: errors.New("upstream quota exhausted")}
	analyzer := newTestAnalyzer(model)

	items := candidates()
	analysis, err := analyzer.AnalyzeResults(context.Background(), "q", items, nil)
	require.NoError(t, err)
	assert.True(t, analysis.HasRelevant)
	assert.Equal(t, items, analysis.Relevant)
	assert.Empty(t, analysis.Suggestions)
}
