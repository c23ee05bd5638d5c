package ai

import (
	"context"

	"github.com/poiesic/newscout/core"
)

// Turn is a prior conversation turn passed to the language model as context.
type Turn struct {
	Role    core.Role
	Content string
}

// QueryRewriter turns raw user input into a search-engine-ready query.
// Implementations must be thread-safe for concurrent use.
type QueryRewriter interface {
	// RewriteQuery generates a concise retrieval query from the user's input,
	// using up to the configured number of prior turns as context.
	// Implementations must degrade gracefully: on any upstream failure the
	// original input is returned unchanged with a nil error, so rewriting can
	// never block or fail the pipeline. A non-nil error indicates a
	// programming mistake, not an upstream outage.
	RewriteQuery(ctx context.Context, input string, history []Turn) (string, error)
}

// RelevanceAnalyzer scores retrieved news items against the user's original
// query and filters out the irrelevant ones.
// Implementations must be thread-safe for concurrent use.
type RelevanceAnalyzer interface {
	// AnalyzeResults evaluates each candidate against the query and returns
	// the relevant subset, sorted by score descending. An empty candidate set
	// short-circuits to a no-results outcome without any model call.
	// Implementations fail open: if the model cannot be reached, every
	// candidate is treated as relevant rather than suppressing results.
	AnalyzeResults(ctx context.Context, query string, items []core.NewsItem, history []Turn) (core.Analysis, error)
}

// AIProvider aggregates the language-model services for convenient
// initialization and lifecycle management.
type AIProvider interface {
	// QueryRewriter returns the query rewriting service.
	// The returned QueryRewriter is safe for concurrent use.
	QueryRewriter() QueryRewriter

	// RelevanceAnalyzer returns the relevance analysis service.
	// The returned RelevanceAnalyzer is safe for concurrent use.
	RelevanceAnalyzer() RelevanceAnalyzer

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
