package search

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/poiesic/newscout/ai"
	"github.com/poiesic/newscout/core"
	"github.com/poiesic/newscout/provider"
	"github.com/poiesic/newscout/storage"
)

const (
	defaultResultLimit  = 5
	defaultRewriteTurns = 5
	defaultAnalyzeTurns = 3
)

// Searcher runs the conversational news search pipeline: query rewriting,
// retrieval, relevance analysis, and reply generation, with per-session
// history threaded through each stage.
type Searcher struct {
	conversations storage.ConversationRepository
	providers     *provider.Set
	rewriter      ai.QueryRewriter
	analyzer      ai.RelevanceAnalyzer
	logger        *slog.Logger
	resultLimit   int
	rewriteTurns  int
	analyzeTurns  int
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithResultLimit sets how many news items are requested from providers.
// Default is 5.
func WithResultLimit(limit int) Option {
	return func(s *Searcher) error {
		if limit > 0 {
			s.resultLimit = limit
		}
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(
	conversations storage.ConversationRepository,
	providers *provider.Set,
	aiProvider ai.AIProvider,
	opts ...Option,
) (*Searcher, error) {
	if conversations == nil {
		return nil, ErrRepositoryRequired
	}
	if providers == nil {
		return nil, ErrProviderSetRequired
	}
	if aiProvider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Searcher{
		conversations: conversations,
		providers:     providers,
		rewriter:      aiProvider.QueryRewriter(),
		analyzer:      aiProvider.RelevanceAnalyzer(),
		logger:        slog.Default(),
		resultLimit:   defaultResultLimit,
		rewriteTurns:  defaultRewriteTurns,
		analyzeTurns:  defaultAnalyzeTurns,
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search runs one conversational search turn. A blank sessionID starts a
// new session with a generated id.
func (s *Searcher) Search(ctx context.Context, query, sessionID string) (*core.SearchResponse, error) {
	return s.SearchWithMonitor(ctx, query, sessionID, nil)
}

// SearchWithMonitor runs one search turn with monitoring. The monitor
// receives callbacks after each pipeline stage.
//
// The turn degrades rather than fails when the model misbehaves: a rewrite
// failure falls back to the user's query verbatim, and an analysis failure
// passes the retrieved items through unfiltered. Only invalid input and
// storage failures surface as errors.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query, sessionID string, monitor PipelineMonitor) (*core.SearchResponse, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	normalized, err := core.NormalizeQuery(query)
	if err != nil {
		return nil, err
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	monitor.Start(normalized, sessionID)

	// History is read before this turn's messages are recorded, so the
	// current query never appears twice in a prompt.
	recent, err := s.conversations.RecentMessages(ctx, sessionID, s.rewriteTurns)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	history := toTurns(recent)

	generated, err := s.rewriter.RewriteQuery(ctx, normalized, history)
	if err != nil || generated == "" {
		if err != nil {
			s.logger.Warn("query rewrite failed, using original query", "err", err)
		}
		generated = normalized
	}
	monitor.AfterRewrite(generated)

	items := s.providers.Retrieve(ctx, generated, s.resultLimit)
	monitor.AfterRetrieval(items)

	analyzeHistory := history
	if len(analyzeHistory) > s.analyzeTurns {
		analyzeHistory = analyzeHistory[len(analyzeHistory)-s.analyzeTurns:]
	}
	analysis, err := s.analyzer.AnalyzeResults(ctx, normalized, items, analyzeHistory)
	if err != nil {
		s.logger.Warn("relevance analysis failed, passing results through", "err", err)
		analysis = core.Analysis{
			HasRelevant: len(items) > 0,
			Relevant:    items,
		}
	}
	monitor.AfterAnalysis(analysis)

	reply := Respond(normalized, analysis)

	err = s.conversations.AppendMessages(ctx, sessionID,
		core.Message{Role: core.RoleUser, Content: normalized},
		core.Message{Role: core.RoleAssistant, Content: reply},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}

	conversation, err := s.conversations.Conversation(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}

	response := &core.SearchResponse{
		OriginalQuery:  normalized,
		GeneratedQuery: generated,
		Results:        analysis.Relevant,
		HasRelevant:    analysis.HasRelevant,
		Suggestions:    analysis.Suggestions,
		Reply:          reply,
		Conversation:   *conversation,
	}
	monitor.Finish(response)

	return response, nil
}

// Conversation returns the full history for a session.
// Returns storage.ErrNotFound for unknown sessions.
func (s *Searcher) Conversation(ctx context.Context, sessionID string) (*core.Conversation, error) {
	return s.conversations.Conversation(ctx, sessionID)
}

// ClearConversation removes all history for a session.
func (s *Searcher) ClearConversation(ctx context.Context, sessionID string) error {
	return s.conversations.ClearConversation(ctx, sessionID)
}

// toTurns converts stored messages to prompt context turns.
func toTurns(messages []core.Message) []ai.Turn {
	if len(messages) == 0 {
		return nil
	}
	turns := make([]ai.Turn, 0, len(messages))
	for _, msg := range messages {
		turns = append(turns, ai.Turn{Role: msg.Role, Content: msg.Content})
	}
	return turns
}
