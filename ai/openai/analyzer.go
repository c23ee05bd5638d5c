// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/poiesic/newscout/ai"
	"github.com/poiesic/newscout/core"
	"github.com/tmc/langchaingo/llms"
)

// noAnalysisReason marks candidates the model never scored. Score stays 0, so
// the threshold rule always drops them.
const noAnalysisReason = "no analysis available"

// negativeMarkers are scanned in the raw reply when JSON parsing fails
// entirely. Their absence implies relevance.
var negativeMarkers = []string{"not relevant", "no relevant", "irrelevant"}

// Analyzer implements ai.RelevanceAnalyzer using OpenAI-compatible chat APIs.
type Analyzer struct {
	client    llms.Model
	minScore  int
	maxTokens int
	timeout   time.Duration
	logger    *slog.Logger
}

var _ ai.RelevanceAnalyzer = (*Analyzer)(nil)

// itemVerdict is an internal type used for JSON unmarshaling.
// It matches the per-item structure expected from the LLM.
type itemVerdict struct {
	Index  int    `json:"index"`
	Score  int    `json:"relevance_score"`
	Reason string `json:"relevance_reason"`
}

// verdict is the wrapper structure for the LLM's JSON response.
type verdict struct {
	HasRelevant bool          `json:"has_relevant"`
	Analysis    string        `json:"analysis"`
	Items       []itemVerdict `json:"result_analysis"`
	Suggestions string        `json:"suggestions"`
}

// newAnalyzer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newAnalyzer(config *ai.Config) (*Analyzer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := newChatClient(config)
	if err != nil {
		return nil, err
	}

	return &Analyzer{
		client:    client,
		minScore:  config.MinScore,
		maxTokens: config.AnalyzeMaxTokens,
		timeout:   config.Timeout,
		logger:    slog.Default().With("component", "openai-analyzer"),
	}, nil
}

// NewAnalyzer creates a new relevance analyzer using the provided configuration.
//
// Returns ai.RelevanceAnalyzer interface to enforce abstraction.
func NewAnalyzer(config *ai.Config) (ai.RelevanceAnalyzer, error) {
	return newAnalyzer(config)
}

// AnalyzeResults scores each candidate against the original query using an
// LLM and keeps only those whose score clears the threshold.
//
// The reply is parsed with a fallback ladder: brace-balanced JSON extraction,
// then key repair, then a keyword heuristic over the raw text. A failure of
// the model call itself fails open, treating every candidate as relevant.
func (a *Analyzer) AnalyzeResults(ctx context.Context, query string, items []core.NewsItem, history []ai.Turn) (core.Analysis, error) {
	if len(items) == 0 {
		return core.Analysis{
			HasRelevant: false,
			Suggestions: fmt.Sprintf(noResultsSuggestion, query),
		}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	content := make([]llms.MessageContent, 0, len(history)+2)
	content = append(content, llms.MessageContent{
		Role:  llms.ChatMessageTypeSystem,
		Parts: []llms.ContentPart{llms.TextPart(analyzeSystemPrompt)},
	})
	content = append(content, turnContents(history)...)
	content = append(content, llms.MessageContent{
		Role: llms.ChatMessageTypeHuman,
		Parts: []llms.ContentPart{
			llms.TextPart(fmt.Sprintf(analyzeUserTemplate, query, buildCandidateListing(items))),
		},
	})

	response, err := a.client.GenerateContent(ctx, content,
		llms.WithTemperature(0.0),
		llms.WithMaxTokens(a.maxTokens))
	if err != nil {
		// Fail open: a transient model outage must not zero out results.
		a.logger.Warn("relevance analysis failed, keeping all candidates", "err", err)
		return core.Analysis{
			HasRelevant: true,
			Relevant:    slices.Clone(items),
		}, nil
	}

	if len(response.Choices) < 1 {
		a.logger.Warn("no choices returned from model, keeping all candidates")
		return core.Analysis{
			HasRelevant: true,
			Relevant:    slices.Clone(items),
		}, nil
	}

	raw := strings.TrimSpace(response.Choices[0].Content)
	parsed, ok := parseVerdict(raw)
	if !ok {
		a.logger.Warn("unparseable analyzer reply, using keyword heuristic", "reply", raw)
		return heuristicAnalysis(raw, items), nil
	}

	return a.applyVerdict(parsed, items), nil
}

// parseVerdict runs the first two rungs of the fallback ladder: strict or
// embedded JSON extraction, then key repair.
func parseVerdict(raw string) (*verdict, bool) {
	text, found := extractJSONObject(raw)
	if !found {
		return nil, false
	}

	var v verdict
	if err := json.Unmarshal([]byte(text), &v); err == nil {
		return &v, true
	}

	if err := json.Unmarshal([]byte(repairJSON(text)), &v); err == nil {
		return &v, true
	}
	return nil, false
}

// heuristicAnalysis is the last rung of the ladder: no JSON could be
// recovered, so relevance is inferred from negative markers in the prose.
// In this branch all candidates are returned unscored.
func heuristicAnalysis(raw string, items []core.NewsItem) core.Analysis {
	lower := strings.ToLower(raw)
	for _, marker := range negativeMarkers {
		if strings.Contains(lower, marker) {
			return core.Analysis{
				HasRelevant: false,
				Summary:     raw,
				Suggestions: raw,
			}
		}
	}
	return core.Analysis{
		HasRelevant: true,
		Relevant:    slices.Clone(items),
		Summary:     raw,
	}
}

// applyVerdict attaches per-item scores and reasons, drops everything at or
// below the threshold, and sorts the survivors.
func (a *Analyzer) applyVerdict(v *verdict, items []core.NewsItem) core.Analysis {
	byIndex := make(map[int]itemVerdict, len(v.Items))
	for _, item := range v.Items {
		byIndex[item.Index] = item
	}

	relevant := make([]core.NewsItem, 0, len(items))
	for i, item := range items {
		entry, found := byIndex[i]
		if !found {
			item.Score = 0
			item.Reason = noAnalysisReason
			continue
		}
		item.Score = entry.Score
		item.Reason = entry.Reason
		if item.Score > a.minScore {
			relevant = append(relevant, item)
		}
	}

	// An overall negative verdict overrides individual scores.
	if !v.HasRelevant {
		relevant = relevant[:0]
	}

	// Ties keep retrieval order.
	sort.SliceStable(relevant, func(i, j int) bool {
		return relevant[i].Score > relevant[j].Score
	})

	analysis := core.Analysis{
		HasRelevant: v.HasRelevant,
		Relevant:    relevant,
		Summary:     v.Analysis,
	}
	if !v.HasRelevant {
		analysis.Suggestions = v.Suggestions
	}
	return analysis
}
