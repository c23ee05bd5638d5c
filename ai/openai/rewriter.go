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
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/newscout/ai"
	"github.com/tmc/langchaingo/llms"
)

// Rewriter implements ai.QueryRewriter using OpenAI-compatible chat APIs.
type Rewriter struct {
	client    llms.Model
	maxTokens int
	timeout   time.Duration
	logger    *slog.Logger
}

var _ ai.QueryRewriter = (*Rewriter)(nil)

// newRewriter is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newRewriter(config *ai.Config) (*Rewriter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := newChatClient(config)
	if err != nil {
		return nil, err
	}

	return &Rewriter{
		client:    client,
		maxTokens: config.RewriteMaxTokens,
		timeout:   config.Timeout,
		logger:    slog.Default().With("component", "openai-rewriter"),
	}, nil
}

// NewRewriter creates a new query rewriter using the provided configuration.
//
// Returns ai.QueryRewriter interface to enforce abstraction.
func NewRewriter(config *ai.Config) (ai.QueryRewriter, error) {
	return newRewriter(config)
}

// RewriteQuery generates a concise search query from the user's input using
// an LLM. On any upstream failure the original input is returned unchanged:
// a broken rewrite never blocks the pipeline.
func (r *Rewriter) RewriteQuery(ctx context.Context, input string, history []ai.Turn) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	content := make([]llms.MessageContent, 0, len(history)+2)
	content = append(content, llms.MessageContent{
		Role:  llms.ChatMessageTypeSystem,
		Parts: []llms.ContentPart{llms.TextPart(rewriteSystemPrompt)},
	})
	content = append(content, turnContents(history)...)
	content = append(content, llms.MessageContent{
		Role:  llms.ChatMessageTypeHuman,
		Parts: []llms.ContentPart{llms.TextPart(fmt.Sprintf(rewriteUserTemplate, input))},
	})

	response, err := r.client.GenerateContent(ctx, content,
		llms.WithTemperature(0.0),
		llms.WithMaxTokens(r.maxTokens))
	if err != nil {
		r.logger.Warn("query rewrite failed, using original input", "err", err)
		return input, nil
	}

	if len(response.Choices) < 1 {
		r.logger.Debug("no choices returned from model, using original input")
		return input, nil
	}

	query := strings.TrimSpace(response.Choices[0].Content)
	query = strings.Trim(query, `"`)
	if query == "" {
		return input, nil
	}

	r.logger.Debug("rewrote query", "input", input, "query", query)
	return query, nil
}
