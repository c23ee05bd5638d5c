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

package newscout

import (
	"log/slog"

	"github.com/poiesic/newscout/ai"
	"github.com/poiesic/newscout/ai/openai"
	"github.com/poiesic/newscout/provider"
	"github.com/poiesic/newscout/search"
	"github.com/poiesic/newscout/storage"
	"github.com/poiesic/newscout/storage/badger"
)

// Assistant bundles the conversation store, the news providers, and the
// AI provider behind a single lifecycle. Conversation history is held
// in memory and lives only as long as the process.
type Assistant struct {
	conversations storage.ConversationRepository
	providers     *provider.Set
	aiProvider    ai.AIProvider
	logger        *slog.Logger
}

// AssistantOption configures an Assistant.
type AssistantOption func(*assistantOptions)

type assistantOptions struct {
	aiConfig       *ai.Config
	providerConfig *provider.Config
}

// WithAIConfig overrides the default LLM configuration.
func WithAIConfig(cfg *ai.Config) AssistantOption {
	return func(o *assistantOptions) {
		if cfg != nil {
			o.aiConfig = cfg
		}
	}
}

// WithProviderConfig overrides the default news provider configuration.
func WithProviderConfig(cfg *provider.Config) AssistantOption {
	return func(o *assistantOptions) {
		if cfg != nil {
			o.providerConfig = cfg
		}
	}
}

// NewAssistant wires the full assistant stack.
func NewAssistant(opts ...AssistantOption) (*Assistant, error) {
	// Apply options
	options := &assistantOptions{
		aiConfig:       ai.DefaultConfig(), // Default if not provided
		providerConfig: provider.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	// Create conversation repository
	conversations, err := badger.NewConversationRepository()
	if err != nil {
		return nil, err
	}

	// Create news provider set
	providers, err := provider.NewSet(options.providerConfig)
	if err != nil {
		conversations.Close()
		return nil, err
	}

	// Create AI provider with configured settings
	aiProvider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		providers.Close()
		conversations.Close()
		return nil, err
	}

	return &Assistant{
		conversations: conversations,
		providers:     providers,
		aiProvider:    aiProvider,
		logger:        slog.Default(),
	}, nil
}

func (a *Assistant) Close() error {
	// Close AI provider first
	if err := a.aiProvider.Close(); err != nil {
		a.logger.Error("error closing AI provider", "err", err)
	}

	if err := a.providers.Close(); err != nil {
		a.logger.Error("error closing provider set", "err", err)
	}

	if err := a.conversations.Close(); err != nil {
		a.logger.Error("error closing conversation repository", "err", err)
		return err
	}
	return nil
}

func (a *Assistant) ConversationRepository() storage.ConversationRepository {
	return a.conversations
}

func (a *Assistant) Providers() *provider.Set {
	return a.providers
}

func (a *Assistant) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(a.conversations, a.providers, a.aiProvider, opts...)
}
