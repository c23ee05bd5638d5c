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


package ai

import (
	"errors"
	"strings"
	"time"
)

// Config holds configuration for language-model service providers.
type Config struct {
	// Host is the base URL of an OpenAI-compatible chat API.
	// Example: "https://api.deepseek.com/v1", "http://localhost:11434/v1"
	Host string

	// Model is the chat model identifier.
	// Example: "deepseek-chat", "gpt-4o-mini"
	Model string

	// Token is the API key for the chat service. It may be left empty for
	// local services; calls against an authenticated endpoint will then fail
	// and take the documented fallback path instead of crashing the pipeline.
	Token string

	// MinScore is the relevance threshold on the 1-10 scale. Items are kept
	// only when their score is strictly greater than MinScore.
	// Default: 7
	MinScore int

	// RewriteTurns is the number of most recent conversation messages passed
	// to the query rewriter as context. Default: 5
	RewriteTurns int

	// AnalyzeTurns is the number of most recent conversation messages passed
	// to the relevance analyzer as context. Default: 3
	AnalyzeTurns int

	// RewriteMaxTokens caps the rewriter's output. Queries are short strings,
	// not prose. Default: 100
	RewriteMaxTokens int

	// AnalyzeMaxTokens caps the analyzer's JSON reply. Default: 800
	AnalyzeMaxTokens int

	// Timeout bounds each model call. On expiry the call takes the same
	// fallback path as any other upstream failure. Default: 30s
	Timeout time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the chat service host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithModel sets the chat model identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithToken sets the API key for the chat service.
func WithToken(token string) ConfigOption {
	return func(c *Config) {
		c.Token = token
	}
}

// WithMinScore sets the relevance threshold. Items survive analysis only when
// their score is strictly greater than the threshold.
func WithMinScore(min int) ConfigOption {
	return func(c *Config) {
		c.MinScore = min
	}
}

// WithRewriteTurns sets how many recent messages the rewriter sees.
func WithRewriteTurns(n int) ConfigOption {
	return func(c *Config) {
		c.RewriteTurns = n
	}
}

// WithAnalyzeTurns sets how many recent messages the analyzer sees.
func WithAnalyzeTurns(n int) ConfigOption {
	return func(c *Config) {
		c.AnalyzeTurns = n
	}
}

// WithTimeout bounds each model call.
func WithTimeout(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.Timeout = d
	}
}

// DefaultConfig returns a Config with the DeepSeek-first defaults used by the
// original deployment.
func DefaultConfig() *Config {
	return &Config{
		Host:             "https://api.deepseek.com/v1",
		Model:            "deepseek-chat",
		MinScore:         7,
		RewriteTurns:     5,
		AnalyzeTurns:     3,
		RewriteMaxTokens: 100,
		AnalyzeMaxTokens: 800,
		Timeout:          30 * time.Second,
	}
}

// NewConfig creates a Config with the default values and applies the provided
// options. This is the recommended way to create a Config with custom settings.
//
// Example:
//
//	cfg := ai.NewConfig(
//	    ai.WithHost("http://localhost:11434/v1"),
//	    ai.WithModel("qwen2.5:3b"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It automatically adds the /v1 suffix to the host if missing, which is
// required by most OpenAI-compatible APIs (DeepSeek, Ollama, vLLM, etc).
func (c *Config) Normalize() {
	if c.Host != "" && !strings.HasSuffix(c.Host, "/v1") {
		c.Host = strings.TrimSuffix(c.Host, "/")
		c.Host = c.Host + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Host == "" {
		return errors.New("ai config: Host is required")
	}
	if c.Model == "" {
		return errors.New("ai config: Model is required")
	}
	if c.MinScore < 0 || c.MinScore > 10 {
		return errors.New("ai config: MinScore must be between 0 and 10")
	}
	if c.RewriteTurns < 0 || c.AnalyzeTurns < 0 {
		return errors.New("ai config: context turns cannot be negative")
	}
	if c.RewriteMaxTokens <= 0 || c.AnalyzeMaxTokens <= 0 {
		return errors.New("ai config: max tokens must be positive")
	}
	if c.Timeout <= 0 {
		return errors.New("ai config: Timeout must be positive")
	}
	return nil
}
