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


package provider

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/newscout/core"
)

// Engine names accepted by Config.Engine (case-insensitive).
const (
	// EngineDuckDuckGo is the default engine and requires no credentials.
	EngineDuckDuckGo = "duckduckgo"
	// EngineSerpAPI queries Google News through SerpAPI.
	EngineSerpAPI = "serpapi"
	// EngineAll fans the query out to every usable engine.
	EngineAll = "all"
)

// NewsProvider retrieves news items for a query.
// Implementations must be thread-safe for concurrent use.
type NewsProvider interface {
	// News performs the engine's native query and returns normalized
	// records. Missing fields are empty strings; Image and Date stay
	// optional. maxResults caps the returned slice.
	News(ctx context.Context, query string, maxResults int) ([]core.NewsItem, error)
}

// Config holds configuration for the provider set.
type Config struct {
	// Engine selects the active search engine. Unrecognized values fall
	// back to DuckDuckGo rather than failing. Default: "duckduckgo"
	Engine string

	// MaxResults caps retrieval per request. Default: 5
	MaxResults int

	// SerpAPIKey authorizes the SerpAPI engine. When Engine is "serpapi"
	// and the key is empty, each retrieval falls back to DuckDuckGo.
	SerpAPIKey string

	// Timeout bounds each upstream HTTP call. Default: 10s
	Timeout time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithEngine selects the active search engine.
func WithEngine(engine string) ConfigOption {
	return func(c *Config) {
		c.Engine = engine
	}
}

// WithMaxResults caps retrieval per request.
func WithMaxResults(n int) ConfigOption {
	return func(c *Config) {
		c.MaxResults = n
	}
}

// WithSerpAPIKey sets the SerpAPI credential.
func WithSerpAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.SerpAPIKey = key
	}
}

// WithTimeout bounds each upstream HTTP call.
func WithTimeout(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.Timeout = d
	}
}

// DefaultConfig returns a Config with the defaults used by the original
// deployment: DuckDuckGo, five results per request.
func DefaultConfig() *Config {
	return &Config{
		Engine:     EngineDuckDuckGo,
		MaxResults: 5,
		Timeout:    10 * time.Second,
	}
}

// NewConfig creates a Config with the default values and applies the
// provided options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize lowercases the engine name.
func (c *Config) Normalize() {
	c.Engine = strings.ToLower(strings.TrimSpace(c.Engine))
	if c.Engine == "" {
		c.Engine = EngineDuckDuckGo
	}
}

// Validate checks that the configuration is valid.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.MaxResults <= 0 {
		return errors.New("provider config: MaxResults must be positive")
	}
	if c.Timeout <= 0 {
		return errors.New("provider config: Timeout must be positive")
	}
	return nil
}

// Set is the provider adapter set. It owns one adapter per engine and
// applies the engine selection and fallback policy on every retrieval.
type Set struct {
	config *Config
	ddg    *DuckDuckGo
	serp   *SerpAPI
	fanout *Fanout
	custom NewsProvider
	logger *slog.Logger
}

// SetOption configures a Set.
type SetOption func(*Set) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) SetOption {
	return func(s *Set) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithProvider installs a custom adapter that bypasses engine selection.
// Every retrieval goes to p regardless of the configured engine.
func WithProvider(p NewsProvider) SetOption {
	return func(s *Set) error {
		s.custom = p
		return nil
	}
}

// NewSet creates a provider set from the configuration.
func NewSet(config *Config, opts ...SetOption) (*Set, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	s := &Set{
		config: config,
		ddg:    NewDuckDuckGo(config.Timeout),
		serp:   NewSerpAPI(config.SerpAPIKey, config.Timeout),
		logger: slog.Default().With("component", "provider-set"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if config.Engine == EngineAll {
		fanout, err := NewFanout([]NewsProvider{s.ddg, s.serp}, 0)
		if err != nil {
			return nil, err
		}
		s.fanout = fanout
	}

	return s, nil
}

// Close releases the fan-out worker pool, if any.
func (s *Set) Close() error {
	if s.fanout != nil {
		return s.fanout.Close()
	}
	return nil
}

// Retrieve fetches up to maxResults news items for the query using the
// configured engine. maxResults <= 0 means the configured default.
//
// Retrieval never fails: unknown engines and missing credentials fall back
// to DuckDuckGo for this call, and any upstream error yields an empty slice.
func (s *Set) Retrieve(ctx context.Context, query string, maxResults int) []core.NewsItem {
	if maxResults <= 0 {
		maxResults = s.config.MaxResults
	}

	engine, prov := s.pick()
	items, err := prov.News(ctx, query, maxResults)
	if err != nil {
		s.logger.Warn("retrieval failed, returning no results",
			"engine", engine, "query", query, "err", err)
		return []core.NewsItem{}
	}
	return items
}

// pick resolves the active adapter for one call.
func (s *Set) pick() (string, NewsProvider) {
	if s.custom != nil {
		return "custom", s.custom
	}
	switch s.config.Engine {
	case EngineSerpAPI:
		if s.config.SerpAPIKey == "" {
			s.logger.Warn("serpapi selected without credentials, falling back to duckduckgo")
			return EngineDuckDuckGo, s.ddg
		}
		return EngineSerpAPI, s.serp
	case EngineAll:
		if s.config.SerpAPIKey == "" {
			// Without credentials the fan-out would only duplicate
			// the default engine's work.
			return EngineDuckDuckGo, s.ddg
		}
		return EngineAll, s.fanout
	case EngineDuckDuckGo:
		return EngineDuckDuckGo, s.ddg
	default:
		s.logger.Warn("unrecognized search engine, falling back to duckduckgo",
			"engine", s.config.Engine)
		return EngineDuckDuckGo, s.ddg
	}
}
