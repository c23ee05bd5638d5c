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

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/newscout"
	"github.com/poiesic/newscout/ai"
	"github.com/poiesic/newscout/provider"
	"github.com/urfave/cli/v2"
)

const openAIHost = "https://api.openai.com/v1"

func main() {
	app := &cli.App{
		Name:  "newscout",
		Usage: "Conversational news search assistant",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API server",
				Action: serveCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "bind",
						Aliases: []string{"b"},
						Usage:   "Address to bind the HTTP server to",
						Value:   ":8000",
						EnvVars: []string{"BIND_ADDR"},
					},
				}, pipelineFlags()...),
			},
			{
				Name:      "search",
				Usage:     "Run a single search from the terminal",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "session",
						Usage: "Session id for conversation continuity",
					},
					&cli.BoolFlag{
						Name:    "verbose",
						Aliases: []string{"v"},
						Usage:   "Print pipeline stages while searching",
					},
				}, pipelineFlags()...),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// pipelineFlags are shared by every command that builds the search pipeline.
func pipelineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "engine",
			Usage:   "News search engine (duckduckgo, serpapi, all)",
			Value:   provider.EngineDuckDuckGo,
			EnvVars: []string{"SEARCH_ENGINE"},
		},
		&cli.StringFlag{
			Name:    "serpapi-key",
			Usage:   "SerpAPI credential",
			EnvVars: []string{"SERPAPI_API_KEY"},
		},
		&cli.IntFlag{
			Name:  "max-results",
			Usage: "Number of news items to retrieve per query",
			Value: 5,
		},
		&cli.StringFlag{
			Name:    "deepseek-key",
			Usage:   "DeepSeek API credential (preferred when set)",
			EnvVars: []string{"DEEPSEEK_API_KEY"},
		},
		&cli.StringFlag{
			Name:    "openai-key",
			Usage:   "OpenAI API credential (used when no DeepSeek key is set)",
			EnvVars: []string{"OPENAI_API_KEY"},
		},
		&cli.StringFlag{
			Name:    "llm-host",
			Usage:   "OpenAI-compatible API base URL (overrides credential-based default)",
			EnvVars: []string{"LLM_HOST"},
		},
		&cli.StringFlag{
			Name:    "llm-model",
			Usage:   "Chat model name (overrides credential-based default)",
			EnvVars: []string{"LLM_MODEL"},
		},
		&cli.IntFlag{
			Name:  "min-score",
			Usage: "Relevance score threshold; items must score above it",
			Value: 7,
		},
	}
}

// aiConfigFromFlags resolves LLM settings. A DeepSeek key keeps the default
// DeepSeek host and model; an OpenAI key retargets both. Explicit --llm-host
// and --llm-model always win.
func aiConfigFromFlags(c *cli.Context) *ai.Config {
	opts := []ai.ConfigOption{
		ai.WithMinScore(c.Int("min-score")),
	}

	if key := c.String("deepseek-key"); key != "" {
		opts = append(opts, ai.WithToken(key))
	} else if key := c.String("openai-key"); key != "" {
		opts = append(opts,
			ai.WithToken(key),
			ai.WithHost(openAIHost),
			ai.WithModel("gpt-4o-mini"),
		)
	}

	if host := c.String("llm-host"); host != "" {
		opts = append(opts, ai.WithHost(host))
	}
	if model := c.String("llm-model"); model != "" {
		opts = append(opts, ai.WithModel(model))
	}

	return ai.NewConfig(opts...)
}

func providerConfigFromFlags(c *cli.Context) *provider.Config {
	return provider.NewConfig(
		provider.WithEngine(c.String("engine")),
		provider.WithSerpAPIKey(c.String("serpapi-key")),
		provider.WithMaxResults(c.Int("max-results")),
	)
}

func buildAssistant(c *cli.Context) (*newscout.Assistant, error) {
	assistant, err := newscout.NewAssistant(
		newscout.WithAIConfig(aiConfigFromFlags(c)),
		newscout.WithProviderConfig(providerConfigFromFlags(c)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build assistant: %w", err)
	}
	return assistant, nil
}

func serveCommand(c *cli.Context) error {
	assistant, err := buildAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	searcher, err := assistant.NewSearcher()
	if err != nil {
		return fmt.Errorf("failed to build searcher: %w", err)
	}

	return runServer(slog.Default(), c.String("bind"), searcher)
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query is required")
	}

	assistant, err := buildAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	searcher, err := assistant.NewSearcher()
	if err != nil {
		return fmt.Errorf("failed to build searcher: %w", err)
	}

	var monitor *printingMonitor
	if c.Bool("verbose") {
		monitor = newPrintingMonitor(os.Stderr)
	}

	resp, err := searcher.SearchWithMonitor(context.Background(), query, c.String("session"), monitorOrNil(monitor))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	fmt.Println(resp.Reply)
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
