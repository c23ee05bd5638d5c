package main

import (
	"os"
	"testing"

	"github.com/poiesic/newscout/ai"
	"github.com/poiesic/newscout/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

// clearEnv removes ambient variables for the duration of the test. A plain
// t.Setenv to "" is not enough: cli treats a present-but-empty variable as
// an override of the flag default.
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

// capturePipelineConfigs runs the shared pipeline flags and hands the parsed
// context to fn.
func capturePipelineConfigs(t *testing.T, args ...string) (*ai.Config, *provider.Config) {
	t.Helper()

	var aiCfg *ai.Config
	var provCfg *provider.Config
	app := &cli.App{
		Name:  "test",
		Flags: pipelineFlags(),
		Action: func(c *cli.Context) error {
			aiCfg = aiConfigFromFlags(c)
			provCfg = providerConfigFromFlags(c)
			return nil
		},
	}

	require.NoError(t, app.Run(append([]string{"test"}, args...)))
	return aiCfg, provCfg
}

func TestAIConfigFromFlags(t *testing.T) {
	clearEnv(t, "DEEPSEEK_API_KEY", "OPENAI_API_KEY", "LLM_HOST", "LLM_MODEL")

	t.Run("defaults keep DeepSeek host and model", func(t *testing.T) {
		cfg, _ := capturePipelineConfigs(t)
		assert.Equal(t, ai.DefaultConfig().Host, cfg.Host)
		assert.Equal(t, ai.DefaultConfig().Model, cfg.Model)
		assert.Equal(t, 7, cfg.MinScore)
	})

	t.Run("deepseek key is preferred", func(t *testing.T) {
		cfg, _ := capturePipelineConfigs(t, "--deepseek-key", "ds-key", "--openai-key", "oa-key")
		assert.Equal(t, "ds-key", cfg.Token)
		assert.Equal(t, ai.DefaultConfig().Host, cfg.Host)
	})

	t.Run("openai key retargets host and model", func(t *testing.T) {
		cfg, _ := capturePipelineConfigs(t, "--openai-key", "oa-key")
		assert.Equal(t, "oa-key", cfg.Token)
		assert.Equal(t, openAIHost, cfg.Host)
		assert.Equal(t, "gpt-4o-mini", cfg.Model)
	})

	t.Run("explicit host and model win", func(t *testing.T) {
		cfg, _ := capturePipelineConfigs(t,
			"--openai-key", "oa-key",
			"--llm-host", "http://localhost:11434/v1",
			"--llm-model", "llama3.1",
		)
		assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
		assert.Equal(t, "llama3.1", cfg.Model)
	})

	t.Run("min-score flag", func(t *testing.T) {
		cfg, _ := capturePipelineConfigs(t, "--min-score", "5")
		assert.Equal(t, 5, cfg.MinScore)
	})
}

func TestProviderConfigFromFlags(t *testing.T) {
	clearEnv(t, "SEARCH_ENGINE", "SERPAPI_API_KEY")

	t.Run("defaults", func(t *testing.T) {
		_, cfg := capturePipelineConfigs(t)
		assert.Equal(t, provider.EngineDuckDuckGo, cfg.Engine)
		assert.Equal(t, 5, cfg.MaxResults)
	})

	t.Run("engine and key flags", func(t *testing.T) {
		_, cfg := capturePipelineConfigs(t, "--engine", "serpapi", "--serpapi-key", "sk", "--max-results", "8")
		assert.Equal(t, provider.EngineSerpAPI, cfg.Engine)
		assert.Equal(t, "sk", cfg.SerpAPIKey)
		assert.Equal(t, 8, cfg.MaxResults)
	})
}

func TestSetupLogger(t *testing.T) {
	newApp := func() *cli.App {
		return &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "log-level",
					Aliases: []string{"l"},
					Value:   "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error {
				return nil
			},
		}
	}

	t.Run("valid log levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error"} {
			t.Run(level, func(t *testing.T) {
				require.NoError(t, newApp().Run([]string{"test", "--log-level", level}))
			})
		}
	})

	t.Run("case insensitive log levels", func(t *testing.T) {
		for _, level := range []string{"DEBUG", "Info", "WaRn", "ERROR"} {
			t.Run(level, func(t *testing.T) {
				require.NoError(t, newApp().Run([]string{"test", "--log-level", level}))
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		err := newApp().Run([]string{"test", "--log-level", "loud"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("log-level flag has alias -l", func(t *testing.T) {
		require.NoError(t, newApp().Run([]string{"test", "-l", "debug"}))
	})
}

func TestSearchCommandRequiresQuery(t *testing.T) {
	app := &cli.App{
		Name: "test",
		Commands: []*cli.Command{
			{
				Name:   "search",
				Action: searchCommand,
				Flags:  pipelineFlags(),
			},
		},
	}

	err := app.Run([]string{"test", "search"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query is required")
}
