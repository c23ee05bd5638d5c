package newscout

import (
	"testing"

	"github.com/poiesic/newscout/ai"
	"github.com/poiesic/newscout/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssistant(t *testing.T) {
	t.Run("default configuration", func(t *testing.T) {
		assistant, err := NewAssistant()
		require.NoError(t, err)
		defer assistant.Close()

		assert.NotNil(t, assistant.ConversationRepository())
		assert.NotNil(t, assistant.Providers())

		searcher, err := assistant.NewSearcher()
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("custom configuration", func(t *testing.T) {
		assistant, err := NewAssistant(
			WithAIConfig(ai.NewConfig(ai.WithModel("gpt-4o-mini"), ai.WithMinScore(5))),
			WithProviderConfig(provider.NewConfig(provider.WithMaxResults(3))),
		)
		require.NoError(t, err)
		defer assistant.Close()
	})

	t.Run("invalid AI configuration", func(t *testing.T) {
		_, err := NewAssistant(WithAIConfig(ai.NewConfig(ai.WithMinScore(42))))
		assert.Error(t, err)
	})
}
