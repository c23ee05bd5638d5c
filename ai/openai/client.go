package openai

import (
	"github.com/poiesic/newscout/ai"
	"github.com/poiesic/newscout/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// newChatClient builds the langchaingo client shared by both services.
// Use "none" as token for local OpenAI-compatible services that don't require
// authentication; an authenticated endpoint will then reject the call, which
// lands in the services' fallback branches instead of failing construction.
func newChatClient(config *ai.Config) (llms.Model, error) {
	token := config.Token
	if token == "" {
		token = "none"
	}
	return openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(token),
		openai.WithModel(config.Model),
	)
}

// turnContents converts prior conversation turns into chat messages.
func turnContents(history []ai.Turn) []llms.MessageContent {
	content := make([]llms.MessageContent, 0, len(history))
	for _, turn := range history {
		role := llms.ChatMessageTypeHuman
		if turn.Role == core.RoleAssistant {
			role = llms.ChatMessageTypeAI
		}
		content = append(content, llms.MessageContent{
			Role:  role,
			Parts: []llms.ContentPart{llms.TextPart(turn.Content)},
		})
	}
	return content
}
