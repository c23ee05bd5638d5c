package core

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleString(t *testing.T) {
	assert.Equal(t, "user", RoleUser.String())
	assert.Equal(t, "assistant", RoleAssistant.String())
	assert.Equal(t, "role(0)", Role(0).String())
}

func TestRoleJSON(t *testing.T) {
	t.Run("marshal", func(t *testing.T) {
		data, err := json.Marshal(RoleUser)
		require.NoError(t, err)
		assert.Equal(t, `"user"`, string(data))

		data, err = json.Marshal(RoleAssistant)
		require.NoError(t, err)
		assert.Equal(t, `"assistant"`, string(data))
	})

	t.Run("marshal invalid role", func(t *testing.T) {
		_, err := json.Marshal(Role(42))
		assert.Error(t, err)
	})

	t.Run("unmarshal", func(t *testing.T) {
		var r Role
		require.NoError(t, json.Unmarshal([]byte(`"assistant"`), &r))
		assert.Equal(t, RoleAssistant, r)
	})

	t.Run("unmarshal unknown name", func(t *testing.T) {
		var r Role
		err := json.Unmarshal([]byte(`"system"`), &r)
		assert.ErrorIs(t, err, ErrInvalidRole)
	})
}

func TestMessageJSON(t *testing.T) {
	msg := Message{
		Role:      RoleUser,
		Content:   "latest AI regulation news",
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(msg)
	require.NoError(t, err)

	var decoded Message
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, msg.Role, decoded.Role)
	assert.Equal(t, msg.Content, decoded.Content)
	assert.True(t, msg.CreatedAt.Equal(decoded.CreatedAt))
}

func TestNewsItemJSONOmitsOptionalFields(t *testing.T) {
	item := NewsItem{
		Title:  "EU passes AI act",
		URL:    "https://example.com/ai-act",
		Body:   "The European Union approved sweeping rules today.",
		Source: "Example Wire",
	}

	data, err := json.Marshal(item)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "image")
	assert.NotContains(t, string(data), "date")
	assert.NotContains(t, string(data), "relevance_score")
	assert.NotContains(t, string(data), "relevance_reason")
}
