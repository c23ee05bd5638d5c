package storage

import (
	"testing"
	"time"

	"github.com/poiesic/newscout/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageRoundTrip(t *testing.T) {
	t.Run("preserves all fields", func(t *testing.T) {
		msg := &core.Message{
			Role:      core.RoleUser,
			Content:   "latest news about quantum computing",
			CreatedAt: time.Date(2025, 6, 12, 9, 30, 0, 123456789, time.UTC),
		}

		data := MarshalMessage(msg)
		got, err := UnmarshalMessage(data)
		require.NoError(t, err)

		assert.Equal(t, msg.Role, got.Role)
		assert.Equal(t, msg.Content, got.Content)
		assert.True(t, msg.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("normalizes timestamps to UTC", func(t *testing.T) {
		loc := time.FixedZone("EST", -5*3600)
		msg := &core.Message{
			Role:      core.RoleAssistant,
			Content:   "here is what I found",
			CreatedAt: time.Date(2025, 6, 12, 4, 30, 0, 0, loc),
		}

		got, err := UnmarshalMessage(MarshalMessage(msg))
		require.NoError(t, err)

		assert.Equal(t, time.UTC, got.CreatedAt.Location())
		assert.True(t, msg.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("handles unicode content", func(t *testing.T) {
		msg := &core.Message{
			Role:      core.RoleUser,
			Content:   "новости про ИИ 🤖",
			CreatedAt: time.Now().UTC(),
		}

		got, err := UnmarshalMessage(MarshalMessage(msg))
		require.NoError(t, err)
		assert.Equal(t, msg.Content, got.Content)
	})
}

func TestUnmarshalMessageErrors(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		_, err := UnmarshalMessage(nil)
		assert.ErrorIs(t, err, ErrSerializationFailed)
	})

	t.Run("truncated input", func(t *testing.T) {
		msg := &core.Message{Role: core.RoleUser, Content: "hello", CreatedAt: time.Now().UTC()}
		data := MarshalMessage(msg)

		_, err := UnmarshalMessage(data[:len(data)/2])
		assert.ErrorIs(t, err, ErrSerializationFailed)
	})
}

func TestMessageMUSSkip(t *testing.T) {
	first := &core.Message{Role: core.RoleUser, Content: "first", CreatedAt: time.Now().UTC()}
	second := &core.Message{Role: core.RoleAssistant, Content: "second", CreatedAt: time.Now().UTC()}

	buf := append(MarshalMessage(first), MarshalMessage(second)...)

	n, err := MessageMUS.Skip(buf)
	require.NoError(t, err)

	got, _, err := MessageMUS.Unmarshal(buf[n:])
	require.NoError(t, err)
	assert.Equal(t, second.Content, got.Content)
}
