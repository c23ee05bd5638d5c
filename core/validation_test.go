package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateMessage(t *testing.T) {
	valid := Message{
		Role:      RoleUser,
		Content:   "any news about fusion energy?",
		CreatedAt: time.Now().Add(-time.Minute),
	}

	t.Run("valid message", func(t *testing.T) {
		msg := valid
		assert.NoError(t, ValidateMessage(&msg))
	})

	t.Run("nil message", func(t *testing.T) {
		err := ValidateMessage(nil)
		assert.ErrorIs(t, err, ErrInvalidMessage)
	})

	t.Run("empty content", func(t *testing.T) {
		msg := valid
		msg.Content = ""
		err := ValidateMessage(&msg)
		assert.ErrorIs(t, err, ErrInvalidMessage)
		assert.ErrorIs(t, err, ErrEmptyContent)
	})

	t.Run("invalid role", func(t *testing.T) {
		msg := valid
		msg.Role = Role(9)
		err := ValidateMessage(&msg)
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("future timestamp", func(t *testing.T) {
		msg := valid
		msg.CreatedAt = time.Now().Add(time.Hour)
		err := ValidateMessage(&msg)
		assert.ErrorIs(t, err, ErrInvalidTimestamp)
	})
}

func TestValidateRole(t *testing.T) {
	assert.NoError(t, ValidateRole(RoleUser))
	assert.NoError(t, ValidateRole(RoleAssistant))
	assert.ErrorIs(t, ValidateRole(Role(0)), ErrInvalidRole)
	assert.ErrorIs(t, ValidateRole(Role(3)), ErrInvalidRole)
}

func TestIsValidTimestamp(t *testing.T) {
	assert.True(t, IsValidTimestamp(time.Now().Add(-time.Second)))
	assert.False(t, IsValidTimestamp(time.Now().Add(time.Hour)))
}

func TestNormalizeQuery(t *testing.T) {
	t.Run("trims whitespace", func(t *testing.T) {
		q, err := NormalizeQuery("  latest AI regulation news \n")
		require.NoError(t, err)
		assert.Equal(t, "latest AI regulation news", q)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := NormalizeQuery("")
		assert.ErrorIs(t, err, ErrEmptyQuery)
	})

	t.Run("whitespace only", func(t *testing.T) {
		_, err := NormalizeQuery("   \t\n")
		assert.ErrorIs(t, err, ErrEmptyQuery)
	})
}
