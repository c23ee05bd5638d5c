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

package storage

import (
	"context"

	"github.com/poiesic/newscout/core"
)

// ConversationRepository stores per-session message history in insertion
// order. Implementations must be safe for concurrent use.
type ConversationRepository interface {
	// AppendMessages appends messages to the session's history, preserving
	// the order given. A new session is created implicitly on first append.
	AppendMessages(ctx context.Context, sessionID string, messages ...core.Message) error

	// RecentMessages returns up to n of the most recent messages for the
	// session, oldest first. An unknown session yields an empty slice.
	RecentMessages(ctx context.Context, sessionID string, n int) ([]core.Message, error)

	// Conversation returns the full history for the session.
	// Returns ErrNotFound if the session has no messages.
	Conversation(ctx context.Context, sessionID string) (*core.Conversation, error)

	// ClearConversation removes all messages for the session. Clearing an
	// unknown session is not an error.
	ClearConversation(ctx context.Context, sessionID string) error

	// Close releases resources held by the repository.
	Close() error
}
