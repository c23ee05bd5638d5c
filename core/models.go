package core

import (
	"encoding/json"
	"fmt"
	"time"
)

// Role identifies the author of a conversation message.
type Role int

const (
	// RoleUser represents the human side of the conversation.
	RoleUser Role = iota + 1
	// RoleAssistant represents the assistant's replies.
	RoleAssistant
)

// String returns the wire name of the role.
func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAssistant:
		return "assistant"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// MarshalJSON encodes the role as its wire name.
func (r Role) MarshalJSON() ([]byte, error) {
	if err := ValidateRole(r); err != nil {
		return nil, err
	}
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes a role from its wire name.
func (r *Role) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "user":
		*r = RoleUser
	case "assistant":
		*r = RoleAssistant
	default:
		return fmt.Errorf("%w: %q", ErrInvalidRole, name)
	}
	return nil
}

// Message represents a single turn in a conversation.
// A message is immutable once appended to a session.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"timestamp"`
}

// NewsItem is the canonical news record shared by every search provider.
// Image and Date are optional; an empty string means the provider did not
// supply the field. Score and Reason are zero until the relevance analyzer
// attaches them, after which the item is never mutated again.
type NewsItem struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Body   string `json:"body"`
	Source string `json:"source"`
	Image  string `json:"image,omitempty"`
	Date   string `json:"date,omitempty"`
	Score  int    `json:"relevance_score,omitempty"`
	Reason string `json:"relevance_reason,omitempty"`
}

// Analysis is the outcome of relevance analysis for one search request.
// It is transient and never persisted.
type Analysis struct {
	// HasRelevant reports whether the model judged any candidate relevant.
	// When false, Relevant is always empty.
	HasRelevant bool

	// Relevant holds the surviving candidates sorted by Score descending.
	// Ties preserve the original retrieval order.
	Relevant []NewsItem

	// Summary is the model's optional free-text overall assessment.
	Summary string

	// Suggestions is optional advice surfaced when nothing relevant was found.
	Suggestions string
}

// Conversation is a point-in-time snapshot of a session's message history.
type Conversation struct {
	SessionID string    `json:"session_id"`
	Messages  []Message `json:"messages"`
}

// SearchResponse aggregates everything produced by one search request.
type SearchResponse struct {
	OriginalQuery  string       `json:"original_query"`
	GeneratedQuery string       `json:"generated_query"`
	Results        []NewsItem   `json:"results"`
	HasRelevant    bool         `json:"has_relevant_results"`
	Suggestions    string       `json:"suggestions,omitempty"`
	Reply          string       `json:"reply"`
	Conversation   Conversation `json:"conversation"`
}
