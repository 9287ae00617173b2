package domain

import "time"

// ChatRole identifies the author of a chat message.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one entry in a conversation transcript.
//
// An assistant message goes pending (empty, streaming) → streaming (partial
// text) → final. Text only grows while Streaming is true and never changes
// after it turns false. A failed stream does not rewrite the placeholder into
// an error: it keeps whatever text had arrived, only Streaming is cleared so
// no message stays pending, and a separate apology message follows it.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      ChatRole  `json:"role"`
	Text      string    `json:"text"`
	Streaming bool      `json:"streaming"`
	CreatedAt time.Time `json:"created_at"`
}
