package ports

import (
	"context"
	"iter"

	"github.com/lumina-market/storefront/internal/core/domain"
)

// Conversation is a stateful provider-side chat that remembers prior turns.
type Conversation interface {
	// Stream sends text as the next user turn and yields the reply as an
	// ordered, forward-only sequence of fragments. Iteration may yield an
	// error at any point, after which it stops.
	Stream(ctx context.Context, text string) iter.Seq2[string, error]
}

// ChatProvider opens conversations with a generative-text service.
type ChatProvider interface {
	NewConversation(ctx context.Context, systemPrompt string) (Conversation, error)
}

// ChatStream is the live view of one assistant reply.
type ChatStream interface {
	// Changed fires after one or more fragments were applied. Signals coalesce.
	Changed() <-chan struct{}
	// Done is closed once the reply is final or has failed.
	Done() <-chan struct{}
	// Message is a snapshot of the assistant placeholder.
	Message() domain.ChatMessage
	// Apology is the sidecar message appended on failure, nil otherwise.
	Apology() *domain.ChatMessage
	// Err is the provider error after Done, or nil.
	Err() error
	Cancel()
}

// ChatService owns one conversation per client.
type ChatService interface {
	Send(ctx context.Context, clientID, text string) (ChatStream, error)
	Transcript(ctx context.Context, clientID string) ([]domain.ChatMessage, error)
	// Started reports whether the client's widget has been instantiated.
	Started(clientID string) bool
}
