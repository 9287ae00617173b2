package chat

import (
	"context"
	"errors"
	"iter"

	"github.com/lumina-market/storefront/internal/core/ports"
)

// ErrUnavailable is yielded by every stream of UnavailableProvider.
var ErrUnavailable = errors.New("chat provider is not configured")

// UnavailableProvider stands in when no API key is configured. Conversations
// open normally so the widget renders, but every reply fails.
type UnavailableProvider struct{}

func (UnavailableProvider) NewConversation(context.Context, string) (ports.Conversation, error) {
	return unavailableConversation{}, nil
}

type unavailableConversation struct{}

func (unavailableConversation) Stream(context.Context, string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		yield("", ErrUnavailable)
	}
}
