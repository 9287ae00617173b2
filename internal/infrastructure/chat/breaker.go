package chat

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"

	"github.com/lumina-market/storefront/internal/core/ports"
)

// BreakerOptions configures BreakerProvider.
type BreakerOptions struct {
	// Failures is the number of consecutive failed replies that opens the breaker.
	Failures uint32
	// Cooldown is how long the breaker stays open before letting a probe through.
	Cooldown time.Duration
}

// BreakerProvider guards another provider with a circuit breaker. A reply
// counts as failed when its stream yields an error. Replies aborted by the
// caller do not count.
type BreakerProvider struct {
	next ports.ChatProvider
	cb   *gobreaker.CircuitBreaker[struct{}]
}

func NewBreakerProvider(next ports.ChatProvider, opts BreakerOptions, log zerolog.Logger) *BreakerProvider {
	if opts.Failures == 0 {
		opts.Failures = 5
	}
	if opts.Cooldown <= 0 {
		opts.Cooldown = 30 * time.Second
	}

	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:    "chat-provider",
		Timeout: opts.Cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= opts.Failures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	})
	return &BreakerProvider{next: next, cb: cb}
}

// State reports the breaker state, for health checks.
func (p *BreakerProvider) State() gobreaker.State {
	return p.cb.State()
}

// NewConversation is not guarded: opening a chat does not reach the service,
// and a widget must still render its greeting while the breaker is open.
func (p *BreakerProvider) NewConversation(ctx context.Context, systemPrompt string) (ports.Conversation, error) {
	conv, err := p.next.NewConversation(ctx, systemPrompt)
	if err != nil {
		return nil, err
	}
	return &breakerConversation{next: conv, cb: p.cb}, nil
}

type breakerConversation struct {
	next ports.Conversation
	cb   *gobreaker.CircuitBreaker[struct{}]
}

// Stream runs the whole reply as one breaker request. While the breaker is
// open the sequence yields only the rejection.
func (c *breakerConversation) Stream(ctx context.Context, text string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		stopped := false
		_, err := c.cb.Execute(func() (struct{}, error) {
			for fragment, err := range c.next.Stream(ctx, text) {
				if err != nil {
					return struct{}{}, err
				}
				if !yield(fragment, nil) {
					stopped = true
					return struct{}{}, nil
				}
			}
			return struct{}{}, nil
		})
		if err != nil && !stopped {
			yield("", breakerError(err))
		}
	}
}

func breakerError(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("chat provider temporarily disabled: %w", err)
	}
	return err
}
