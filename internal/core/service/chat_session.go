package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lumina-market/storefront/internal/core/domain"
	"github.com/lumina-market/storefront/internal/core/ports"
	"github.com/lumina-market/storefront/internal/infrastructure/metrics"
)

// ApologyText replaces a reply the provider failed to deliver.
const ApologyText = "죄송합니다. 잠시 후 다시 시도해주세요. 😓"

// GreetingText opens every new conversation.
const GreetingText = "안녕하세요! 저는 루미(Lumi)입니다. 🛍️\n어떤 상품을 찾고 계신가요? 특별한 날을 위한 코디나 선물을 추천해 드릴 수 있어요!"

const defaultStreamTimeout = 60 * time.Second

// ChatSession is one chat widget: a transcript plus the provider
// conversation that remembers it. At most one reply streams at a time.
type ChatSession struct {
	conv    ports.Conversation
	timeout time.Duration
	logger  zerolog.Logger
	newID   func() string
	now     func() time.Time

	mu       sync.Mutex
	messages []domain.ChatMessage
	busy     bool
}

// NewChatSession starts a transcript on conv. A non-empty greeting becomes
// the first assistant message. timeout bounds each streamed reply.
func NewChatSession(conv ports.Conversation, greeting string, timeout time.Duration, logger zerolog.Logger) *ChatSession {
	if timeout <= 0 {
		timeout = defaultStreamTimeout
	}
	s := &ChatSession{
		conv:    conv,
		timeout: timeout,
		logger:  logger,
		newID:   newMessageID,
		now:     time.Now,
	}
	if greeting != "" {
		s.messages = append(s.messages, s.newMessage(domain.ChatRoleAssistant, greeting, false))
	}
	return s
}

// Send appends text as a user message plus an empty streaming assistant
// placeholder, then streams the reply into the placeholder in the
// background. It fails with domain.ErrEmptyMessage for blank text and with
// domain.ErrChatBusy while a previous reply is still streaming; in both cases
// the transcript is left alone.
//
// The stream is detached from ctx: a caller that stops listening does not
// stop the reply from being recorded. Use ChatStream.Cancel to abort it.
func (s *ChatSession) Send(ctx context.Context, text string) (*ChatStream, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		metrics.ChatSendsTotal.WithLabelValues("empty").Inc()
		return nil, domain.ErrEmptyMessage
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		metrics.ChatSendsTotal.WithLabelValues("busy").Inc()
		return nil, domain.ErrChatBusy
	}
	s.busy = true
	s.messages = append(s.messages, s.newMessage(domain.ChatRoleUser, text, false))
	s.messages = append(s.messages, s.newMessage(domain.ChatRoleAssistant, "", true))
	index := len(s.messages) - 1
	s.mu.Unlock()

	metrics.ChatSendsTotal.WithLabelValues("accepted").Inc()

	streamCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	st := &ChatStream{
		session: s,
		index:   index,
		changed: make(chan struct{}, 1),
		done:    make(chan struct{}),
		cancel:  cancel,
	}
	go s.consume(streamCtx, st, text)
	return st, nil
}

// consume drains the provider's fragment sequence in order. Fragments are
// applied one by one; the terminal state is set exactly once by finish.
func (s *ChatSession) consume(ctx context.Context, st *ChatStream, text string) {
	defer st.cancel()

	start := time.Now()
	var streamErr error
	for fragment, err := range s.conv.Stream(ctx, text) {
		if err != nil {
			streamErr = err
			break
		}
		if fragment == "" {
			continue
		}
		s.apply(st, fragment)
	}
	s.finish(st, streamErr, time.Since(start))
}

func (s *ChatSession) apply(st *ChatStream, fragment string) {
	s.mu.Lock()
	s.messages[st.index].Text += fragment
	s.mu.Unlock()

	metrics.ChatFragmentsTotal.Inc()
	st.notify()
}

func (s *ChatSession) finish(st *ChatStream, streamErr error, elapsed time.Duration) {
	outcome := "completed"

	s.mu.Lock()
	s.messages[st.index].Streaming = false
	messageID := s.messages[st.index].ID
	if streamErr != nil {
		outcome = "failed"
		apology := s.newMessage(domain.ChatRoleAssistant, ApologyText, false)
		s.messages = append(s.messages, apology)
		st.apology = &apology
		st.err = fmt.Errorf("%w: %w", domain.ErrChatProvider, streamErr)
	}
	s.busy = false
	s.mu.Unlock()

	metrics.ChatStreamsTotal.WithLabelValues(outcome).Inc()
	metrics.ChatStreamDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())

	if streamErr != nil {
		s.logger.Warn().Err(streamErr).Str("message_id", messageID).Msg("chat reply failed")
	} else {
		s.logger.Debug().Str("message_id", messageID).Dur("elapsed", elapsed).Msg("chat reply completed")
	}
	close(st.done)
}

// Transcript returns a copy of every message so far.
func (s *ChatSession) Transcript() []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ChatMessage(nil), s.messages...)
}

// Busy reports whether a reply is streaming.
func (s *ChatSession) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

func (s *ChatSession) message(index int) domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.messages[index]
}

func (s *ChatSession) newMessage(role domain.ChatRole, text string, streaming bool) domain.ChatMessage {
	return domain.ChatMessage{
		ID:        s.newID(),
		Role:      role,
		Text:      text,
		Streaming: streaming,
		CreatedAt: s.now().UTC(),
	}
}

// newMessageID returns a time-ordered id so transcripts sort by creation.
func newMessageID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// ChatStream is a subscription to one assistant reply. It implements
// ports.ChatStream.
type ChatStream struct {
	session *ChatSession
	index   int
	changed chan struct{}
	done    chan struct{}
	cancel  context.CancelFunc

	// set before done is closed
	apology *domain.ChatMessage
	err     error
}

func (st *ChatStream) notify() {
	select {
	case st.changed <- struct{}{}:
	default:
	}
}

func (st *ChatStream) Changed() <-chan struct{} { return st.changed }

func (st *ChatStream) Done() <-chan struct{} { return st.done }

// Message returns the assistant placeholder as it is now.
func (st *ChatStream) Message() domain.ChatMessage {
	return st.session.message(st.index)
}

// Apology returns the sidecar apology once the stream has failed.
func (st *ChatStream) Apology() *domain.ChatMessage {
	select {
	case <-st.done:
		return st.apology
	default:
		return nil
	}
}

// Err returns the provider failure once the stream is done.
func (st *ChatStream) Err() error {
	select {
	case <-st.done:
		return st.err
	default:
		return nil
	}
}

// Cancel aborts the reply. The stream then finishes through the failure path.
func (st *ChatStream) Cancel() {
	st.cancel()
}

// Wait blocks until the stream is done or ctx ends.
func (st *ChatStream) Wait(ctx context.Context) error {
	select {
	case <-st.done:
		return st.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
