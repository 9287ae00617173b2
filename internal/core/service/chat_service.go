package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/lumina-market/storefront/internal/core/domain"
	"github.com/lumina-market/storefront/internal/core/ports"
	"github.com/lumina-market/storefront/internal/pkg/clientmap"
)

// SystemPrompt is the assistant persona sent when a conversation opens.
const SystemPrompt = `당신은 'Lumina Market'의 친절하고 세련된 쇼핑 어시스턴트 '루미(Lumi)'입니다.
한국어로 대화하며, 고객의 취향에 맞는 제품을 추천하거나 쇼핑몰 이용에 대한 도움을 줍니다.

다음은 우리 쇼핑몰의 대표적인 상품 카테고리입니다:
- 의류 (트렌디한 패션)
- 전자제품 (최신 가젯)
- 홈/리빙 (인테리어 소품)
- 액세서리 (주얼리 및 잡화)

고객이 특정 상황(예: 데이트, 집들이 선물, 여행)에 맞는 제품을 물어보면 창의적으로 제안해주세요.
말투는 정중하면서도 친근하게, 이모지를 적절히 사용하여 생동감 있게 답변하세요.`

type ChatOptions struct {
	SystemPrompt  string
	Greeting      string
	StreamTimeout time.Duration
}

// ChatService implements ports.ChatService. The widget for a client, and
// with it the provider conversation, is created on first use and lives
// until the client is swept.
type ChatService struct {
	provider ports.ChatProvider
	opts     ChatOptions
	logger   zerolog.Logger

	sessions *clientmap.Map[*ChatSession]
}

func NewChatService(provider ports.ChatProvider, opts ChatOptions, logger zerolog.Logger) *ChatService {
	if opts.SystemPrompt == "" {
		opts.SystemPrompt = SystemPrompt
	}
	if opts.Greeting == "" {
		opts.Greeting = GreetingText
	}
	if opts.StreamTimeout <= 0 {
		opts.StreamTimeout = defaultStreamTimeout
	}
	return &ChatService{
		provider: provider,
		opts:     opts,
		logger:   logger,
		sessions: clientmap.New[*ChatSession](),
	}
}

func (s *ChatService) session(ctx context.Context, clientID string) (*ChatSession, error) {
	if session, ok := s.sessions.Get(clientID); ok {
		return session, nil
	}

	// Opening a conversation may talk to the provider, so it happens outside
	// the map lock. A racing caller's conversation is discarded.
	conv, err := s.provider.NewConversation(ctx, s.opts.SystemPrompt)
	if err != nil {
		return nil, fmt.Errorf("%w: open conversation: %w", domain.ErrChatProvider, err)
	}
	created := false
	session := s.sessions.GetOrCreate(clientID, func() *ChatSession {
		created = true
		return NewChatSession(conv, s.opts.Greeting, s.opts.StreamTimeout,
			s.logger.With().Str("client_id", clientID).Logger())
	})
	if created {
		s.logger.Debug().Str("client_id", clientID).Msg("chat widget started")
	}
	return session, nil
}

func (s *ChatService) Send(ctx context.Context, clientID, text string) (ports.ChatStream, error) {
	session, err := s.session(ctx, clientID)
	if err != nil {
		return nil, err
	}
	st, err := session.Send(ctx, text)
	if err != nil {
		return nil, err
	}
	return st, nil
}

func (s *ChatService) Transcript(ctx context.Context, clientID string) ([]domain.ChatMessage, error) {
	session, err := s.session(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return session.Transcript(), nil
}

func (s *ChatService) Started(clientID string) bool {
	_, ok := s.sessions.Get(clientID)
	return ok
}

// Sweep forgets the widgets of idle clients. A widget with a reply in flight
// is kept.
func (s *ChatService) Sweep(idle time.Duration) int {
	return s.sessions.Sweep(idle, (*ChatSession).Busy)
}
