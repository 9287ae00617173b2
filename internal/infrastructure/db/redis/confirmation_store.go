package redis

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ConfirmationStore keeps pending confirmations in Redis with a TTL.
// Key format: confirm:<action>:<client_id>
type ConfirmationStore struct {
	client *redis.Client
}

// NewConfirmationStore wraps the given Redis client.
func NewConfirmationStore(client *redis.Client) *ConfirmationStore {
	return &ConfirmationStore{client: client}
}

// Issue stores a fresh token, replacing any pending one for the same action.
func (s *ConfirmationStore) Issue(ctx context.Context, clientID, action string, ttl time.Duration) (string, error) {
	token := uuid.NewString()
	if err := s.client.Set(ctx, s.key(clientID, action), token, ttl).Err(); err != nil {
		return "", fmt.Errorf("issue confirmation: %w", err)
	}
	return token, nil
}

// Consume atomically takes the pending token and compares it with token.
// A mismatch still burns the pending token.
func (s *ConfirmationStore) Consume(ctx context.Context, clientID, action, token string) (bool, error) {
	stored, err := s.client.GetDel(ctx, s.key(clientID, action)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("consume confirmation: %w", err)
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(token)) == 1, nil
}

func (s *ConfirmationStore) key(clientID, action string) string {
	return fmt.Sprintf("confirm:%s:%s", action, clientID)
}
