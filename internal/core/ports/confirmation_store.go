package ports

import (
	"context"
	"time"
)

// Actions that need an explicit confirmation step.
const (
	ActionLogout        = "logout"
	ActionDeleteProduct = "delete_product"
)

// Confirmation is handed to the client when a destructive action is requested.
type Confirmation struct {
	Token     string
	Action    string
	ExpiresAt time.Time
}

// ConfirmationStore issues single-use tokens scoped to a client and an action.
type ConfirmationStore interface {
	Issue(ctx context.Context, clientID, action string, ttl time.Duration) (string, error)
	// Consume reports whether token was valid. Any attempt ends the pending
	// confirmation, so a wrong token also cancels it.
	Consume(ctx context.Context, clientID, action, token string) (bool, error)
}
