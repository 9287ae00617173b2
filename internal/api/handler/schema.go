package handler

import (
	"time"

	"github.com/lumina-market/storefront/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// --- Request types ---

type addCartItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}

type updateCartItemRequest struct {
	Delta int `json:"delta" validate:"required,min=-999,max=999"`
}

type loginRequest struct {
	Mode     string `json:"mode"     validate:"required,oneof=sign-in sign-up"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type confirmRequest struct {
	Token string `json:"token" validate:"required"`
}

type chatSendRequest struct {
	Message string `json:"message"`
}

type viewModeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=storefront admin"`
}

type productRequest struct {
	ID          int64    `json:"id"          validate:"required,gt=0"`
	Name        string   `json:"name"`
	Price       *int64   `json:"price"       validate:"required,gte=0"`
	Category    string   `json:"category"    validate:"required,oneof=clothing electronics home accessories"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// --- Response types ---

type categoryResponse struct {
	Slug  string `json:"slug"`
	Label string `json:"label"`
}

type productListResponse struct {
	Products []domain.Product `json:"products"`
	Count    int              `json:"count"`
}

type cartLineResponse struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Category  string `json:"category"`
	Image     string `json:"image"`
	Quantity  int    `json:"quantity"`
	Subtotal  int64  `json:"subtotal"`
}

type cartResponse struct {
	Lines     []cartLineResponse `json:"lines"`
	Total     int64              `json:"total"`
	ItemCount int                `json:"item_count"`
}

type sessionResponse struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	IsAdmin bool   `json:"is_admin"`
}

type loginResponse struct {
	Token   string          `json:"token"`
	Session sessionResponse `json:"session"`
}

type confirmationResponse struct {
	Token     string    `json:"token"`
	Action    string    `json:"action"`
	ExpiresAt time.Time `json:"expires_at"`
}

type transcriptResponse struct {
	Messages []domain.ChatMessage `json:"messages"`
}

// chatEvent is the payload of every SSE event and WebSocket frame of a reply.
// Type is fragment, done or error; the WebSocket also sends rejected when a
// message is not accepted.
type chatEvent struct {
	Type    string              `json:"type"`
	Message *domain.ChatMessage `json:"message,omitempty"`
	Apology *domain.ChatMessage `json:"apology,omitempty"`
	Error   string              `json:"error,omitempty"`
}

type storefrontResponse struct {
	View       domain.ViewState     `json:"view"`
	Session    *sessionResponse     `json:"session,omitempty"`
	Categories []categoryResponse   `json:"categories"`
	Products   []domain.Product     `json:"products"`
	Cart       cartResponse         `json:"cart"`
	Chat       []domain.ChatMessage `json:"chat,omitempty"`
}

type saveProductResponse struct {
	Product domain.Product `json:"product"`
	Created bool           `json:"created"`
}
