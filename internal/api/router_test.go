package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/lumina-market/storefront/internal/api/middleware"
	"github.com/lumina-market/storefront/internal/core/service"
	"github.com/lumina-market/storefront/internal/infrastructure/chat"
	"github.com/lumina-market/storefront/internal/infrastructure/db/memory"
	"github.com/lumina-market/storefront/internal/infrastructure/seed"
)

const (
	customerClient = "7d9f3c1e-2b4a-4c8d-9e6f-1a2b3c4d5e6f"
	adminClient    = "3e1c9a7b-5d2f-4e8a-b6c4-0f1e2d3c4b5a"
)

// newTestRouter wires the in-memory stack. The Prometheus middleware
// registers collectors globally, so each test binary builds one router.
func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()
	log := zerolog.Nop()

	products, err := seed.Products("")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	hash, err := service.HashPassword("123456", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	views := memory.NewViewStateStore()
	sessions := memory.NewSessionStore()
	confirms := memory.NewConfirmationStore()

	catalog := service.NewCatalogService(memory.NewProductRepository(products), log)
	cart := service.NewCartService(memory.NewCartRepository(), catalog, views, log)
	auth := service.NewAuthService(
		service.NewStaticAdminVerifier("admin@lumina.com", hash),
		sessions, confirms, views,
		service.AuthOptions{JWTSecret: "router-test-secret"},
		log,
	)
	chatService := service.NewChatService(chat.UnavailableProvider{}, service.ChatOptions{}, log)

	return NewRouter(Dependencies{
		Log:       log,
		JWTSecret: "router-test-secret",
		Catalog:   catalog,
		Cart:      cart,
		Auth:      auth,
		Sessions:  sessions,
		Chat:      chatService,
		View:      service.NewViewService(views, sessions, catalog, cart, chatService, log),
		Admin:     service.NewAdminService(catalog, confirms, 0, log),
	})
}

type call struct {
	method, path, body string
	client, token      string
}

func do(t *testing.T, e *echo.Echo, c call) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if c.body != "" {
		body = strings.NewReader(c.body)
	}
	req := httptest.NewRequest(c.method, c.path, body)
	if c.body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if c.client != "" {
		req.Header.Set(middleware.ClientHeader, c.client)
	}
	if c.token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+c.token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, code int) {
	t.Helper()
	if rec.Code != code {
		t.Fatalf("expected %d, got %d: %s", code, rec.Code, rec.Body.String())
	}
}

func TestRouter_StorefrontFlow(t *testing.T) {
	e := newTestRouter(t)

	t.Run("health", func(t *testing.T) {
		expectStatus(t, do(t, e, call{method: http.MethodGet, path: "/health"}), http.StatusOK)
		expectStatus(t, do(t, e, call{method: http.MethodGet, path: "/health/ready"}), http.StatusOK)
	})

	t.Run("anonymous client gets a cookie", func(t *testing.T) {
		rec := do(t, e, call{method: http.MethodGet, path: "/v1/products"})
		expectStatus(t, rec, http.StatusOK)
		if !strings.Contains(rec.Header().Get(echo.HeaderSetCookie), middleware.ClientCookie+"=") {
			t.Fatalf("expected client cookie, got %q", rec.Header().Get(echo.HeaderSetCookie))
		}
	})

	t.Run("catalog filter", func(t *testing.T) {
		rec := do(t, e, call{method: http.MethodGet, path: "/v1/products?category=electronics", client: customerClient})
		expectStatus(t, rec, http.StatusOK)
		list := decode[struct {
			Products []struct {
				Category string `json:"category"`
			} `json:"products"`
			Count int `json:"count"`
		}](t, rec)
		if list.Count == 0 {
			t.Fatalf("expected electronics in the seed catalog")
		}
		for _, p := range list.Products {
			if p.Category != "electronics" {
				t.Fatalf("filter leaked category %q", p.Category)
			}
		}
		expectStatus(t, do(t, e, call{method: http.MethodGet, path: "/v1/products/abc", client: customerClient}), http.StatusBadRequest)
		expectStatus(t, do(t, e, call{method: http.MethodGet, path: "/v1/products/999", client: customerClient}), http.StatusNotFound)
	})

	t.Run("cart merges lines and opens the drawer", func(t *testing.T) {
		for range 2 {
			expectStatus(t, do(t, e, call{method: http.MethodPost, path: "/v1/cart/items", body: `{"product_id":2}`, client: customerClient}), http.StatusOK)
		}
		rec := do(t, e, call{method: http.MethodGet, path: "/v1/cart", client: customerClient})
		cart := decode[struct {
			Lines     []json.RawMessage `json:"lines"`
			Total     int64             `json:"total"`
			ItemCount int               `json:"item_count"`
		}](t, rec)
		if len(cart.Lines) != 1 || cart.ItemCount != 2 || cart.Total != 2*289000 {
			t.Fatalf("unexpected cart: %+v", cart)
		}

		rec = do(t, e, call{method: http.MethodGet, path: "/v1/storefront", client: customerClient})
		page := decode[struct {
			View struct {
				CartOpen bool `json:"cart_open"`
			} `json:"view"`
		}](t, rec)
		if !page.View.CartOpen {
			t.Fatalf("adding to the cart should open the drawer")
		}
	})

	t.Run("admin routes need a token", func(t *testing.T) {
		expectStatus(t, do(t, e, call{method: http.MethodGet, path: "/v1/admin/products", client: customerClient}), http.StatusUnauthorized)
	})

	var customerToken string
	t.Run("customers are forbidden from the dashboard", func(t *testing.T) {
		rec := do(t, e, call{method: http.MethodPost, path: "/v1/session/login", client: customerClient,
			body: `{"mode":"sign-up","name":"지수","email":"jisoo@example.com","password":"secret1"}`})
		expectStatus(t, rec, http.StatusOK)
		customerToken = decode[struct {
			Token string `json:"token"`
		}](t, rec).Token

		expectStatus(t, do(t, e, call{method: http.MethodGet, path: "/v1/admin/products", client: customerClient, token: customerToken}), http.StatusForbidden)
		expectStatus(t, do(t, e, call{method: http.MethodPut, path: "/v1/view/mode", body: `{"mode":"admin"}`, client: customerClient}), http.StatusForbidden)
	})

	var adminToken string
	t.Run("administrator sign-in", func(t *testing.T) {
		rec := do(t, e, call{method: http.MethodPost, path: "/v1/session/login", client: adminClient,
			body: `{"mode":"sign-in","email":"admin@lumina.com","password":"123456"}`})
		expectStatus(t, rec, http.StatusOK)
		adminToken = decode[struct {
			Token string `json:"token"`
		}](t, rec).Token

		expectStatus(t, do(t, e, call{method: http.MethodGet, path: "/v1/admin/products", client: adminClient, token: adminToken}), http.StatusOK)
		expectStatus(t, do(t, e, call{method: http.MethodGet, path: "/v1/admin/products", client: customerClient, token: adminToken}), http.StatusUnauthorized)
	})

	t.Run("delete needs confirmation", func(t *testing.T) {
		rec := do(t, e, call{method: http.MethodDelete, path: "/v1/admin/products/3", client: adminClient, token: adminToken})
		expectStatus(t, rec, http.StatusAccepted)
		conf := decode[struct {
			Token  string `json:"token"`
			Action string `json:"action"`
		}](t, rec)
		if conf.Action != "delete_product:3" {
			t.Fatalf("unexpected action %q", conf.Action)
		}
		expectStatus(t, do(t, e, call{method: http.MethodGet, path: "/v1/products/3", client: adminClient}), http.StatusOK)

		expectStatus(t, do(t, e, call{method: http.MethodPost, path: "/v1/admin/products/3/delete/confirm", body: `{"token":"` + conf.Token + `"}`, client: adminClient, token: adminToken}), http.StatusNoContent)
		expectStatus(t, do(t, e, call{method: http.MethodGet, path: "/v1/products/3", client: adminClient}), http.StatusNotFound)
		expectStatus(t, do(t, e, call{method: http.MethodPost, path: "/v1/admin/products/3/delete/confirm", body: `{"token":"` + conf.Token + `"}`, client: adminClient, token: adminToken}), http.StatusPreconditionFailed)
	})

	t.Run("logout revokes the token", func(t *testing.T) {
		rec := do(t, e, call{method: http.MethodPost, path: "/v1/session/logout", client: adminClient})
		expectStatus(t, rec, http.StatusAccepted)
		tok := decode[struct {
			Token string `json:"token"`
		}](t, rec).Token
		expectStatus(t, do(t, e, call{method: http.MethodPost, path: "/v1/session/logout/confirm", body: `{"token":"` + tok + `"}`, client: adminClient}), http.StatusNoContent)

		expectStatus(t, do(t, e, call{method: http.MethodGet, path: "/v1/session", client: adminClient}), http.StatusUnauthorized)
		expectStatus(t, do(t, e, call{method: http.MethodGet, path: "/v1/admin/products", client: adminClient, token: adminToken}), http.StatusUnauthorized)
	})

	t.Run("chat without a provider apologises", func(t *testing.T) {
		rec := do(t, e, call{method: http.MethodGet, path: "/v1/chat/messages", client: customerClient})
		expectStatus(t, rec, http.StatusOK)

		expectStatus(t, do(t, e, call{method: http.MethodPost, path: "/v1/chat/messages", body: `{"message":"   "}`, client: customerClient}), http.StatusBadRequest)

		rec = do(t, e, call{method: http.MethodPost, path: "/v1/chat/messages", body: `{"message":"추천해줘"}`, client: customerClient})
		expectStatus(t, rec, http.StatusOK)
		if !strings.Contains(rec.Body.String(), "event: error") || !strings.Contains(rec.Body.String(), service.ApologyText) {
			t.Fatalf("expected an error event with the apology, got %s", rec.Body.String())
		}

		rec = do(t, e, call{method: http.MethodGet, path: "/v1/storefront", client: customerClient})
		page := decode[struct {
			Chat []struct {
				Role string `json:"role"`
			} `json:"chat"`
		}](t, rec)
		// greeting, user message, failed placeholder, apology
		if len(page.Chat) != 4 {
			t.Fatalf("expected 4 chat messages, got %d", len(page.Chat))
		}
	})

	t.Run("metrics", func(t *testing.T) {
		rec := do(t, e, call{method: http.MethodGet, path: "/metrics"})
		expectStatus(t, rec, http.StatusOK)
		if !strings.Contains(rec.Body.String(), "lumina_cart_adds_total") {
			t.Fatalf("custom metrics missing from /metrics")
		}
	})
}
