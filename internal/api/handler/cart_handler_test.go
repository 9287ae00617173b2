package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/lumina-market/storefront/internal/core/domain"
	"github.com/lumina-market/storefront/internal/core/ports"
)

type stubCartService struct {
	viewFn   func(ctx context.Context, clientID string) (*ports.CartView, error)
	addFn    func(ctx context.Context, clientID string, productID int64) (*ports.CartView, error)
	updateFn func(ctx context.Context, clientID string, productID int64, delta int) (*ports.CartView, error)
	removeFn func(ctx context.Context, clientID string, productID int64) (*ports.CartView, error)
}

func (s *stubCartService) View(ctx context.Context, clientID string) (*ports.CartView, error) {
	return s.viewFn(ctx, clientID)
}

func (s *stubCartService) AddToCart(ctx context.Context, clientID string, productID int64) (*ports.CartView, error) {
	return s.addFn(ctx, clientID, productID)
}

func (s *stubCartService) UpdateQuantity(ctx context.Context, clientID string, productID int64, delta int) (*ports.CartView, error) {
	return s.updateFn(ctx, clientID, productID, delta)
}

func (s *stubCartService) RemoveItem(ctx context.Context, clientID string, productID int64) (*ports.CartView, error) {
	return s.removeFn(ctx, clientID, productID)
}

func cartWith(lines ...domain.CartLine) *ports.CartView {
	cart := &domain.Cart{Lines: lines}
	return &ports.CartView{Lines: cart.Lines, Total: cart.Total(), ItemCount: cart.ItemCount()}
}

func TestCartHandler_Get_EmptyCartHasLinesArray(t *testing.T) {
	stub := &stubCartService{
		viewFn: func(context.Context, string) (*ports.CartView, error) { return &ports.CartView{}, nil },
	}
	h := NewCartHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/v1/cart", "")
	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := rec.Body.String(); got != "{\"lines\":[],\"total\":0,\"item_count\":0}\n" {
		t.Fatalf("unexpected body: %s", got)
	}
}

func TestCartHandler_AddItem(t *testing.T) {
	stub := &stubCartService{
		addFn: func(_ context.Context, clientID string, productID int64) (*ports.CartView, error) {
			if clientID != testClientID || productID != 2 {
				t.Fatalf("unexpected args: %s %d", clientID, productID)
			}
			return cartWith(domain.CartLine{
				Product:  domain.Product{ID: 2, Name: "무선 노이즈 캔슬링 헤드폰", Price: 329000, Category: domain.CategoryElectronics},
				Quantity: 2,
			}), nil
		},
	}
	h := NewCartHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/v1/cart/items", `{"product_id":2}`)
	if err := h.AddItem(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp cartResponse
	decodeJSON(t, rec, &resp)
	if len(resp.Lines) != 1 || resp.Lines[0].Subtotal != 658000 || resp.Total != 658000 || resp.ItemCount != 2 {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if resp.Lines[0].Category != "electronics" {
		t.Fatalf("unexpected category: %q", resp.Lines[0].Category)
	}
}

func TestCartHandler_AddItem_RejectsMissingProduct(t *testing.T) {
	h := NewCartHandler(&stubCartService{})

	c, _ := newTestContext(http.MethodPost, "/v1/cart/items", `{"product_id":0}`)
	expectHTTPError(t, h.AddItem(c), http.StatusBadRequest)
}

func TestCartHandler_AddItem_UnknownProduct(t *testing.T) {
	stub := &stubCartService{
		addFn: func(context.Context, string, int64) (*ports.CartView, error) {
			return nil, domain.ErrProductNotFound
		},
	}
	h := NewCartHandler(stub)

	c, _ := newTestContext(http.MethodPost, "/v1/cart/items", `{"product_id":99}`)
	if err := h.AddItem(c); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestCartHandler_UpdateItem(t *testing.T) {
	var gotID int64
	var gotDelta int
	stub := &stubCartService{
		updateFn: func(_ context.Context, _ string, productID int64, delta int) (*ports.CartView, error) {
			gotID, gotDelta = productID, delta
			return &ports.CartView{}, nil
		},
	}
	h := NewCartHandler(stub)

	c, rec := newTestContext(http.MethodPatch, "/v1/cart/items/7", `{"delta":-1}`)
	c.SetParamNames("id")
	c.SetParamValues("7")
	if err := h.UpdateItem(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || gotID != 7 || gotDelta != -1 {
		t.Fatalf("unexpected call: code=%d id=%d delta=%d", rec.Code, gotID, gotDelta)
	}
}

func TestCartHandler_UpdateItem_InvalidID(t *testing.T) {
	h := NewCartHandler(&stubCartService{})

	for _, id := range []string{"abc", "0", "-3"} {
		c, _ := newTestContext(http.MethodPatch, "/v1/cart/items/"+id, `{"delta":1}`)
		c.SetParamNames("id")
		c.SetParamValues(id)
		expectHTTPError(t, h.UpdateItem(c), http.StatusBadRequest)
	}
}

func TestCartHandler_UpdateItem_DeltaOutOfRange(t *testing.T) {
	h := NewCartHandler(&stubCartService{})

	for _, body := range []string{`{"delta":1000}`, `{"delta":-1000}`, `{"delta":9223372036854775807}`, `{"delta":0}`} {
		c, _ := newTestContext(http.MethodPatch, "/v1/cart/items/7", body)
		c.SetParamNames("id")
		c.SetParamValues("7")
		expectHTTPError(t, h.UpdateItem(c), http.StatusBadRequest)
	}
}

func TestCartHandler_RemoveItem(t *testing.T) {
	var gotID int64
	stub := &stubCartService{
		removeFn: func(_ context.Context, _ string, productID int64) (*ports.CartView, error) {
			gotID = productID
			return &ports.CartView{}, nil
		},
	}
	h := NewCartHandler(stub)

	c, rec := newTestContext(http.MethodDelete, "/v1/cart/items/4", "")
	c.SetParamNames("id")
	c.SetParamValues("4")
	if err := h.RemoveItem(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || gotID != 4 {
		t.Fatalf("unexpected call: code=%d id=%d", rec.Code, gotID)
	}
}
