package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func runClient(t *testing.T, req *http.Request) (string, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got string
	handler := Client(false)(func(c echo.Context) error {
		got, _ = c.Get("client_id").(string)
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return got, rec
}

func TestClient_IssuesCookieForNewClients(t *testing.T) {
	id, rec := runClient(t, httptest.NewRequest(http.MethodGet, "/", nil))

	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected uuid client id, got %q", id)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != ClientCookie || cookies[0].Value != id || !cookies[0].HttpOnly {
		t.Fatalf("unexpected cookies: %+v", cookies)
	}
}

func TestClient_ReusesCookie(t *testing.T) {
	existing := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: ClientCookie, Value: existing})

	id, rec := runClient(t, req)
	if id != existing {
		t.Fatalf("expected %s, got %s", existing, id)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("expected no new cookie")
	}
}

func TestClient_HeaderWinsOverCookie(t *testing.T) {
	header := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(ClientHeader, header)
	req.AddCookie(&http.Cookie{Name: ClientCookie, Value: uuid.NewString()})

	if id, _ := runClient(t, req); id != header {
		t.Fatalf("expected header id %s, got %s", header, id)
	}
}

func TestClient_ReplacesMalformedIDs(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(ClientHeader, "../../etc/passwd")

	id, rec := runClient(t, req)
	if id == "../../etc/passwd" {
		t.Fatalf("expected malformed id to be replaced")
	}
	if len(rec.Result().Cookies()) != 1 {
		t.Fatalf("expected a fresh cookie")
	}
}
