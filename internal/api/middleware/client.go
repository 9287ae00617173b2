package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// ClientCookie carries the anonymous client id between requests.
	ClientCookie = "lumina_client"
	// ClientHeader lets non-browser clients pick their id explicitly.
	ClientHeader = "X-Client-ID"

	clientCookieMaxAge = 60 * 60 * 24 * 30
)

// Client identifies the browser behind a request. The id comes from the
// X-Client-ID header or the lumina_client cookie; a missing or malformed id
// is replaced with a fresh one and written back as a cookie.
func Client(secure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := requestClientID(c)
			if !ok {
				id = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     ClientCookie,
					Value:    id,
					Path:     "/",
					MaxAge:   clientCookieMaxAge,
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}
			c.Set("client_id", id)
			return next(c)
		}
	}
}

func requestClientID(c echo.Context) (string, bool) {
	if h := c.Request().Header.Get(ClientHeader); validClientID(h) {
		return h, true
	}
	if ck, err := c.Cookie(ClientCookie); err == nil && validClientID(ck.Value) {
		return ck.Value, true
	}
	return "", false
}

func validClientID(s string) bool {
	if s == "" {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
