package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/lumina-market/storefront/internal/core/ports"
)

// Auth validates the JWT and injects claims into context. The token must
// belong to the client making the request.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			tokenClient, _ := claims["client_id"].(string)
			if current, ok := c.Get("client_id").(string); ok && current != "" && tokenClient != current {
				return echo.NewHTTPError(http.StatusUnauthorized, "token issued to another client")
			}

			c.Set("name", claims["name"])
			c.Set("email", claims["email"])
			c.Set("role", claims["role"])
			c.Set("client_id", tokenClient)

			return next(c)
		}
	}
}

// ActiveSession rejects tokens whose session has since been closed, or whose
// role no longer matches the session.
func ActiveSession(sessions ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			clientID, _ := c.Get("client_id").(string)
			role, _ := c.Get("role").(string)

			session, ok := sessions.Get(clientID)
			if !ok || string(session.Role) != role {
				return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
			}
			return next(c)
		}
	}
}
