package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/lumina-market/storefront/internal/core/domain"
)

// RBAC lets the request through only when the role put on the context by
// Auth is one of allowed. Anything else is domain.ErrForbidden, rendered by
// the central error handler.
func RBAC(allowed ...domain.Role) echo.MiddlewareFunc {
	set := make(map[domain.Role]struct{}, len(allowed))
	for _, r := range allowed {
		set[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := set[contextRole(c)]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

func contextRole(c echo.Context) domain.Role {
	switch v := c.Get("role").(type) {
	case domain.Role:
		return v
	case string:
		return domain.Role(v)
	default:
		return ""
	}
}
