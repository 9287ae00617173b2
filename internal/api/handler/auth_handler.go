package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lumina-market/storefront/internal/core/domain"
	"github.com/lumina-market/storefront/internal/core/ports"
)

// AuthHandler serves the sign-in form and the session of the calling client.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login signs the client in or up and returns a bearer token for the admin API.
//
// @Summary      Sign in or sign up
// @Description  Any well-formed credentials succeed; only the configured administrator account gets the administrator role.
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Sign-in form"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/session/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), clientID, toCredentials(req), domain.AuthMode(req.Mode))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loginResponse{Token: res.Token, Session: toSessionResponse(res.Session)})
}

// Current returns the session of the calling client.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/session [get]
func (h *AuthHandler) Current(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}
	session, err := h.authService.Current(c.Request().Context(), clientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSessionResponse(session))
}

// Logout asks for confirmation before ending the session.
//
// @Summary      Request logout
// @Description  Returns a single-use token to post to /v1/session/logout/confirm.
// @Tags         session
// @Produce      json
// @Success      202  {object}  confirmationResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/session/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}
	conf, err := h.authService.RequestLogout(c.Request().Context(), clientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, toConfirmationResponse(conf))
}

// ConfirmLogout ends the session.
//
// @Summary      Confirm logout
// @Tags         session
// @Accept       json
// @Param        body  body  confirmRequest  true  "Confirmation token"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      412  {object}  errorResponse
// @Router       /v1/session/logout/confirm [post]
func (h *AuthHandler) ConfirmLogout(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}
	var req confirmRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.authService.ConfirmLogout(c.Request().Context(), clientID, req.Token); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
