package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxClientID extracts the client id injected by the Client middleware.
// Handlers mounted without it fail fast with 400.
func ctxClientID(c echo.Context) (string, error) {
	clientID, _ := c.Get("client_id").(string)
	if clientID == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "missing client identity")
	}
	return clientID, nil
}

// bindAndValidate decodes the request body into req and runs the validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
