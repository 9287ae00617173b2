package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lumina-market/storefront/internal/core/domain"
	"github.com/lumina-market/storefront/internal/core/ports"
)

// ViewHandler serves the composed storefront page and the view toggles.
type ViewHandler struct {
	service ports.ViewService
}

func NewViewHandler(service ports.ViewService) *ViewHandler {
	return &ViewHandler{service: service}
}

// Storefront handles GET /v1/storefront.
//
// @Summary      Compose the page
// @Description  View state, session, filtered products, cart and, once started, the chat transcript.
// @Tags         view
// @Produce      json
// @Param        category  query     string  false  "Category slug, default all"
// @Param        q         query     string  false  "Search text"
// @Success      200       {object}  storefrontResponse
// @Failure      400       {object}  errorResponse
// @Router       /v1/storefront [get]
func (h *ViewHandler) Storefront(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}
	page, err := h.service.Page(c.Request().Context(), clientID, domain.Category(c.QueryParam("category")), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toStorefrontResponse(page))
}

// SetMode handles PUT /v1/view/mode.
//
// @Summary      Switch between storefront and admin dashboard
// @Tags         view
// @Accept       json
// @Produce      json
// @Param        body  body      viewModeRequest  true  "Target mode"
// @Success      200   {object}  domain.ViewState
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/view/mode [put]
func (h *ViewHandler) SetMode(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}
	var req viewModeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	state, err := h.service.SetMode(c.Request().Context(), clientID, domain.ViewMode(req.Mode))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, state)
}

// OpenCart handles POST /v1/view/cart/open.
//
// @Summary  Open the cart drawer
// @Tags     view
// @Produce  json
// @Success  200  {object}  domain.ViewState
// @Router   /v1/view/cart/open [post]
func (h *ViewHandler) OpenCart(c echo.Context) error {
	return h.toggle(c, h.service.SetCartOpen, true)
}

// CloseCart handles POST /v1/view/cart/close.
//
// @Summary  Close the cart drawer
// @Tags     view
// @Produce  json
// @Success  200  {object}  domain.ViewState
// @Router   /v1/view/cart/close [post]
func (h *ViewHandler) CloseCart(c echo.Context) error {
	return h.toggle(c, h.service.SetCartOpen, false)
}

// OpenChat handles POST /v1/view/chat/open.
//
// @Summary  Open the chat widget
// @Tags     view
// @Produce  json
// @Success  200  {object}  domain.ViewState
// @Router   /v1/view/chat/open [post]
func (h *ViewHandler) OpenChat(c echo.Context) error {
	return h.toggle(c, h.service.SetChatOpen, true)
}

// CloseChat handles POST /v1/view/chat/close. A reply still streaming keeps
// going and is in the transcript when the widget reopens.
//
// @Summary  Close the chat widget
// @Tags     view
// @Produce  json
// @Success  200  {object}  domain.ViewState
// @Router   /v1/view/chat/close [post]
func (h *ViewHandler) CloseChat(c echo.Context) error {
	return h.toggle(c, h.service.SetChatOpen, false)
}

func (h *ViewHandler) toggle(c echo.Context, set func(string, bool) domain.ViewState, open bool) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, set(clientID, open))
}
