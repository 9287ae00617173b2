package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lumina-market/storefront/internal/core/ports"
)

// CartHandler serves the cart drawer of the calling client.
type CartHandler struct {
	service ports.CartService
}

func NewCartHandler(service ports.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// Get handles GET /v1/cart.
//
// @Summary      Show the cart
// @Tags         cart
// @Produce      json
// @Success      200  {object}  cartResponse
// @Router       /v1/cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}
	view, err := h.service.View(c.Request().Context(), clientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(view))
}

// AddItem handles POST /v1/cart/items. Adding a product already in the cart
// increments its quantity.
//
// @Summary      Add a product to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body      addCartItemRequest  true  "Product to add"
// @Success      200   {object}  cartResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/cart/items [post]
func (h *CartHandler) AddItem(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}
	var req addCartItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	view, err := h.service.AddToCart(c.Request().Context(), clientID, req.ProductID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(view))
}

// UpdateItem handles PATCH /v1/cart/items/:id.
//
// @Summary      Change a line's quantity
// @Description  Applies delta to the quantity; the result never drops below one.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        id    path      int                    true  "Product id"
// @Param        body  body      updateCartItemRequest  true  "Quantity change"
// @Success      200   {object}  cartResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/cart/items/{id} [patch]
func (h *CartHandler) UpdateItem(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}
	id, err := pathProductID(c)
	if err != nil {
		return err
	}
	var req updateCartItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	view, err := h.service.UpdateQuantity(c.Request().Context(), clientID, id, req.Delta)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(view))
}

// RemoveItem handles DELETE /v1/cart/items/:id.
//
// @Summary      Remove a line
// @Tags         cart
// @Produce      json
// @Param        id   path      int  true  "Product id"
// @Success      200  {object}  cartResponse
// @Failure      400  {object}  errorResponse
// @Router       /v1/cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}
	id, err := pathProductID(c)
	if err != nil {
		return err
	}
	view, err := h.service.RemoveItem(c.Request().Context(), clientID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(view))
}
