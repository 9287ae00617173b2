package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lumina-market/storefront/internal/core/ports"
)

// AdminHandler serves the product dashboard. Routes are mounted behind the
// Auth, ActiveSession and RBAC middleware.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// List handles GET /v1/admin/products.
//
// @Summary      Product table
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  productListResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/products [get]
func (h *AdminHandler) List(c echo.Context) error {
	products, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductList(products))
}

// Draft handles POST /v1/admin/products/draft.
//
// @Summary      Start a new product
// @Description  Returns an unsaved product with a fresh id for the editor.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Product
// @Router       /v1/admin/products/draft [post]
func (h *AdminHandler) Draft(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.Draft(c.Request().Context()))
}

// Get handles GET /v1/admin/products/:id.
//
// @Summary      Load a product into the editor
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Product id"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/products/{id} [get]
func (h *AdminHandler) Get(c echo.Context) error {
	id, err := pathProductID(c)
	if err != nil {
		return err
	}
	p, err := h.service.Edit(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Save handles POST /v1/admin/products.
//
// @Summary      Save the editor
// @Description  Creates the product when its id is new, replaces it otherwise.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product"
// @Success      200   {object}  saveProductResponse
// @Success      201   {object}  saveProductResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/admin/products [post]
func (h *AdminHandler) Save(c echo.Context) error {
	var req productRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	res, err := h.service.Save(c.Request().Context(), toProduct(req))
	if err != nil {
		return err
	}
	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	return c.JSON(status, saveProductResponse{Product: res.Product, Created: res.Created})
}

// Delete handles DELETE /v1/admin/products/:id. Nothing is removed until
// the returned token is confirmed.
//
// @Summary      Request product deletion
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Product id"
// @Success      202  {object}  confirmationResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/products/{id} [delete]
func (h *AdminHandler) Delete(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}
	id, err := pathProductID(c)
	if err != nil {
		return err
	}
	conf, err := h.service.RequestDelete(c.Request().Context(), clientID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, toConfirmationResponse(conf))
}

// ConfirmDelete handles POST /v1/admin/products/:id/delete/confirm.
//
// @Summary      Confirm product deletion
// @Tags         admin
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  int             true  "Product id"
// @Param        body  body  confirmRequest  true  "Confirmation token"
// @Success      204
// @Failure      412  {object}  errorResponse
// @Router       /v1/admin/products/{id}/delete/confirm [post]
func (h *AdminHandler) ConfirmDelete(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}
	id, err := pathProductID(c)
	if err != nil {
		return err
	}
	var req confirmRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.ConfirmDelete(c.Request().Context(), clientID, id, req.Token); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
