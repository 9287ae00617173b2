package handler

import (
	"github.com/lumina-market/storefront/internal/core/domain"
	"github.com/lumina-market/storefront/internal/core/ports"
)

// --- Request → domain ---

func toProduct(req productRequest) domain.Product {
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	var price int64
	if req.Price != nil {
		price = *req.Price
	}
	return domain.Product{
		ID:          req.ID,
		Name:        req.Name,
		Price:       price,
		Category:    domain.Category(req.Category),
		Image:       req.Image,
		Description: req.Description,
		Tags:        tags,
	}
}

func toCredentials(req loginRequest) domain.Credentials {
	return domain.Credentials{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
}

// --- Service result → HTTP response ---

func toCategories(categories []domain.Category) []categoryResponse {
	out := make([]categoryResponse, len(categories))
	for i, c := range categories {
		out[i] = categoryResponse{Slug: string(c), Label: c.Label()}
	}
	return out
}

func toProductList(products []domain.Product) productListResponse {
	if products == nil {
		products = []domain.Product{}
	}
	return productListResponse{Products: products, Count: len(products)}
}

func toCartResponse(v *ports.CartView) cartResponse {
	resp := cartResponse{Lines: make([]cartLineResponse, 0, len(v.Lines)), Total: v.Total, ItemCount: v.ItemCount}
	for _, l := range v.Lines {
		resp.Lines = append(resp.Lines, cartLineResponse{
			ProductID: l.ID,
			Name:      l.Name,
			Price:     l.Price,
			Category:  string(l.Category),
			Image:     l.Image,
			Quantity:  l.Quantity,
			Subtotal:  l.Subtotal(),
		})
	}
	return resp
}

func toSessionResponse(s *domain.Session) sessionResponse {
	return sessionResponse{
		Name:    s.Name,
		Email:   s.Email,
		Role:    string(s.Role),
		IsAdmin: s.IsAdmin(),
	}
}

func toConfirmationResponse(c *ports.Confirmation) confirmationResponse {
	return confirmationResponse{Token: c.Token, Action: c.Action, ExpiresAt: c.ExpiresAt.UTC()}
}

func toStorefrontResponse(p *ports.StorefrontPage) storefrontResponse {
	resp := storefrontResponse{
		View:       p.View,
		Categories: toCategories(p.Categories),
		Products:   toProductList(p.Products).Products,
		Cart:       toCartResponse(p.Cart),
		Chat:       p.Chat,
	}
	if p.Session != nil {
		s := toSessionResponse(p.Session)
		resp.Session = &s
	}
	return resp
}
