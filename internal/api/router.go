package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/lumina-market/storefront/docs"
	"github.com/lumina-market/storefront/internal/api/handler"
	"github.com/lumina-market/storefront/internal/api/middleware"
	"github.com/lumina-market/storefront/internal/core/domain"
	"github.com/lumina-market/storefront/internal/core/ports"
)

// Dependencies is everything the router wires into handlers.
type Dependencies struct {
	Log       zerolog.Logger
	JWTSecret string
	// Production turns on secure cookies and the WebSocket origin check.
	Production bool

	Catalog  ports.CatalogService
	Cart     ports.CartService
	Auth     ports.AuthService
	Sessions ports.SessionStore
	Chat     ports.ChatService
	View     ports.ViewService
	Admin    ports.AdminService

	// Optional backends, checked by the readiness probe when set.
	Mongo *mongo.Database
	Redis *redis.Client
	// Extra readiness checks keyed by name.
	Checks map[string]handler.DependencyCheck
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("lumina"))

	// --- Health probes, metrics and docs (no client identity) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Mongo, d.Redis)
	for name, check := range d.Checks {
		healthDepsHandler.WithCheck(name, check)
	}

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Storefront API ---
	v1 := e.Group("/v1", middleware.Client(d.Production))

	catalogHandler := handler.NewCatalogHandler(d.Catalog)
	v1.GET("/categories", catalogHandler.Categories)
	v1.GET("/products", catalogHandler.List)
	v1.GET("/products/:id", catalogHandler.Get)

	cartHandler := handler.NewCartHandler(d.Cart)
	v1.GET("/cart", cartHandler.Get)
	v1.POST("/cart/items", cartHandler.AddItem)
	v1.PATCH("/cart/items/:id", cartHandler.UpdateItem)
	v1.DELETE("/cart/items/:id", cartHandler.RemoveItem)

	authHandler := handler.NewAuthHandler(d.Auth)
	v1.POST("/session/login", authHandler.Login)
	v1.GET("/session", authHandler.Current)
	v1.POST("/session/logout", authHandler.Logout)
	v1.POST("/session/logout/confirm", authHandler.ConfirmLogout)

	chatHandler := handler.NewChatHandler(d.Chat, !d.Production, d.Log)
	v1.GET("/chat/messages", chatHandler.Transcript)
	v1.POST("/chat/messages", chatHandler.Send)
	v1.GET("/chat/ws", chatHandler.Socket)

	viewHandler := handler.NewViewHandler(d.View)
	v1.GET("/storefront", viewHandler.Storefront)
	v1.PUT("/view/mode", viewHandler.SetMode)
	v1.POST("/view/cart/open", viewHandler.OpenCart)
	v1.POST("/view/cart/close", viewHandler.CloseCart)
	v1.POST("/view/chat/open", viewHandler.OpenChat)
	v1.POST("/view/chat/close", viewHandler.CloseChat)

	// --- Admin dashboard ---
	admin := v1.Group("/admin",
		middleware.Auth(d.JWTSecret),
		middleware.ActiveSession(d.Sessions),
		middleware.RBAC(domain.RoleAdministrator),
	)
	adminHandler := handler.NewAdminHandler(d.Admin)
	admin.GET("/products", adminHandler.List)
	admin.POST("/products", adminHandler.Save)
	admin.POST("/products/draft", adminHandler.Draft)
	admin.GET("/products/:id", adminHandler.Get)
	admin.DELETE("/products/:id", adminHandler.Delete)
	admin.POST("/products/:id/delete/confirm", adminHandler.ConfirmDelete)

	return e
}
