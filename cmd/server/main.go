// @title           Lumina Market Storefront API
// @version         1.0
// @description     Catalog, cart, mock sessions, shopping assistant chat and product admin for the Lumina Market storefront.
// @BasePath        /
//
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
// @description                Type "Bearer" followed by the token from /v1/session/login.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"
	gomongo "go.mongodb.org/mongo-driver/mongo"

	"github.com/lumina-market/storefront/internal/api"
	"github.com/lumina-market/storefront/internal/api/handler"
	"github.com/lumina-market/storefront/internal/core/ports"
	"github.com/lumina-market/storefront/internal/core/service"
	"github.com/lumina-market/storefront/internal/infrastructure/chat"
	"github.com/lumina-market/storefront/internal/infrastructure/config"
	"github.com/lumina-market/storefront/internal/infrastructure/db/memory"
	"github.com/lumina-market/storefront/internal/infrastructure/db/mongo"
	"github.com/lumina-market/storefront/internal/infrastructure/db/redis"
	"github.com/lumina-market/storefront/internal/infrastructure/janitor"
	"github.com/lumina-market/storefront/internal/infrastructure/seed"
	"github.com/lumina-market/storefront/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "storefront: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		File:    cfg.LogFile,
		Service: "lumina-storefront",
	})
	defer logger.Close()

	products, err := seed.Products(cfg.CatalogSeedFile)
	if err != nil {
		return err
	}

	sweeper := janitor.New(cfg.ClientIdleTTL, 0, log.With().Str("component", "janitor").Logger())
	checks := map[string]handler.DependencyCheck{}

	// --- Catalog ---
	var (
		productRepo ports.ProductRepository
		mongoDB     *gomongo.Database
	)
	if cfg.Mongo.Enabled {
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() {
			dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = client.Disconnect(dctx)
		}()

		repo := mongo.NewProductRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			return err
		}
		n, err := repo.Seed(ctx, products)
		if err != nil {
			return err
		}
		log.Info().Str("database", cfg.Mongo.Database).Int("seeded", n).Msg("catalog backed by mongodb")
		productRepo, mongoDB = repo, db
	} else {
		productRepo = memory.NewProductRepository(products)
		log.Info().Int("products", len(products)).Msg("catalog held in memory")
	}

	// --- Per-client stores ---
	views := memory.NewViewStateStore()
	sessions := memory.NewSessionStore()
	sweeper.Register("views", views)
	sweeper.Register("sessions", sessions)

	var (
		cartRepo    ports.CartRepository
		confirms    ports.ConfirmationStore
		redisClient *goredis.Client
	)
	if cfg.Redis.Enabled {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB, Password: cfg.Redis.Password})
		if err != nil {
			return err
		}
		defer rdb.Close()

		cartRepo = redis.NewCartRepository(rdb, cfg.ClientIdleTTL)
		confirms = redis.NewConfirmationStore(rdb)
		redisClient = rdb
		log.Info().Str("addr", cfg.Redis.Addr).Msg("carts and confirmations backed by redis")
	} else {
		memCarts := memory.NewCartRepository()
		memConfirms := memory.NewConfirmationStore()
		sweeper.Register("carts", memCarts)
		sweeper.Register("confirmations", memConfirms)
		cartRepo, confirms = memCarts, memConfirms
	}

	// --- Chat provider ---
	var provider ports.ChatProvider = chat.UnavailableProvider{}
	if cfg.Chat.APIKey != "" {
		gemini, err := chat.NewGeminiProvider(ctx, cfg.Chat.APIKey, cfg.Chat.Model)
		if err != nil {
			return err
		}
		breaker := chat.NewBreakerProvider(gemini, chat.BreakerOptions{
			Failures: cfg.Chat.BreakerFailures,
			Cooldown: cfg.Chat.BreakerCooldown,
		}, log.With().Str("component", "chat").Logger())
		checks["chat"] = func(context.Context) error {
			if breaker.State() == gobreaker.StateOpen {
				return errors.New("circuit open")
			}
			return nil
		}
		provider = breaker
		log.Info().Str("model", cfg.Chat.Model).Msg("chat assistant enabled")
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set, chat replies will fail with an apology")
	}

	// --- Services ---
	adminHash := []byte(cfg.Auth.AdminPasswordHash)
	if len(adminHash) == 0 {
		if adminHash, err = service.HashPassword(cfg.Auth.AdminPassword, 0); err != nil {
			return err
		}
	}

	catalogService := service.NewCatalogService(productRepo, log)
	cartService := service.NewCartService(cartRepo, catalogService, views, log)
	authService := service.NewAuthService(
		service.NewStaticAdminVerifier(cfg.Auth.AdminEmail, adminHash),
		sessions, confirms, views,
		service.AuthOptions{
			JWTSecret:  cfg.Auth.JWTSecret,
			TokenTTL:   cfg.Auth.TokenTTL,
			LoginDelay: cfg.Auth.LoginDelay,
			ConfirmTTL: cfg.Auth.ConfirmTTL,
		},
		log,
	)
	chatService := service.NewChatService(provider, service.ChatOptions{StreamTimeout: cfg.Chat.StreamTimeout}, log)
	viewService := service.NewViewService(views, sessions, catalogService, cartService, chatService, log)
	adminService := service.NewAdminService(catalogService, confirms, cfg.Auth.ConfirmTTL, log)

	sweeper.Register("cart-locks", cartService)
	sweeper.Register("chats", chatService)
	sweeper.Start(ctx)

	// --- HTTP ---
	e := api.NewRouter(api.Dependencies{
		Log:        log,
		JWTSecret:  cfg.Auth.JWTSecret,
		Production: cfg.IsProduction(),
		Catalog:    catalogService,
		Cart:       cartService,
		Auth:       authService,
		Sessions:   sessions,
		Chat:       chatService,
		View:       viewService,
		Admin:      adminService,
		Mongo:      mongoDB,
		Redis:      redisClient,
		Checks:     checks,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("storefront listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	log.Info().Msg("storefront stopped")
	return nil
}
