package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-shop-admin/internal/config"
	"go-shop-admin/internal/dashboard"
	"go-shop-admin/internal/database"
	"go-shop-admin/internal/event"
	"go-shop-admin/internal/handler"
	"go-shop-admin/internal/middleware"
	"go-shop-admin/internal/repository"
	"go-shop-admin/internal/router"
	"go-shop-admin/internal/service"
	"go-shop-admin/internal/websocket"
)

type App struct {
	server       *http.Server
	db           *database.DB
	cleanupFuncs []func()
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	pool := db.Pool
	userRepo := repository.NewUserRepository(pool)
	tokenRepo := repository.NewTokenRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	cartRepo := repository.NewCartRepository(pool)
	wishlistRepo := repository.NewWishlistRepository(pool)
	contactRepo := repository.NewContactRepository(pool)
	slog.Info("database ready")

	bus := event.NewBus()
	hub := websocket.NewHub(bus)
	go hub.Run()

	authService := service.NewAuthService(userRepo, tokenRepo, cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)
	authMiddleware := middleware.NewAuthMiddleware(authService)
	authHandler := handler.NewAuthHandler(authService)

	productService := service.NewProductService(productRepo)
	userService := service.NewUserService(userRepo)
	cartService := service.NewCartService(cartRepo, productRepo)
	wishlistService := service.NewWishlistService(wishlistRepo, productRepo)
	contactService := service.NewContactService(contactRepo, bus)
	exportService := service.NewExportService()
	thumbnailService := service.NewThumbnailService(productRepo, cfg.MediaRoot, cfg.ThumbnailRoot)

	registry := dashboard.NewRegistry(
		dashboard.ProductsTab(productService),
		dashboard.UsersTab(userService),
		dashboard.CartsTab(cartService),
		dashboard.WishlistsTab(wishlistService),
		dashboard.ContactsTab(contactService),
	)
	dispatcher := dashboard.NewDispatcher(bus, slog.Default())

	adminHandler := handler.NewAdminHandler(registry, dispatcher, exportService)
	catalogHandler := handler.NewCatalogHandler(productService, thumbnailService)
	contactHandler := handler.NewContactHandler(contactService)

	appRouter := router.New(cfg, authMiddleware, authHandler, adminHandler, catalogHandler, contactHandler, hub)

	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	go expiredTokenSweeper(cleanupCtx, tokenRepo)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      appRouter,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return &App{
		server: server,
		db:     db,
		cleanupFuncs: []func(){
			func() {
				cleanupCancel()
			},
			func() {
				db.Close()
			},
		},
	}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	slog.Info("server stopped")
	return nil
}

// expiredTokenSweeper periodically removes refresh tokens past their expiry
// so revoked or abandoned sessions don't accumulate in the database.
func expiredTokenSweeper(ctx context.Context, tokens *repository.TokenRepository) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := tokens.CleanExpired(ctx)
			if err != nil {
				slog.Error("expired token sweep failed", "error", err)
				continue
			}
			if removed > 0 {
				slog.Info("removed expired refresh tokens", "count", removed)
			}
		}
	}
}
