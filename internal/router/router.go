package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"go-shop-admin/internal/config"
	"go-shop-admin/internal/handler"
	"go-shop-admin/internal/middleware"
	ws "go-shop-admin/internal/websocket"
)

func New(
	cfg *config.Config,
	authMiddleware *middleware.AuthMiddleware,
	authHandler *handler.AuthHandler,
	adminHandler *handler.AdminHandler,
	catalogHandler *handler.CatalogHandler,
	contactHandler *handler.ContactHandler,
	hub *ws.Hub,
) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.Metrics)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles("staff", "admin")).
		Get("/ws", func(w http.ResponseWriter, r *http.Request) {
			ws.ServeWS(hub, w, r)
		})

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/login", authHandler.Login)
			auth.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles("admin")).Post("/register", authHandler.Register)
			auth.Post("/refresh", authHandler.Refresh)
			auth.With(authMiddleware.RequireAuth).Post("/logout", authHandler.Logout)
			auth.With(authMiddleware.RequireAuth).Get("/me", authHandler.Me)
		})

		api.Route("/catalog", func(catalog chi.Router) {
			catalog.Get("/products", catalogHandler.ListProducts)
			catalog.Get("/products/{id}", catalogHandler.GetProduct)
			catalog.Get("/products/{id}/thumbnail", catalogHandler.Thumbnail)
		})

		api.Post("/contact", contactHandler.Submit)

		api.Route("/admin", func(admin chi.Router) {
			admin.Use(authMiddleware.RequireAuth)

			admin.With(authMiddleware.RequireRoles("staff", "admin")).Get("/tabs", adminHandler.Tabs)
			admin.With(authMiddleware.RequireRoles("staff", "admin")).Post("/{tab}/search", adminHandler.Search)
			admin.With(authMiddleware.RequireRoles("staff", "admin")).Get("/{tab}/export", adminHandler.Export)

			admin.With(authMiddleware.RequireRoles("admin")).Post("/{tab}", adminHandler.Create)
			admin.With(authMiddleware.RequireRoles("admin")).Put("/{tab}/{id}", adminHandler.Update)
			admin.With(authMiddleware.RequireRoles("admin")).Delete("/{tab}/{id}", adminHandler.Delete)
			admin.With(authMiddleware.RequireRoles("admin")).Post("/{tab}/bulk-delete", adminHandler.BulkDelete)
			admin.With(authMiddleware.RequireRoles("admin")).Post("/{tab}/{id}/actions/{action}", adminHandler.CustomAction)
		})
	})

	return r
}
