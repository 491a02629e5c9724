package api

import (
	"net/http"
	"time"

	"merchant-review-shopify-layer/docs"
	"merchant-review-shopify-layer/internal/application"
	"merchant-review-shopify-layer/internal/infrastructure/metrics"
	"merchant-review-shopify-layer/internal/ports"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	httpSwagger "github.com/swaggo/http-swagger"
)

// RouterConfig carries the services behind the HTTP routes.
// Install and Webhooks are optional; their routes are only mounted when set.
type RouterConfig struct {
	Catalog   *application.CatalogService
	Reviews   *application.ReviewService
	Mutations *application.MutationService
	Install   *application.ShopifyService
	Webhooks  *application.WebhookDispatcher

	// Auth verifies app proxy signatures and webhook HMACs; nil disables both checks and the webhook route
	Auth   ports.AppAuthenticator
	APIKey string

	Metrics            *metrics.Metrics
	CORSAllowedOrigins []string
	Logger             zerolog.Logger
}

// NewRouter builds the chi router with middleware and every route
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(logger))
	r.Use(hlog.RequestIDHandler("req_id", "X-Request-Id"))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	}))
	r.Use(middleware.Recoverer)
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
	}
	origins := cfg.CORSAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization"},
		MaxAge:         300,
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics.Handler())
	}
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(docs.SwaggerJSON)
	})

	// Admin UI and storefront routes
	products := productsPageHandler(cfg.Catalog)
	review := reviewHandler(cfg.Reviews)
	mutate := mutateHandler(cfg.Mutations)

	r.Get("/products-page", products)
	r.Get("/review", review)
	r.Post("/mutate", mutate)
	r.Get("/proxy/review", proxyReviewHandler(cfg.Reviews, cfg.Auth, logger))

	// Route names of the embedded app
	r.Get("/api/products", products)
	r.Get("/api/server", review)
	r.Post("/api/server", mutate)

	// OAuth routes
	if cfg.Install != nil {
		r.Get("/auth/shopify", oauthInitHandler(cfg.Install, logger))
		r.Get("/auth/callback", oauthCallbackHandler(cfg.Install, cfg.APIKey, logger))
	}

	if cfg.Webhooks != nil && cfg.Auth != nil {
		r.Post("/webhooks/shopify", webhookHandler(cfg.Auth, cfg.Webhooks, logger))
	}

	return r
}
