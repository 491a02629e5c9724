package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"merchant-review-shopify-layer/internal/application"
	"merchant-review-shopify-layer/internal/application/webhook_handlers"
	"merchant-review-shopify-layer/internal/config"
	apiinfra "merchant-review-shopify-layer/internal/infrastructure/api"
	"merchant-review-shopify-layer/internal/infrastructure/metrics"
	"merchant-review-shopify-layer/internal/infrastructure/repository"
	shopifyinfra "merchant-review-shopify-layer/internal/infrastructure/shopify"
	"merchant-review-shopify-layer/internal/infrastructure/statestore"
	"merchant-review-shopify-layer/internal/ports"

	"github.com/rs/zerolog"
)

func main() {
	// Initialize logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid configuration")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("Invalid configuration")
	}
	logger = configureLogger(logger, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	// Initialize repositories
	var (
		sessionRepo ports.SessionRepository
		reviewRepo  ports.ReviewRepository
	)
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, err := repository.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
		}
		defer client.Disconnect(context.Background())

		db := client.Database(cfg.MongoDatabase)
		if err := repository.EnsureMongoIndexes(ctx, db); err != nil {
			logger.Fatal().Err(err).Msg("Failed to create MongoDB indexes")
		}
		sessionRepo = repository.NewMongoSessionRepository(db)
		reviewRepo = repository.NewMongoReviewRepository(db)
	default:
		db, err := repository.OpenSQL(cfg.StoreDriver, cfg.DatabaseURL, cfg.DBAutoMigrate, logger)
		if err != nil {
			logger.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("Failed to open database")
		}
		defer func() {
			if err := repository.CloseSQL(db); err != nil {
				logger.Error().Err(err).Msg("Failed to close database")
			}
		}()
		sessionRepo = repository.NewSQLSessionRepository(db)
		reviewRepo = repository.NewSQLReviewRepository(db)
	}
	logger.Info().Str("driver", cfg.StoreDriver).Msg("Store ready")

	productClient := shopifyinfra.NewClient(shopifyinfra.ClientConfig{
		APIVersion: cfg.ShopifyAPIVersion,
		Timeout:    cfg.ShopifyTimeout,
		Endpoint:   cfg.ShopifyGraphQLEndpoint,
	}, m, logger)

	// Initialize application services
	credentialsService := application.NewCredentialsService(sessionRepo, logger)
	catalogService := application.NewCatalogService(credentialsService, productClient, reviewRepo, cfg.ProductsPageSize, logger)
	reviewService := application.NewReviewService(reviewRepo, logger)
	mutationService := application.NewMutationService(credentialsService, productClient, reviewRepo, logger)

	routerCfg := apiinfra.RouterConfig{
		Catalog:            catalogService,
		Reviews:            reviewService,
		Mutations:          mutationService,
		APIKey:             cfg.ShopifyAPIKey,
		Metrics:            m,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Logger:             logger,
	}

	if cfg.ShopifyAPISecret != "" {
		auth := shopifyinfra.NewAppAuthenticator(cfg.ShopifyAPIKey, cfg.ShopifyAPISecret, cfg.AppURL+"/auth/callback", cfg.ShopifyScopes)
		routerCfg.Auth = auth

		var states ports.StateStore
		if cfg.OAuthEnabled() {
			redisClient, err := statestore.NewRedisClient(ctx, cfg.RedisURL)
			if err != nil {
				logger.Fatal().Err(err).Msg("Failed to connect to Redis")
			}
			defer redisClient.Close()
			states = statestore.NewRedisStateStore(redisClient, statestore.DefaultTTL)
		}
		shopifyService := application.NewShopifyService(auth, states, sessionRepo, logger)
		if states != nil {
			routerCfg.Install = shopifyService
		} else {
			logger.Warn().Msg("OAuth install routes disabled: SHOPIFY_API_KEY, SHOPIFY_API_SECRET and REDIS_URL are required")
		}

		// Initialize webhook dispatcher and register handlers
		webhookDispatcher := application.NewWebhookDispatcher(logger)
		webhookDispatcher.RegisterHandler(webhook_handlers.NewAppUninstalledHandler(logger, shopifyService))
		webhookDispatcher.RegisterHandler(webhook_handlers.NewProductHandler(logger, reviewRepo))
		webhookDispatcher.RegisterHandler(webhook_handlers.NewComplianceHandler(logger, reviewRepo))
		routerCfg.Webhooks = webhookDispatcher
	} else {
		logger.Warn().Msg("SHOPIFY_API_SECRET not set: app proxy signatures are not verified and webhooks are disabled")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           apiinfra.NewRouter(routerCfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("Starting API server")
		logger.Info().Msg("Swagger documentation available at http://localhost:" + cfg.Port + "/swagger/index.html")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
	}
}

func configureLogger(logger zerolog.Logger, cfg *config.Config) zerolog.Logger {
	if cfg.LogFormat == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warn().Str("level", cfg.LogLevel).Msg("Unknown LOG_LEVEL, using info")
		level = zerolog.InfoLevel
	}
	return logger.Level(level)
}
