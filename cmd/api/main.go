package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vacationvibes/places-backend/internal/adapters/cache"
	"github.com/vacationvibes/places-backend/internal/adapters/database"
	"github.com/vacationvibes/places-backend/internal/adapters/events"
	"github.com/vacationvibes/places-backend/internal/adapters/search"
	"github.com/vacationvibes/places-backend/internal/api/handlers"
	"github.com/vacationvibes/places-backend/internal/api/middleware"
	"github.com/vacationvibes/places-backend/internal/api/routes"
	"github.com/vacationvibes/places-backend/internal/application/services"
	"github.com/vacationvibes/places-backend/internal/domain/providers"
	"github.com/vacationvibes/places-backend/internal/domain/repositories"
	"github.com/vacationvibes/places-backend/internal/infrastructure/clients/postgres"
	"github.com/vacationvibes/places-backend/internal/infrastructure/clients/redis"
	"github.com/vacationvibes/places-backend/internal/infrastructure/clients/typesense"
	"github.com/vacationvibes/places-backend/internal/infrastructure/observability"
	"github.com/vacationvibes/places-backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)
	logger := observability.GetLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := shutdown(shutdownCtx); err != nil {
					logger.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	logger.Info().Msg("PostgreSQL client initialized")

	// Redis is optional; the app degrades to uncached operation without it.
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize Redis client, continuing without caching")
		redisClient = nil
	} else {
		defer redisClient.Close()
		logger.Info().Msg("Redis client initialized")
	}

	// Typesense is optional; search endpoints return 503 without it.
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize Typesense client, search disabled")
		typesenseClient = nil
	} else {
		logger.Info().Msg("Typesense client initialized")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		logger.Info().Msg("Event bus initialized")
	} else {
		logger.Info().Msg("Event bus disabled (Redis not available)")
	}

	// Adapters
	basePlaceAdapter := database.NewPlaceAdapter(pgClient)
	var placeRepo repositories.PlaceRepository
	if cacheProvider != nil {
		placeRepo = database.NewCachedPlaceAdapter(basePlaceAdapter, cacheProvider)
		logger.Info().Msg("Place adapter wrapped with caching layer")
	} else {
		placeRepo = basePlaceAdapter
	}

	reactionRepo := database.NewReactionAdapter(pgClient)
	userRepo := database.NewUserAdapter(pgClient)
	commentRepo := database.NewCommentAdapter(pgClient)

	var searchRepo repositories.PlaceSearchRepository
	if typesenseClient != nil {
		adapter := search.NewTypesenseAdapter(typesenseClient)
		if err := adapter.InitSchema(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("Failed to init Typesense schema")
		}
		searchRepo = adapter
	}

	// Services
	authService := services.NewAuthService(userRepo, cfg.Auth)
	placeService := services.NewPlaceService(placeRepo, searchRepo)
	reactionService := services.NewReactionService(reactionRepo, eventBus)
	commentService := services.NewCommentService(commentRepo)
	preferenceService := services.NewPreferenceService(reactionRepo, placeRepo, cfg.Feed)
	feedService := services.NewFeedService(reactionRepo, placeRepo, preferenceService, cacheProvider, cfg.Feed, metrics)

	var cacheInvalidation *services.CacheInvalidationService
	if cacheProvider != nil && eventBus != nil {
		cacheInvalidation = services.NewCacheInvalidationService(cacheProvider, eventBus)
		if err := cacheInvalidation.Start(); err != nil {
			logger.Warn().Err(err).Msg("Failed to start cache invalidation service")
		}
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	feedHandler := handlers.NewFeedHandler(feedService)
	reactionHandler := handlers.NewReactionHandler(reactionService)
	commentHandler := handlers.NewCommentHandler(commentService)
	placeHandler := handlers.NewPlaceHandler(placeService)

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
	}

	router := routes.NewRouter(
		authHandler,
		feedHandler,
		reactionHandler,
		commentHandler,
		placeHandler,
		authService,
		cacheMiddleware,
		metrics,
	)

	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", serverAddr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Error during server shutdown")
	}

	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			logger.Error().Err(err).Msg("Error closing event bus")
		}
	}

	if cacheInvalidation != nil {
		cacheInvalidation.Stop()
	}

	logger.Info().Msg("Server stopped")
}
