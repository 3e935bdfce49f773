package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/clothera/catalog-api/internal/cache"
	"github.com/clothera/catalog-api/internal/config"
	"github.com/clothera/catalog-api/internal/database"
	"github.com/clothera/catalog-api/internal/handler"
	"github.com/clothera/catalog-api/internal/middleware"
	"github.com/clothera/catalog-api/internal/repository"
	"github.com/clothera/catalog-api/internal/service"
)

// main is the application entrypoint for the catalog query API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting catalog api")

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis. The facet cache is an optimization: when Redis is
	// unreachable the service starts without it and every normalization
	// lookup goes to the database.
	var redisClient *cache.RedisClient
	var facetCache *cache.FacetCache
	if redisClient, err = cache.NewRedisClient(&cfg.Redis); err != nil {
		log.Warn().Err(err).Msg("redis unavailable - running without facet cache")
		redisClient = nil
	} else {
		defer redisClient.Close()
		facetCache = cache.NewFacetCache(redisClient, cfg.Cache.FacetTTL)
		log.Info().Dur("ttl", cfg.Cache.FacetTTL).Msg("facet cache enabled")
	}

	// 4. Initialize catalog store
	store := repository.NewCatalog(db)

	// 5. Initialize services
	catalogSvc := service.NewCatalogService(store, facetCache)
	availabilitySvc := service.NewAvailabilityService(store)

	// 6. Initialize handlers
	catalogHandler := handler.NewCatalogHandler(catalogSvc, availabilitySvc)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	// 7. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedHosts))
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, catalogHandler, healthHandler, cfg.StaticDir)

	// 8. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 9. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 10. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, catalogHandler *handler.CatalogHandler, healthHandler *handler.HealthHandler, staticDir string) {
	router.GET("/v1/health", healthHandler.GetHealth)

	catalog := router.Group("/v1/catalog")
	{
		catalog.POST("/products", catalogHandler.ListProducts)
		catalog.GET("/products/:id", catalogHandler.GetProduct)
		catalog.POST("/availability", catalogHandler.CheckAvailability)
	}

	// Product images and other assets referenced by the catalog.
	router.Static("/files", staticDir)
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
