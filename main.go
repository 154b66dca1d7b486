package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/adapters/catalog"
	_ "github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/adapters/catalog/mysql"
	_ "github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/adapters/catalog/postgres"
	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/config"
	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/database"
	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/handlers"
	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/logging"
	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/middleware"
	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/repositories"
	"github.com/RPA-Kishan-Sanghani/Redpluto-DET-sub000/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	// Connect to the application store and bring the schema up to date
	db, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.ConnectionString(),
		MaxConnections: cfg.Database.MaxConnections,
		MinConnections: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, cfg.Database.ConnectionString(), cfg.Database.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Repositories
	connectionRepo := repositories.NewConnectionRepository(db)
	pipelineRepo := repositories.NewPipelineRepository(db)
	dictionaryRepo := repositories.NewDictionaryRepository(db)
	reconciliationRepo := repositories.NewReconciliationRepository(db)
	qualityRepo := repositories.NewQualityRepository(db)

	// Services
	readerFactory := catalog.NewReaderFactory(logger)
	catalogTimeout := cfg.Catalog.ConnectTimeout()

	connectionService := services.NewConnectionService(connectionRepo, readerFactory, catalogTimeout, logger)
	catalogService := services.NewCatalogService(connectionRepo, readerFactory, catalogTimeout, logger)
	pipelineService := services.NewPipelineService(pipelineRepo, logger)
	dictionaryService := services.NewDictionaryService(dictionaryRepo, logger)
	reconciliationService := services.NewReconciliationService(reconciliationRepo, logger)
	qualityService := services.NewQualityService(qualityRepo, logger)
	dashboardService := services.NewDashboardService(connectionRepo, pipelineRepo, dictionaryRepo, reconciliationRepo, qualityRepo, logger)

	mux := http.NewServeMux()

	// Register handlers
	healthHandler := handlers.NewHealthHandler(cfg, logger)
	healthHandler.RegisterRoutes(mux)

	connectionHandler := handlers.NewConnectionHandler(connectionService, logger)
	connectionHandler.RegisterRoutes(mux)

	catalogHandler := handlers.NewCatalogHandler(catalogService, logger)
	catalogHandler.RegisterRoutes(mux)

	pipelineHandler := handlers.NewPipelineHandler(pipelineService, logger)
	pipelineHandler.RegisterRoutes(mux)

	dictionaryHandler := handlers.NewDictionaryHandler(dictionaryService, logger)
	dictionaryHandler.RegisterRoutes(mux)

	reconciliationHandler := handlers.NewReconciliationHandler(reconciliationService, logger)
	reconciliationHandler.RegisterRoutes(mux)

	qualityHandler := handlers.NewQualityHandler(qualityService, logger)
	qualityHandler.RegisterRoutes(mux)

	dashboardHandler := handlers.NewDashboardHandler(dashboardService, logger)
	dashboardHandler.RegisterRoutes(mux)

	// Middleware chain: CORS outermost so preflights short-circuit early
	var handler http.Handler = mux
	handler = middleware.RequestLogger(logger)(handler)
	handler = middleware.RequestID()(handler)
	handler = middleware.CORS(cfg.CORS.AllowedOrigins)(handler)

	engines := make([]string, 0)
	for _, info := range catalog.RegisteredEngines() {
		engines = append(engines, info.Type)
	}

	srv := &http.Server{
		Addr:         cfg.BindAddr + ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  time.Minute,
	}

	go func() {
		logger.Info("Starting redpluto-det backend",
			zap.String("addr", srv.Addr),
			zap.String("version", cfg.Version),
			zap.String("env", cfg.Env),
			zap.String("database", cfg.Database.Database),
			zap.Strings("catalog_engines", engines))

		var serveErr error
		if cfg.TLSCertPath != "" && cfg.TLSKeyPath != "" {
			serveErr = srv.ListenAndServeTLS(cfg.TLSCertPath, cfg.TLSKeyPath)
		} else {
			serveErr = srv.ListenAndServe()
		}
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(serveErr))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
	logger.Info("Server stopped")
}
