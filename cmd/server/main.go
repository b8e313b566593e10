// Package main is the entry point for the SelectChat Chat Service.
// @title SelectChat Chat Service API
// @version 1.0
// @description Local companion service running the SelectChat conversation pipeline: reasoning pre-pass, streamed responses and follow-up suggestions over OpenAI-compatible providers

// @contact.name API Support
// @contact.url https://github.com/selectchat/chat-service

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/selectchat/chat-service/docs"
	"github.com/selectchat/chat-service/internal/api/handlers"
	"github.com/selectchat/chat-service/internal/api/middleware"
	"github.com/selectchat/chat-service/internal/api/routes"
	"github.com/selectchat/chat-service/internal/config"
	"github.com/selectchat/chat-service/internal/core/docdb"
	"github.com/selectchat/chat-service/internal/core/kv"
	"github.com/selectchat/chat-service/internal/infrastructure/docdb/mongodb"
	rediskv "github.com/selectchat/chat-service/internal/infrastructure/kv/redis"
	"github.com/selectchat/chat-service/internal/pkg/encryption"
	"github.com/selectchat/chat-service/internal/services/archive"
	"github.com/selectchat/chat-service/internal/services/chat"
	"github.com/selectchat/chat-service/internal/services/provider"
	"github.com/selectchat/chat-service/internal/services/settings"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	setupLogging(cfg.Log)

	ctx := context.Background()

	// Initialize key-value store using factory pattern
	kvStore, err := createKVStore(cfg.KV)
	if err != nil {
		log.Fatalf("failed to initialize kv store: %v", err)
	}
	defer kvStore.Close()

	// Initialize document db client; absent URI disables the archive
	docDBClient, err := createDocDBClient(ctx, cfg.DocDB)
	if err != nil {
		log.Fatalf("failed to initialize document db client: %v", err)
	}
	if docDBClient != nil {
		defer docDBClient.Close(ctx)
	}

	// Initialize encryptor
	encryptor, err := createEncryptor(cfg.Secrets)
	if err != nil {
		log.Fatalf("failed to initialize encryptor: %v", err)
	}

	// Initialize settings service
	settingsService, err := settings.NewService(&settings.Config{
		Store:     kvStore,
		Encryptor: encryptor,
	})
	if err != nil {
		log.Fatalf("failed to initialize settings service: %v", err)
	}

	// Initialize archive service when a document db is configured
	var archiveService archive.Service
	if docDBClient != nil {
		archiveService, err = archive.NewService(&archive.Config{
			DocDB: docDBClient,
		})
		if err != nil {
			log.Fatalf("failed to initialize archive service: %v", err)
		}
	}

	// Initialize conversation pipeline
	store := chat.NewStore()
	gateway := provider.NewHTTPClient(&http.Client{Timeout: cfg.Provider.Timeout})
	orchestrator := chat.NewOrchestrator(&chat.Config{
		Store:    store,
		Gateway:  gateway,
		Settings: settingsService,
		Archive:  archiveService,
	})

	// Start in the stored default feature context
	if feature, ok := settingsService.Feature(ctx, settingsService.DefaultFeatureID(ctx)); ok {
		store.SetFeature(feature)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Setup router
	router := setupRouter(kvStore, docDBClient, store, orchestrator, settingsService, archiveService)

	// Create HTTP server
	srv := &http.Server{
		Addr:    cfg.Server.Address(),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// setupLogging configures the global zerolog logger.
func setupLogging(cfg config.LogConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339
}

// createKVStore creates a key-value store based on the configuration.
func createKVStore(cfg config.KVConfig) (kv.Store, error) {
	kvType := kv.Type(cfg.Type)

	switch kvType {
	case kv.TypeRedis:
		return rediskv.NewStore(rediskv.Config{
			Host:     cfg.Host,
			Port:     cfg.Port,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
	default:
		log.Fatalf("unsupported kv type: %s", cfg.Type)
		return nil, nil
	}
}

// createDocDBClient creates a document database client based on the
// configuration. Returns nil when no URI is configured.
func createDocDBClient(ctx context.Context, cfg config.DocDBConfig) (docdb.Client, error) {
	if cfg.URI == "" {
		log.Println("MONGODB_URI not set, transcript archive disabled")
		return nil, nil
	}

	docDBType := docdb.Type(cfg.Type)

	switch docDBType {
	case docdb.TypeMongoDB:
		client, err := mongodb.NewClient(ctx, &mongodb.ClientConfig{
			URI:          cfg.URI,
			DatabaseName: cfg.Database,
		})
		if err != nil {
			return nil, err
		}
		if err := client.EnsureIndexes(ctx); err != nil {
			log.Printf("warning: failed to ensure indexes: %v", err)
		}
		return client, nil
	default:
		log.Fatalf("unsupported docdb type: %s", cfg.Type)
		return nil, nil
	}
}

// createEncryptor creates an encryptor based on the configuration.
func createEncryptor(cfg config.SecretsConfig) (encryption.Encryptor, error) {
	if cfg.EncryptionKey == "" {
		// Use NoOp encryptor in development
		log.Println("warning: SECRETS_ENCRYPTION_KEY not set, using NoOp encryptor")
		return encryption.NewNoOpEncryptor(), nil
	}

	return encryption.NewAESEncryptor(cfg.EncryptionKey)
}

// setupRouter creates and configures the Gin router.
func setupRouter(kvStore kv.Store, docDBClient docdb.Client, store *chat.Store, orchestrator *chat.Orchestrator, settingsService settings.Service, archiveService archive.Service) *gin.Engine {
	router := gin.New()

	// Create middleware
	loggingMw := middleware.NewLoggingMiddleware()
	errorMw := middleware.NewErrorMiddleware()
	corsCfg := middleware.DefaultCORSConfig()
	router.Use(middleware.NewCORSMiddleware(corsCfg))

	// Create handlers
	healthHandler := handlers.NewHealthHandler(kvStore, docDBClient)
	conversationHandler := handlers.NewConversationHandler(store, orchestrator, settingsService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)

	var historyHandler *handlers.HistoryHandler
	if archiveService != nil {
		historyHandler = handlers.NewHistoryHandler(archiveService)
	}

	// Setup routes
	routesCfg := &routes.Config{
		HealthHandler:       healthHandler,
		ConversationHandler: conversationHandler,
		SettingsHandler:     settingsHandler,
		HistoryHandler:      historyHandler,
	}

	routes.SetupWithMiddleware(router, routesCfg, loggingMw, errorMw)

	// Swagger documentation endpoint
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}
