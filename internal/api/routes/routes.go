// Package routes defines the HTTP routes for the SelectChat Chat Service.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/selectchat/chat-service/internal/api/handlers"
	"github.com/selectchat/chat-service/internal/api/middleware"
)

// Config holds the dependencies for setting up routes.
type Config struct {
	HealthHandler       *handlers.HealthHandler
	ConversationHandler *handlers.ConversationHandler
	SettingsHandler     *handlers.SettingsHandler
	HistoryHandler      *handlers.HistoryHandler
}

// Setup configures all routes on the Gin engine.
func Setup(r *gin.Engine, cfg *Config) {
	// API v1 routes - all routes under /api/v1/chat-service
	v1 := r.Group("/api/v1/chat-service")
	{
		// Health check routes
		v1.GET("/health", cfg.HealthHandler.Health)
		v1.GET("/ready", cfg.HealthHandler.Ready)
		v1.GET("/live", cfg.HealthHandler.Live)

		// Conversation routes
		conversation := v1.Group("/conversation")
		{
			conversation.POST("/open", cfg.ConversationHandler.Open)
			conversation.GET("", cfg.ConversationHandler.GetConversation)
			conversation.GET("/stream", cfg.ConversationHandler.Stream)
			conversation.GET("/suggestions", cfg.ConversationHandler.GetSuggestions)
			conversation.POST("/regenerate", cfg.ConversationHandler.Regenerate)
			conversation.PUT("/feature", cfg.ConversationHandler.SwitchFeature)

			conversation.POST("/messages", cfg.ConversationHandler.SendMessage)
			conversation.PUT("/messages/:messageId", cfg.ConversationHandler.EditMessage)
			conversation.DELETE("/messages/:messageId", cfg.ConversationHandler.DeleteMessage)
		}

		// Settings routes
		settings := v1.Group("/settings")
		{
			settings.GET("/features", cfg.SettingsHandler.GetFeatures)
			settings.PUT("/features", cfg.SettingsHandler.SaveFeatures)
			settings.PUT("/features/default", cfg.SettingsHandler.SetDefaultFeature)

			settings.GET("/providers", cfg.SettingsHandler.GetProviders)
			settings.PUT("/providers", cfg.SettingsHandler.SaveProviders)
			settings.PUT("/providers/selection", cfg.SettingsHandler.SetProviderSelection)
		}

		// Transcript archive routes, mounted only when archiving is enabled
		if cfg.HistoryHandler != nil {
			history := v1.Group("/history")
			{
				history.GET("/conversations", cfg.HistoryHandler.ListConversations)
				history.GET("/conversations/:conversationId/messages", cfg.HistoryHandler.ListMessages)
			}
		}
	}
}

// SetupWithMiddleware sets up routes with common middleware.
func SetupWithMiddleware(r *gin.Engine, cfg *Config, loggingMw *middleware.LoggingMiddleware, errorMw *middleware.ErrorMiddleware) {
	// Apply global middleware
	r.Use(loggingMw.Logger())
	r.Use(errorMw.Recovery())

	r.HandleMethodNotAllowed = true
	r.NoRoute(middleware.NotFound())
	r.NoMethod(middleware.MethodNotAllowed())

	// Setup routes
	Setup(r, cfg)
}
