package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"fitcoach-api/internal/metrics"
	"fitcoach-api/internal/middleware"
	"fitcoach-api/internal/services"
)

// ServiceName is reported by the health endpoint
const ServiceName = "fitcoach-api"

// maxRequestBytes bounds request bodies on the HTTP server
const maxRequestBytes = 1 << 20

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	ChatService    services.ChatService
	SummaryService services.SummaryService
	Metrics        *metrics.Metrics
	Logger         *logrus.Logger
	EnableSwagger  bool
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, config *RouterConfig) {
	chatHandler := NewChatHandler(config.ChatService, config.Metrics, config.Logger)
	summaryHandler := NewSummaryHandler(config.SummaryService, config.Metrics, config.Logger)

	if config.EnableSwagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	router.GET("/health", middleware.Metrics(config.Metrics, "health"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": ServiceName,
			"version": "1.0.0",
		})
	})

	if config.Metrics != nil {
		router.GET("/metrics", gin.WrapH(config.Metrics.Handler()))
	}

	v1 := router.Group("/api/v1")
	{
		v1.Any("/ai-chat", chatHandler.Chat)
		v1.Any("/summary", summaryHandler.Summary)
	}

	// Path kept for clients built against the Netlify deployment
	netlify := router.Group("/.netlify/functions")
	{
		netlify.Any("/ai-chat", chatHandler.Chat)
		netlify.Any("/summary", summaryHandler.Summary)
	}
}

// SetupMiddleware configures global middleware
func SetupMiddleware(router *gin.Engine, logger *logrus.Logger) {
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestSizeLimit(maxRequestBytes))
	router.Use(middleware.StructuredLogger(logger))
	router.Use(middleware.PerformanceMonitor(logger, 10*time.Second))
	router.Use(middleware.ErrorHandler(logger))
}
