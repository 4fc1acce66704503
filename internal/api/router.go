package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/awadali7/Pro-shopify-backend/internal/api/handlers"
	"github.com/awadali7/Pro-shopify-backend/internal/api/middleware"
	"github.com/awadali7/Pro-shopify-backend/internal/config"
	"github.com/awadali7/Pro-shopify-backend/internal/domain"
	"github.com/awadali7/Pro-shopify-backend/internal/metrics"
	"github.com/awadali7/Pro-shopify-backend/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, services *service.Services, registry *metrics.Registry, logger *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.RequestIDMiddleware())
	router.Use(customRecovery(logger))
	router.Use(loggingMiddleware(logger))
	router.Use(cors.Default())
	if registry != nil {
		router.Use(registry.Middleware())
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	if registry != nil {
		router.GET("/metrics", gin.WrapH(registry.Handler()))
	}

	collectionProducts := handlers.HandleGetCollectionProducts(services.Collections, logger)
	saveEmail := handlers.HandleSaveEmail(cfg.Variant, services.Subscribers, logger)
	priceRules := handlers.HandleListPriceRules(services.PriceRules, logger)

	switch cfg.Variant {
	case domain.VariantLenient:
		router.GET("/collection-products", collectionProducts)
		router.POST("/save-email", saveEmail)
		router.POST("/api/save-email", saveEmail)
		router.GET("/price-rules", priceRules)
	default:
		api := router.Group("/api")
		{
			api.GET("/collection-products", collectionProducts)
			api.GET("/price-rules", priceRules)
		}
		router.POST("/save-email", saveEmail)
	}

	// Anything else, any method
	router.NoRoute(handlers.HandleRouteNotFound(logger))
	router.NoMethod(handlers.HandleRouteNotFound(logger))

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.String("request_id", middleware.GetRequestID(c)),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": fmt.Sprintf("%v", recovered),
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", middleware.GetRequestID(c)),
		)
	}
}
