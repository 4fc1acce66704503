package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/awadali7/Pro-shopify-backend/pkg/errors"
)

// HandleRouteNotFound answers every request no route matched
func HandleRouteNotFound(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := &apperrors.ErrRouteNotFound{Method: c.Request.Method, Path: c.Request.URL.Path}
		logger.Info("Route not found",
			zap.String("method", err.Method),
			zap.String("path", err.Path),
		)
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	}
}
