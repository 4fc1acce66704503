package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/awadali7/Pro-shopify-backend/pkg/errors"
)

// respondError maps a failure onto the three-way upstream classification.
// message is the operation's fixed description sent alongside the error.
func respondError(c *gin.Context, err error, message string, logger *zap.Logger) {
	var (
		validation  *apperrors.ErrValidation
		upstream    *apperrors.ErrUpstream
		unreachable *apperrors.ErrUpstreamUnreachable
	)

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message})
	case errors.As(err, &upstream):
		logger.Warn(message,
			zap.String("resource", upstream.Resource),
			zap.Int("status", upstream.StatusCode),
		)
		c.JSON(upstream.StatusCode, gin.H{
			"error":   upstream.Payload(),
			"message": message,
		})
	case errors.As(err, &unreachable):
		logger.Error(message, zap.Error(err), zap.String("resource", unreachable.Resource))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "No response received",
			"message": err.Error(),
		})
	default:
		// ErrRequestSetup and anything unclassified
		logger.Error(message, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Error setting up the request",
			"message": err.Error(),
		})
	}
}
