package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/awadali7/Pro-shopify-backend/internal/domain"
	"github.com/awadali7/Pro-shopify-backend/internal/service"
)

const msgSubscribeFailed = "Failed to save email to Shopify."

// HandleSaveEmail handles POST /save-email (and /api/save-email in the lenient variant)
func HandleSaveEmail(variant domain.Variant, svc *service.SubscriberService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req domain.SubscriptionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			// An unreadable body is treated like a missing email
			logger.Debug("Unreadable save-email body", zap.Error(err))
			req = domain.SubscriptionRequest{}
		}

		result, err := svc.Subscribe(c.Request.Context(), req)
		if err != nil {
			respondError(c, err, msgSubscribeFailed, logger)
			return
		}

		if variant == domain.VariantLenient {
			c.JSON(http.StatusCreated, gin.H{
				"message":  "Customer subscribed successfully",
				"customer": result.Customer,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Email saved and subscribed successfully.",
			"data":    result.Upstream,
		})
	}
}
