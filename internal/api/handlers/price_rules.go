package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/awadali7/Pro-shopify-backend/internal/service"
)

// HandleListPriceRules handles GET {/api}/price-rules. The upstream body and
// content type are relayed as received.
func HandleListPriceRules(svc *service.PriceRuleService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := svc.ListPriceRules(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, resp.ContentType(), resp.Body)
	}
}
