package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/awadali7/Pro-shopify-backend/internal/service"
)

const msgCollectionFailed = "Error fetching collection products"

// HandleGetCollectionProducts handles GET {/api}/collection-products
func HandleGetCollectionProducts(svc *service.CollectionService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := svc.GetCollectionProducts(c.Request.Context())
		if err != nil {
			respondError(c, err, msgCollectionFailed, logger)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
