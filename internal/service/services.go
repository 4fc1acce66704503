package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/awadali7/Pro-shopify-backend/internal/config"
	"github.com/awadali7/Pro-shopify-backend/internal/shopify"
)

// ShopifyAPI is the part of the Shopify client the services depend on
type ShopifyAPI interface {
	ListCollectionProducts(ctx context.Context, collectionID string) ([]shopify.Product, error)
	ListCollectionMetafields(ctx context.Context, collectionID string) ([]shopify.Metafield, error)
	CreateCustomer(ctx context.Context, input shopify.CustomerInput) (*shopify.Response, error)
	ListPriceRules(ctx context.Context) (*shopify.Response, error)
}

// Services bundles the three gateway operations
type Services struct {
	Collections *CollectionService
	Subscribers *SubscriberService
	PriceRules  *PriceRuleService
}

// NewServices wires every service against one Shopify client
func NewServices(cfg *config.Config, client ShopifyAPI, logger *zap.Logger) *Services {
	return &Services{
		Collections: NewCollectionService(cfg, client, logger),
		Subscribers: NewSubscriberService(cfg.Variant, client, logger),
		PriceRules:  NewPriceRuleService(client, logger),
	}
}
