package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/awadali7/Pro-shopify-backend/internal/config"
	"github.com/awadali7/Pro-shopify-backend/internal/domain"
	"github.com/awadali7/Pro-shopify-backend/internal/shopify"
	apperrors "github.com/awadali7/Pro-shopify-backend/pkg/errors"
)

// MsgNoProducts is returned when the collection has no products
const MsgNoProducts = "No products found in the collection"

type CollectionService struct {
	client     ShopifyAPI
	collection domain.Collection
	idSource   domain.ProductIDSource
	concurrent bool
	logger     *zap.Logger
}

// NewCollectionService creates the aggregator for the configured collection
func NewCollectionService(cfg *config.Config, client ShopifyAPI, logger *zap.Logger) *CollectionService {
	return &CollectionService{
		client: client,
		collection: domain.Collection{
			ID:   cfg.Shopify.CollectionID,
			Name: cfg.Shopify.CollectionName,
		},
		idSource:   cfg.ProductIDSource,
		concurrent: cfg.ConcurrentFetch,
		logger:     logger,
	}
}

// GetCollectionProducts fetches the collection's products and metafields and
// merges them into one listing. An empty product list is a validation error
// whatever the metafields call returned.
func (s *CollectionService) GetCollectionProducts(ctx context.Context) (*domain.CollectionProducts, error) {
	products, metafields, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	productSummaries := make([]*domain.ProductSummary, 0, len(products))
	for _, p := range products {
		productSummaries = append(productSummaries, ProjectProduct(p, s.idSource))
	}
	metafieldSummaries := make([]*domain.MetafieldSummary, 0, len(metafields))
	for _, m := range metafields {
		metafieldSummaries = append(metafieldSummaries, ProjectMetafield(m))
	}

	s.logger.Debug("Collection listing built",
		zap.String("collection_id", s.collection.ID),
		zap.Int("products", len(productSummaries)),
		zap.Int("metafields", len(metafieldSummaries)),
	)

	return &domain.CollectionProducts{
		Collection: s.collection,
		Data:       Interleave(metafieldSummaries, productSummaries),
	}, nil
}

func (s *CollectionService) fetch(ctx context.Context) ([]shopify.Product, []shopify.Metafield, error) {
	if !s.concurrent {
		products, err := s.client.ListCollectionProducts(ctx, s.collection.ID)
		if err != nil {
			return nil, nil, err
		}
		if len(products) == 0 {
			return nil, nil, &apperrors.ErrValidation{Message: MsgNoProducts}
		}
		metafields, err := s.client.ListCollectionMetafields(ctx, s.collection.ID)
		if err != nil {
			return nil, nil, err
		}
		return products, metafields, nil
	}

	// Plain Group, no derived context: a metafields failure must not cancel
	// the products call, whose result is judged first.
	var (
		g             errgroup.Group
		products      []shopify.Product
		metafields    []shopify.Metafield
		productsErr   error
		metafieldsErr error
	)
	g.Go(func() error {
		products, productsErr = s.client.ListCollectionProducts(ctx, s.collection.ID)
		return productsErr
	})
	g.Go(func() error {
		metafields, metafieldsErr = s.client.ListCollectionMetafields(ctx, s.collection.ID)
		return metafieldsErr
	})
	_ = g.Wait()

	if productsErr != nil {
		return nil, nil, productsErr
	}
	if len(products) == 0 {
		return nil, nil, &apperrors.ErrValidation{Message: MsgNoProducts}
	}
	if metafieldsErr != nil {
		return nil, nil, metafieldsErr
	}
	return products, metafields, nil
}

// ProjectProduct reduces an upstream product to its summary. With
// ProductIDFromOption the id is taken from the first option, or 0 when the
// product has none.
func ProjectProduct(p shopify.Product, idSource domain.ProductIDSource) *domain.ProductSummary {
	id := p.ID
	if idSource == domain.ProductIDFromOption {
		id = 0
		if len(p.Options) > 0 {
			id = p.Options[0].ID
		}
	}
	return &domain.ProductSummary{
		ID:                id,
		Title:             p.Title,
		ProductType:       p.ProductType,
		AdminGraphQLAPIID: p.AdminGraphQLAPIID,
		Image:             p.Image,
	}
}

// ProjectMetafield reduces an upstream metafield to its summary, titled by key
func ProjectMetafield(m shopify.Metafield) *domain.MetafieldSummary {
	return &domain.MetafieldSummary{
		ID:                m.ID,
		Title:             m.Key,
		Value:             m.Value,
		AdminGraphQLAPIID: m.AdminGraphQLAPIID,
	}
}

// Interleave alternates metafields and products by position, metafield first,
// and appends whatever remains of the longer list.
// TODO: confirm with the shop owner whether entries should be paired by owner id instead of position.
func Interleave(metafields []*domain.MetafieldSummary, products []*domain.ProductSummary) []domain.CollectionEntry {
	merged := make([]domain.CollectionEntry, 0, len(metafields)+len(products))
	n := len(metafields)
	if len(products) > n {
		n = len(products)
	}
	for i := 0; i < n; i++ {
		if i < len(metafields) {
			merged = append(merged, metafields[i])
		}
		if i < len(products) {
			merged = append(merged, products[i])
		}
	}
	return merged
}
