package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/awadali7/Pro-shopify-backend/internal/shopify"
	apperrors "github.com/awadali7/Pro-shopify-backend/pkg/errors"
)

type PriceRuleService struct {
	client ShopifyAPI
	logger *zap.Logger
}

func NewPriceRuleService(client ShopifyAPI, logger *zap.Logger) *PriceRuleService {
	return &PriceRuleService{client: client, logger: logger}
}

// ListPriceRules returns the upstream response untouched. Every failure is
// collapsed into ErrInternal carrying the underlying message.
func (s *PriceRuleService) ListPriceRules(ctx context.Context) (*shopify.Response, error) {
	resp, err := s.client.ListPriceRules(ctx)
	if err != nil {
		s.logger.Error("Failed to list price rules", zap.Error(err))
		return nil, &apperrors.ErrInternal{Err: err}
	}
	return resp, nil
}
