package service

import (
	"context"
	"sync"

	"github.com/awadali7/Pro-shopify-backend/internal/shopify"
)

type fakeShopify struct {
	mu sync.Mutex

	products      []shopify.Product
	productsErr   error
	metafields    []shopify.Metafield
	metafieldsErr error
	customerResp  *shopify.Response
	customerErr   error
	priceRules    *shopify.Response
	priceRulesErr error

	customerInputs []shopify.CustomerInput
	calls          []string
}

func (f *fakeShopify) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeShopify) ListCollectionProducts(ctx context.Context, collectionID string) ([]shopify.Product, error) {
	f.record("products:" + collectionID)
	return f.products, f.productsErr
}

func (f *fakeShopify) ListCollectionMetafields(ctx context.Context, collectionID string) ([]shopify.Metafield, error) {
	f.record("metafields:" + collectionID)
	return f.metafields, f.metafieldsErr
}

func (f *fakeShopify) CreateCustomer(ctx context.Context, input shopify.CustomerInput) (*shopify.Response, error) {
	f.record("customers")
	f.mu.Lock()
	f.customerInputs = append(f.customerInputs, input)
	f.mu.Unlock()
	return f.customerResp, f.customerErr
}

func (f *fakeShopify) ListPriceRules(ctx context.Context) (*shopify.Response, error) {
	f.record("price_rules")
	return f.priceRules, f.priceRulesErr
}
