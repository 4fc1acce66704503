package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/awadali7/Pro-shopify-backend/pkg/errors"
)

// Resource names used for logging, metrics and error context
const (
	ResourceProducts   = "collection_products"
	ResourceMetafields = "collection_metafields"
	ResourceCustomers  = "customers"
	ResourcePriceRules = "price_rules"
)

// pageLimit is the largest page Shopify REST list endpoints accept
const pageLimit = 250

// Product is the subset of the REST product record the gateway reads
type Product struct {
	ID                int64           `json:"id"`
	Title             string          `json:"title"`
	ProductType       string          `json:"product_type"`
	AdminGraphQLAPIID string          `json:"admin_graphql_api_id"`
	Image             json.RawMessage `json:"image"`
	Options           []ProductOption `json:"options"`
}

type ProductOption struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
}

// Metafield is the subset of the REST metafield record the gateway reads
type Metafield struct {
	ID                int64           `json:"id"`
	Namespace         string          `json:"namespace"`
	Key               string          `json:"key"`
	Value             json.RawMessage `json:"value"`
	Type              string          `json:"type"`
	AdminGraphQLAPIID string          `json:"admin_graphql_api_id"`
}

// CustomerInput is the body of POST customers.json
type CustomerInput struct {
	Email                 string                 `json:"email"`
	Tags                  string                 `json:"tags,omitempty"`
	AcceptsMarketing      bool                   `json:"accepts_marketing"`
	EmailMarketingConsent *EmailMarketingConsent `json:"email_marketing_consent,omitempty"`
}

type EmailMarketingConsent struct {
	State            string `json:"state"`
	ConsentUpdatedAt string `json:"consent_updated_at"`
}

// ListCollectionProducts returns every product of a collection, following
// Link rel="next" pagination. A response without a products key yields an
// empty result.
func (c *Client) ListCollectionProducts(ctx context.Context, collectionID string) ([]Product, error) {
	var all []Product
	path := fmt.Sprintf("collections/%s/products.json?limit=%d", url.PathEscape(collectionID), pageLimit)

	for path != "" {
		resp, err := c.Do(ctx, http.MethodGet, ResourceProducts, path, nil)
		if err != nil {
			return nil, err
		}

		var page struct {
			Products []Product `json:"products"`
		}
		if err := json.Unmarshal(resp.Body, &page); err != nil {
			return nil, &apperrors.ErrRequestSetup{Resource: ResourceProducts, Err: fmt.Errorf("failed to unmarshal products: %w", err)}
		}
		all = append(all, page.Products...)
		path = nextPageURL(resp.Header)
	}

	return all, nil
}

// ListCollectionMetafields returns every metafield owned by a collection. A
// response without a metafields key is a setup error: the caller cannot
// project what it never received.
func (c *Client) ListCollectionMetafields(ctx context.Context, collectionID string) ([]Metafield, error) {
	all := []Metafield{}
	path := fmt.Sprintf("collections/%s/metafields.json?limit=%d", url.PathEscape(collectionID), pageLimit)

	for path != "" {
		resp, err := c.Do(ctx, http.MethodGet, ResourceMetafields, path, nil)
		if err != nil {
			return nil, err
		}

		var page struct {
			Metafields *[]Metafield `json:"metafields"`
		}
		if err := json.Unmarshal(resp.Body, &page); err != nil {
			return nil, &apperrors.ErrRequestSetup{Resource: ResourceMetafields, Err: fmt.Errorf("failed to unmarshal metafields: %w", err)}
		}
		if page.Metafields == nil {
			return nil, &apperrors.ErrRequestSetup{Resource: ResourceMetafields, Err: fmt.Errorf("metafields missing from response")}
		}
		all = append(all, *page.Metafields...)
		path = nextPageURL(resp.Header)
	}

	return all, nil
}

// CreateCustomer posts a new customer and returns the raw upstream response
func (c *Client) CreateCustomer(ctx context.Context, input CustomerInput) (*Response, error) {
	payload := map[string]interface{}{"customer": input}
	return c.Do(ctx, http.MethodPost, ResourceCustomers, "customers.json", payload)
}

// ListPriceRules returns the price_rules.json response untouched
func (c *Client) ListPriceRules(ctx context.Context) (*Response, error) {
	return c.Do(ctx, http.MethodGet, ResourcePriceRules, "price_rules.json", nil)
}

// nextPageURL extracts the rel="next" target from a Shopify Link header,
// e.g. `<https://shop/admin/api/2024-10/products.json?page_info=x>; rel="next"`.
func nextPageURL(h http.Header) string {
	for _, link := range h.Values("Link") {
		for _, part := range strings.Split(link, ",") {
			segments := strings.Split(part, ";")
			if len(segments) < 2 {
				continue
			}
			target := strings.TrimSpace(segments[0])
			if !strings.HasPrefix(target, "<") || !strings.HasSuffix(target, ">") {
				continue
			}
			for _, param := range segments[1:] {
				param = strings.ReplaceAll(strings.TrimSpace(param), " ", "")
				if param == `rel="next"` || param == "rel=next" {
					return strings.TrimSuffix(strings.TrimPrefix(target, "<"), ">")
				}
			}
		}
	}
	return ""
}
