package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/awadali7/Pro-shopify-backend/internal/config"
	apperrors "github.com/awadali7/Pro-shopify-backend/pkg/errors"
)

type recordingObserver struct {
	mu       sync.Mutex
	outcomes []string
}

func (o *recordingObserver) ObserveUpstream(resource, outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, resource+":"+outcome)
}

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.ShopifyConfig{
		ShopDomain:  srv.URL,
		AccessToken: "shpat_test",
		APIVersion:  "2024-10",
		Timeout:     5 * time.Second,
	}, zap.NewNop(), opts...)
}

func TestNewClientNormalizesDomain(t *testing.T) {
	tests := []struct {
		domain string
		want   string
	}{
		{"proluxuryhome.com", "https://proluxuryhome.com/admin/api/2024-10"},
		{"https://proluxuryhome.com/", "https://proluxuryhome.com/admin/api/2024-10"},
		{"http://127.0.0.1:9999", "http://127.0.0.1:9999/admin/api/2024-10"},
	}
	for _, tt := range tests {
		c := NewClient(config.ShopifyConfig{ShopDomain: tt.domain, APIVersion: "2024-10"}, nil)
		assert.Equal(t, tt.want, c.BaseURL())
	}
}

func TestDoSendsAuthHeaders(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/api/2024-10/price_rules.json", r.URL.Path)
		assert.Equal(t, "shpat_test", r.Header.Get("X-Shopify-Access-Token"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = io.WriteString(w, `{"price_rules":[]}`)
	}))

	resp, err := c.ListPriceRules(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json; charset=utf-8", resp.ContentType())
	assert.JSONEq(t, `{"price_rules":[]}`, string(resp.Body))
}

func TestDoClassifiesErrorStatus(t *testing.T) {
	obs := &recordingObserver{}
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"errors":{"email":["has already been taken"]}}`)
	}), WithObserver(obs))

	_, err := c.CreateCustomer(context.Background(), CustomerInput{Email: "a@b.com", AcceptsMarketing: true})
	require.Error(t, err)

	var upstream *apperrors.ErrUpstream
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusUnprocessableEntity, upstream.StatusCode)
	assert.Equal(t, ResourceCustomers, upstream.Resource)
	assert.JSONEq(t, `{"errors":{"email":["has already been taken"]}}`, string(upstream.Body))
	assert.Equal(t, []string{"customers:error_status"}, obs.outcomes)
}

func TestDoClassifiesUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	obs := &recordingObserver{}
	c := NewClient(config.ShopifyConfig{ShopDomain: addr, AccessToken: "x", APIVersion: "2024-10", Timeout: time.Second}, zap.NewNop(), WithObserver(obs))

	_, err := c.ListPriceRules(context.Background())
	var unreachable *apperrors.ErrUpstreamUnreachable
	require.True(t, errors.As(err, &unreachable))
	assert.Equal(t, ResourcePriceRules, unreachable.Resource)
	assert.Equal(t, []string{"price_rules:unreachable"}, obs.outcomes)
}

func TestDoClassifiesSetupFailures(t *testing.T) {
	c := NewClient(config.ShopifyConfig{ShopDomain: "shop.example", AccessToken: "x", APIVersion: "2024-10"}, zap.NewNop())

	t.Run("unmarshalable payload", func(t *testing.T) {
		_, err := c.Do(context.Background(), http.MethodPost, ResourceCustomers, "customers.json", map[string]interface{}{"bad": make(chan int)})
		var setup *apperrors.ErrRequestSetup
		require.True(t, errors.As(err, &setup))
		assert.Contains(t, setup.Error(), "failed to marshal request")
	})

	t.Run("invalid url", func(t *testing.T) {
		_, err := c.Do(context.Background(), http.MethodGet, ResourcePriceRules, "http://bad host/x", nil)
		var setup *apperrors.ErrRequestSetup
		require.True(t, errors.As(err, &setup))
		assert.Contains(t, setup.Error(), "failed to create request")
	})
}

func TestDoRateLimiterHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	c := NewClient(config.ShopifyConfig{
		ShopDomain: srv.URL, AccessToken: "x", APIVersion: "2024-10",
		Timeout: time.Second, RateLimit: 0.001, RateBurst: 1,
	}, zap.NewNop())

	_, err := c.ListPriceRules(context.Background())
	require.NoError(t, err, "first call uses the burst token")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.ListPriceRules(ctx)
	var setup *apperrors.ErrRequestSetup
	require.True(t, errors.As(err, &setup))
}

func TestListCollectionProductsFollowsPagination(t *testing.T) {
	var srvURL string
	mux := http.NewServeMux()
	mux.HandleFunc("/admin/api/2024-10/collections/366257340597/products.json", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page_info") {
		case "":
			assert.Equal(t, "250", r.URL.Query().Get("limit"))
			w.Header().Set("Link", fmt.Sprintf(`<%s/admin/api/2024-10/collections/366257340597/products.json?limit=250&page_info=p2>; rel="next"`, srvURL))
			_, _ = io.WriteString(w, `{"products":[{"id":1,"title":"One"},{"id":2,"title":"Two"}]}`)
		case "p2":
			w.Header().Set("Link", fmt.Sprintf(`<%s/admin/api/2024-10/collections/366257340597/products.json?limit=250&page_info=p1>; rel="previous"`, srvURL))
			_, _ = io.WriteString(w, `{"products":[{"id":3,"title":"Three","options":[{"id":30,"product_id":3,"name":"Size"}]}]}`)
		default:
			t.Errorf("unexpected page %q", r.URL.RawQuery)
		}
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	srvURL = srv.URL

	c := NewClient(config.ShopifyConfig{ShopDomain: srv.URL, AccessToken: "x", APIVersion: "2024-10", Timeout: time.Second}, zap.NewNop())
	products, err := c.ListCollectionProducts(context.Background(), "366257340597")
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{products[0].ID, products[1].ID, products[2].ID})
	assert.Equal(t, int64(30), products[2].Options[0].ID)
}

func TestListCollectionProductsMissingKey(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"collection":{}}`)
	}))
	products, err := c.ListCollectionProducts(context.Background(), "1")
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestListCollectionMetafields(t *testing.T) {
	t.Run("decodes values untouched", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/admin/api/2024-10/collections/9/metafields.json", r.URL.Path)
			_, _ = io.WriteString(w, `{"metafields":[{"id":7,"key":"prize","value":"car","admin_graphql_api_id":"gid://shopify/Metafield/7"},{"id":8,"key":"count","value":3}]}`)
		}))
		metafields, err := c.ListCollectionMetafields(context.Background(), "9")
		require.NoError(t, err)
		require.Len(t, metafields, 2)
		assert.Equal(t, "prize", metafields[0].Key)
		assert.Equal(t, json.RawMessage(`"car"`), metafields[0].Value)
		assert.Equal(t, json.RawMessage(`3`), metafields[1].Value)
	})

	t.Run("missing key is a setup error", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{}`)
		}))
		_, err := c.ListCollectionMetafields(context.Background(), "9")
		var setup *apperrors.ErrRequestSetup
		require.True(t, errors.As(err, &setup))
	})

	t.Run("empty list is fine", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"metafields":[]}`)
		}))
		metafields, err := c.ListCollectionMetafields(context.Background(), "9")
		require.NoError(t, err)
		assert.NotNil(t, metafields)
		assert.Empty(t, metafields)
	})
}

func TestCreateCustomerPayload(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/admin/api/2024-10/customers.json", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"customer":{"email":"a@b.com","tags":"Email Subscriber","accepts_marketing":true,"email_marketing_consent":{"state":"subscribed","consent_updated_at":"2024-10-01T00:00:00.000Z"}}}`, string(body))
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"customer":{"id":1}}`)
	}))

	resp, err := c.CreateCustomer(context.Background(), CustomerInput{
		Email:            "a@b.com",
		Tags:             "Email Subscriber",
		AcceptsMarketing: true,
		EmailMarketingConsent: &EmailMarketingConsent{
			State:            "subscribed",
			ConsentUpdatedAt: "2024-10-01T00:00:00.000Z",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestNextPageURL(t *testing.T) {
	h := http.Header{}
	h.Add("Link", `<https://s/a?page_info=prev>; rel="previous", <https://s/a?page_info=next>; rel="next"`)
	assert.Equal(t, "https://s/a?page_info=next", nextPageURL(h))

	assert.Empty(t, nextPageURL(http.Header{}))

	h = http.Header{}
	h.Add("Link", `<https://s/a?page_info=prev>; rel="previous"`)
	assert.Empty(t, nextPageURL(h))
}
