package domain

import "encoding/json"

// Collection identifies the collection a merged listing was built from
type Collection struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProductSummary is the reduced product shape returned to callers
type ProductSummary struct {
	ID                int64           `json:"id"`
	Title             string          `json:"title"`
	ProductType       string          `json:"product_type"`
	AdminGraphQLAPIID string          `json:"admin_graphql_api_id"`
	Image             json.RawMessage `json:"image"`
}

// MetafieldSummary is the reduced metafield shape; Title carries the metafield key
type MetafieldSummary struct {
	ID                int64           `json:"id"`
	Title             string          `json:"title"`
	Value             json.RawMessage `json:"value"`
	AdminGraphQLAPIID string          `json:"admin_graphql_api_id"`
}

// CollectionEntry is one element of the merged listing, either a
// *MetafieldSummary or a *ProductSummary
type CollectionEntry interface {
	entryKind() string
}

func (*ProductSummary) entryKind() string   { return "product" }
func (*MetafieldSummary) entryKind() string { return "metafield" }

// EntryKind reports "product" or "metafield" for a merged entry
func EntryKind(e CollectionEntry) string {
	return e.entryKind()
}

// CollectionProducts is the aggregator response body
type CollectionProducts struct {
	Collection Collection        `json:"collection"`
	Data       []CollectionEntry `json:"data"`
}

// SubscriptionRequest is the inbound save-email payload
type SubscriptionRequest struct {
	Email string `json:"email"`
}
