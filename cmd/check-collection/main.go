package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/awadali7/Pro-shopify-backend/internal/config"
	"github.com/awadali7/Pro-shopify-backend/internal/domain"
	"github.com/awadali7/Pro-shopify-backend/internal/service"
	"github.com/awadali7/Pro-shopify-backend/internal/shopify"
)

// check-collection builds the merged collection listing once and prints it.
// Usage: check-collection [collection-id]
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if len(os.Args) > 1 {
		cfg.Shopify.CollectionID = os.Args[1]
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	client := shopify.NewClient(cfg.Shopify, logger)
	svc := service.NewCollectionService(cfg, client, logger)

	fmt.Printf("Fetching collection %s from %s\n\n", cfg.Shopify.CollectionID, client.BaseURL())

	result, err := svc.GetCollectionProducts(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	products, metafields := 0, 0
	for _, entry := range result.Data {
		if domain.EntryKind(entry) == "product" {
			products++
		} else {
			metafields++
		}
	}

	out, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(out))
	fmt.Printf("\n✅ %d products, %d metafields\n", products, metafields)
}
