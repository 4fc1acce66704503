package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/awadali7/Pro-shopify-backend/internal/config"
	"github.com/awadali7/Pro-shopify-backend/internal/shopify"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	client := shopify.NewClient(cfg.Shopify, logger)

	fmt.Println("🔍 Fetching price rules from Shopify...")
	fmt.Println("")

	resp, err := client.ListPriceRules(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	var result struct {
		PriceRules []struct {
			ID    int64  `json:"id"`
			Title string `json:"title"`
		} `json:"price_rules"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		fmt.Println(string(resp.Body))
		return
	}

	for _, rule := range result.PriceRules {
		fmt.Printf("  %d\t%s\n", rule.ID, rule.Title)
	}
	fmt.Printf("\n✅ %d price rules\n", len(result.PriceRules))

	if len(os.Args) > 1 && os.Args[1] == "--raw" {
		var pretty bytes.Buffer
		if err := json.Indent(&pretty, resp.Body, "", "  "); err == nil {
			fmt.Println(pretty.String())
		}
	}
}
