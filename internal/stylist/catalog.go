// Package stylist implements the AI shopping assistant: prompt assembly over
// a live catalog snapshot, the Gemini text-generation client, and the HTTP
// and MCP transports that expose the chat operation.
package stylist

import (
	"context"
	"fmt"
	"sync"
	"time"

	"shopfront/internal/apiclient"
	"shopfront/internal/model"
)

// CatalogSource provides the product snapshot injected into prompts.
type CatalogSource interface {
	Snapshot(ctx context.Context) ([]model.Product, error)
}

// catalogPageSize bounds how much of the catalog one snapshot pulls. The
// prompt builder trims further, so there is no point fetching more.
const catalogPageSize = 60

// APICatalog reads the snapshot from the storefront backend.
type APICatalog struct {
	client *apiclient.Client
}

// NewAPICatalog creates a catalog source backed by the storefront API.
func NewAPICatalog(client *apiclient.Client) *APICatalog {
	return &APICatalog{client: client}
}

func (a *APICatalog) Snapshot(ctx context.Context) ([]model.Product, error) {
	page, err := a.client.ListProducts(ctx, apiclient.ListProductsParams{
		Limit:  catalogPageSize,
		SortBy: "sold",
	})
	if err != nil {
		return nil, fmt.Errorf("fetching catalog snapshot: %w", err)
	}
	return page.Items, nil
}

// CachedCatalog memoizes a CatalogSource for a TTL so bursts of chat calls
// share one backend fetch. A failed refresh serves the previous snapshot if
// one exists.
type CachedCatalog struct {
	source CatalogSource
	ttl    time.Duration

	mu        sync.Mutex
	products  []model.Product
	fetchedAt time.Time
}

// NewCachedCatalog wraps source with a TTL cache.
func NewCachedCatalog(source CatalogSource, ttl time.Duration) *CachedCatalog {
	return &CachedCatalog{source: source, ttl: ttl}
}

func (c *CachedCatalog) Snapshot(ctx context.Context) ([]model.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.products != nil && time.Since(c.fetchedAt) < c.ttl {
		return c.products, nil
	}

	products, err := c.source.Snapshot(ctx)
	if err != nil {
		if c.products != nil {
			return c.products, nil
		}
		return nil, err
	}

	c.products = products
	c.fetchedAt = time.Now()
	return products, nil
}
