package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"shopfront/internal/model"
)

// ListProductsParams filters and pages the catalog listing. Zero values are
// omitted from the query string.
type ListProductsParams struct {
	Page     int
	Limit    int
	Category string
	Query    string
	SortBy   string
}

// ProductPage is one page of catalog results.
type ProductPage struct {
	Items []model.Product `json:"items"`
	Total int             `json:"total"`
	Page  int             `json:"page"`
}

func (p ListProductsParams) encode() string {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	if p.Query != "" {
		q.Set("q", p.Query)
	}
	if p.SortBy != "" {
		q.Set("sortBy", p.SortBy)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// ListProducts fetches a catalog page. Category, search and sort variants of
// the backend listing all route through here via params.
func (c *Client) ListProducts(ctx context.Context, params ListProductsParams) (*ProductPage, error) {
	var page ProductPage
	if err := c.do(ctx, http.MethodGet, "/product/list"+params.encode(), nil, &page); err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return &page, nil
}

// ProductDetail fetches one product with its variants.
func (c *Client) ProductDetail(ctx context.Context, productID int64) (*model.Product, error) {
	var product model.Product
	path := fmt.Sprintf("/product/detail/%d", productID)
	if err := c.do(ctx, http.MethodGet, path, nil, &product); err != nil {
		return nil, fmt.Errorf("fetching product %d: %w", productID, err)
	}
	return &product, nil
}

// SearchProducts is shorthand for a query-only listing.
func (c *Client) SearchProducts(ctx context.Context, query string, limit int) ([]model.Product, error) {
	page, err := c.ListProducts(ctx, ListProductsParams{Query: query, Limit: limit})
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}
