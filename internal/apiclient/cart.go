package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"shopfront/internal/model"
)

// ListCart fetches the caller's server-side cart.
func (c *Client) ListCart(ctx context.Context) ([]model.CartLine, error) {
	var lines []model.CartLine
	if err := c.do(ctx, http.MethodGet, "/cart/listForMe", nil, &lines); err != nil {
		return nil, fmt.Errorf("listing cart: %w", err)
	}
	return lines, nil
}

// AddToCartRequest identifies what to add. VariantID is zero for products
// without variants.
type AddToCartRequest struct {
	ProductID int64 `json:"productId"`
	VariantID int64 `json:"variantId,omitempty"`
	Quantity  int   `json:"quantity"`
}

// AddToCart adds an item and returns the resulting cart line. The backend
// merges into an existing line when product and variant already match.
func (c *Client) AddToCart(ctx context.Context, req AddToCartRequest) (*model.CartLine, error) {
	var line model.CartLine
	if err := c.do(ctx, http.MethodPost, "/cart/add", req, &line); err != nil {
		return nil, fmt.Errorf("adding to cart: %w", err)
	}
	return &line, nil
}

type updateCartRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateCartItem sets the quantity of a cart line.
func (c *Client) UpdateCartItem(ctx context.Context, lineID int64, quantity int) (*model.CartLine, error) {
	var line model.CartLine
	path := fmt.Sprintf("/cart/%d/update", lineID)
	if err := c.do(ctx, http.MethodPut, path, updateCartRequest{Quantity: quantity}, &line); err != nil {
		return nil, fmt.Errorf("updating cart line %d: %w", lineID, err)
	}
	return &line, nil
}

// DeleteCartItem removes a cart line.
func (c *Client) DeleteCartItem(ctx context.Context, lineID int64) error {
	path := fmt.Sprintf("/cart/%d/delete", lineID)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("deleting cart line %d: %w", lineID, err)
	}
	return nil
}
