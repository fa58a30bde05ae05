package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"shopfront/internal/model"
)

// CreateOrderRequest places an order from cart lines. IdempotencyKey is
// filled with a fresh UUID when empty, so a network timeout followed by a
// retry cannot double-charge.
type CreateOrderRequest struct {
	CartLineIDs    []int64 `json:"cartLineIds"`
	AddressID      int64   `json:"addressId"`
	VoucherCode    string  `json:"voucherCode,omitempty"`
	ShippingFee    int64   `json:"shippingFee"`
	Note           string  `json:"note,omitempty"`
	IdempotencyKey string  `json:"idempotencyKey"`
}

// CreateOrder places an order.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*model.Order, error) {
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = uuid.NewString()
	}

	var order model.Order
	if err := c.do(ctx, http.MethodPost, "/order/add", req, &order); err != nil {
		return nil, fmt.Errorf("creating order: %w", err)
	}
	return &order, nil
}

// OrderDetail fetches one order.
func (c *Client) OrderDetail(ctx context.Context, orderID int64) (*model.Order, error) {
	var order model.Order
	path := fmt.Sprintf("/order/detail/%d", orderID)
	if err := c.do(ctx, http.MethodGet, path, nil, &order); err != nil {
		return nil, fmt.Errorf("fetching order %d: %w", orderID, err)
	}
	return &order, nil
}

// MyOrders lists the caller's orders, optionally filtered by status.
func (c *Client) MyOrders(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	path := "/order/listForMe"
	if status != "" {
		path += "?status=" + string(status)
	}

	var orders []model.Order
	if err := c.do(ctx, http.MethodGet, path, nil, &orders); err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	return orders, nil
}

// CancelOrder cancels a pending order.
func (c *Client) CancelOrder(ctx context.Context, orderID int64) (*model.Order, error) {
	return c.transitionOrder(ctx, orderID, "cancel")
}

// CompleteOrder confirms delivery of a shipped order.
func (c *Client) CompleteOrder(ctx context.Context, orderID int64) (*model.Order, error) {
	return c.transitionOrder(ctx, orderID, "complete")
}

// ReturnOrder opens a return for a completed order.
func (c *Client) ReturnOrder(ctx context.Context, orderID int64) (*model.Order, error) {
	return c.transitionOrder(ctx, orderID, "return")
}

func (c *Client) transitionOrder(ctx context.Context, orderID int64, action string) (*model.Order, error) {
	var order model.Order
	path := fmt.Sprintf("/order/%d/%s", orderID, action)
	if err := c.do(ctx, http.MethodPost, path, nil, &order); err != nil {
		return nil, fmt.Errorf("%s order %d: %w", action, orderID, err)
	}
	return &order, nil
}
