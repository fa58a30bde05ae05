package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"shopfront/internal/model"
)

// ListAddresses fetches the caller's saved delivery addresses.
func (c *Client) ListAddresses(ctx context.Context) ([]model.Address, error) {
	var addresses []model.Address
	if err := c.do(ctx, http.MethodGet, "/address/listForMe", nil, &addresses); err != nil {
		return nil, fmt.Errorf("listing addresses: %w", err)
	}
	return addresses, nil
}

// AddAddress saves a new delivery address.
func (c *Client) AddAddress(ctx context.Context, addr model.Address) (*model.Address, error) {
	var saved model.Address
	if err := c.do(ctx, http.MethodPost, "/address/add", addr, &saved); err != nil {
		return nil, fmt.Errorf("adding address: %w", err)
	}
	return &saved, nil
}

// UpdateAddress replaces a saved address.
func (c *Client) UpdateAddress(ctx context.Context, addr model.Address) (*model.Address, error) {
	var saved model.Address
	path := fmt.Sprintf("/address/%d/update", addr.ID)
	if err := c.do(ctx, http.MethodPut, path, addr, &saved); err != nil {
		return nil, fmt.Errorf("updating address %d: %w", addr.ID, err)
	}
	return &saved, nil
}

// DeleteAddress removes a saved address.
func (c *Client) DeleteAddress(ctx context.Context, addressID int64) error {
	path := fmt.Sprintf("/address/%d/delete", addressID)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("deleting address %d: %w", addressID, err)
	}
	return nil
}
