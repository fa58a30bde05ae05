package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"shopfront/internal/model"
)

// ListVouchers fetches the vouchers currently available to the caller.
func (c *Client) ListVouchers(ctx context.Context) ([]model.Voucher, error) {
	var vouchers []model.Voucher
	if err := c.do(ctx, http.MethodGet, "/voucher/list", nil, &vouchers); err != nil {
		return nil, fmt.Errorf("listing vouchers: %w", err)
	}
	return vouchers, nil
}

// GetVoucher looks up a voucher by code. A wrong or expired code comes back
// as a validation error with the backend's message.
func (c *Client) GetVoucher(ctx context.Context, code string) (*model.Voucher, error) {
	var voucher model.Voucher
	path := "/voucher/byCode?code=" + url.QueryEscape(code)
	if err := c.do(ctx, http.MethodGet, path, nil, &voucher); err != nil {
		return nil, fmt.Errorf("fetching voucher %q: %w", code, err)
	}
	return &voucher, nil
}
