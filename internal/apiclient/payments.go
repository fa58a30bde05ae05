package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"shopfront/internal/model"
)

// CreatePaymentRequest initiates a payment for an order. Method is the
// provider name ("VNPAY", "COD"); ReturnURL is where the provider redirects
// the buyer afterward.
type CreatePaymentRequest struct {
	Method    string `json:"method"`
	ReturnURL string `json:"returnUrl,omitempty"`
}

// CreatePayment initiates a payment. For VNPay the response carries the
// provider URL to send the buyer to.
func (c *Client) CreatePayment(ctx context.Context, orderID int64, req CreatePaymentRequest) (*model.PaymentInfo, error) {
	var info model.PaymentInfo
	path := fmt.Sprintf("/payment/%d/add", orderID)
	if err := c.do(ctx, http.MethodPost, path, req, &info); err != nil {
		return nil, fmt.Errorf("creating payment for order %d: %w", orderID, err)
	}
	return &info, nil
}

// VerifyVNPayReturn forwards the raw query parameters of a VNPay return URL
// to the backend, which validates the provider signature and settles the
// order. The client deliberately does no local interpretation of provider
// parameters.
func (c *Client) VerifyVNPayReturn(ctx context.Context, params url.Values) (*model.PaymentVerification, error) {
	var verification model.PaymentVerification
	path := "/payment/vnpay-return?" + params.Encode()
	if err := c.do(ctx, http.MethodGet, path, nil, &verification); err != nil {
		return nil, fmt.Errorf("verifying VNPay return: %w", err)
	}
	return &verification, nil
}
