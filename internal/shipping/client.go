// Package shipping is the client for the GHN delivery provider: location
// catalog lookups (province/district/ward) and delivery fee quotes. The
// provider authenticates with a static Token header per shop, unrelated to
// the storefront's bearer credential.
package shipping

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"shopfront/internal/model"
	"shopfront/internal/transport"
)

const (
	defaultBaseURL = "https://online-gateway.ghn.vn/shiip/public-api"

	pathProvinces = "/master-data/province"
	pathDistricts = "/master-data/district"
	pathWards     = "/master-data/ward"
	pathServices  = "/v2/shipping-order/available-services"
	pathFee       = "/v2/shipping-order/fee"

	userAgent = "shopfront/1.0"
)

// Config holds GHN client settings.
type Config struct {
	// Token is the provider API token. Required.
	Token string

	// ShopID is the provider shop identifier, sent on fee/service calls.
	ShopID int

	// BaseURL overrides the production gateway. Used by tests.
	BaseURL string

	// HTTPClient overrides the default client (browser-fingerprint
	// transport, 30s timeout). Used by tests.
	HTTPClient *http.Client
}

// API is the subset of provider operations the storefront needs. The retry
// decorator and tests implement it too.
type API interface {
	Provinces(ctx context.Context) ([]Province, error)
	Districts(ctx context.Context, provinceID int) ([]District, error)
	Wards(ctx context.Context, districtID int) ([]Ward, error)
	AvailableServices(ctx context.Context, fromDistrictID, toDistrictID int) ([]Service, error)
	CalculateFee(ctx context.Context, req FeeRequest) (*FeeResponse, error)
}

// Client talks to the GHN gateway.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	shopID     int
}

// New creates a GHN client.
// The gateway sits behind a JA3-fingerprinting CDN, hence the browser
// transport; see internal/transport.
func New(cfg Config) (*Client, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("provider token is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport.NewBrowserTransport(30 * time.Second),
		}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      cfg.Token,
		shopID:     cfg.ShopID,
	}, nil
}

// Provinces lists all provinces.
func (c *Client) Provinces(ctx context.Context) ([]Province, error) {
	var out []Province
	if err := c.call(ctx, http.MethodGet, pathProvinces, nil, &out); err != nil {
		return nil, fmt.Errorf("listing provinces: %w", err)
	}
	return out, nil
}

// Districts lists the districts of a province.
func (c *Client) Districts(ctx context.Context, provinceID int) ([]District, error) {
	var out []District
	path := pathDistricts + "?province_id=" + strconv.Itoa(provinceID)
	if err := c.call(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, fmt.Errorf("listing districts of province %d: %w", provinceID, err)
	}
	return out, nil
}

// Wards lists the wards of a district.
func (c *Client) Wards(ctx context.Context, districtID int) ([]Ward, error) {
	var out []Ward
	path := pathWards + "?district_id=" + strconv.Itoa(districtID)
	if err := c.call(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, fmt.Errorf("listing wards of district %d: %w", districtID, err)
	}
	return out, nil
}

type availableServicesRequest struct {
	ShopID       int `json:"shop_id"`
	FromDistrict int `json:"from_district"`
	ToDistrict   int `json:"to_district"`
}

// AvailableServices lists delivery services between two districts.
func (c *Client) AvailableServices(ctx context.Context, fromDistrictID, toDistrictID int) ([]Service, error) {
	req := availableServicesRequest{
		ShopID:       c.shopID,
		FromDistrict: fromDistrictID,
		ToDistrict:   toDistrictID,
	}

	var out []Service
	if err := c.call(ctx, http.MethodPost, pathServices, req, &out); err != nil {
		return nil, fmt.Errorf("listing services: %w", err)
	}
	return out, nil
}

// CalculateFee quotes a delivery fee.
func (c *Client) CalculateFee(ctx context.Context, req FeeRequest) (*FeeResponse, error) {
	var out FeeResponse
	if err := c.call(ctx, http.MethodPost, pathFee, req, &out); err != nil {
		return nil, fmt.Errorf("calculating fee: %w", err)
	}
	return &out, nil
}

// call executes one provider request and decodes the data envelope.
func (c *Client) call(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Token", c.token)
	if c.shopID != 0 {
		req.Header.Set("ShopId", strconv.Itoa(c.shopID))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.NewUpstreamError("GHN", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return c.parseError(resp.StatusCode, respBody)
	}

	var env ghnEnvelope[json.RawMessage]
	if err := json.Unmarshal(respBody, &env); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	// The provider reports some errors with HTTP 200 and a non-200 code field.
	if env.Code != 0 && env.Code != 200 {
		return model.NewUpstreamError("GHN", fmt.Errorf("code %d: %s", env.Code, env.Message))
	}

	if result != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, result); err != nil {
			return fmt.Errorf("parsing response data: %w", err)
		}
	}
	return nil
}

// parseError maps provider errors to the model taxonomy.
func (c *Client) parseError(statusCode int, body []byte) error {
	var env ghnEnvelope[json.RawMessage]
	json.Unmarshal(body, &env) // Best effort parse

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return model.NewUnauthorizedError("GHN rejected the provider token")
	case http.StatusTooManyRequests:
		return model.NewRateLimitError("GHN")
	case http.StatusBadRequest:
		msg := env.Message
		if msg == "" {
			msg = "invalid request"
		}
		return model.NewValidationError("request", msg)
	default:
		return model.NewUpstreamError("GHN",
			fmt.Errorf("status %d: %s", statusCode, env.Message))
	}
}
