// Package apiclient is the HTTP client for the storefront backend API.
// It owns bearer-token attachment and the single-flight refresh flow; the
// per-resource wrapper files (auth.go, cart.go, ...) are thin mappings from
// one REST endpoint to one method each.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/mod/semver"

	"shopfront/internal/credential"
	"shopfront/internal/model"
)

// =============================================================================
// TOKEN REFRESH STRATEGY
// =============================================================================
//
// The backend issues short-lived bearer tokens. When a request comes back 401
// the client refreshes the credential and retries - but naive retry logic
// stampedes: N concurrent 401s would fire N refresh calls, and the backend
// invalidates all but the last issued token, logging everyone out.
//
// The contract implemented here:
//
//   - At most ONE refresh call is in flight at any time (single-flight).
//   - Requests that hit 401 while a refresh is underway enqueue and wait;
//     once the refresh resolves they are replayed in FIFO order with the new
//     token. The goroutine that ran the refresh resends its own request only
//     after every queued request has been dispatched.
//   - A request is retried at most once. A second 401 is terminal.
//   - 401 from the auth endpoints themselves (login/register/refresh) never
//     triggers a refresh: those are credential errors, not expiry.
//   - If the refresh fails the stored credential is cleared, every waiter is
//     rejected with REFRESH_FAILED, and the caller must re-authenticate.
//
// Queued replays are executed sequentially by the refreshing goroutine. That
// serializes a brief burst after each refresh, but makes dispatch order
// deterministic and keeps the whole flow free of extra goroutines.
// =============================================================================

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "shopfront-client/1.0"

	// minAPIVersion is the oldest backend this client is known to work with.
	// Compared against the X-Api-Version response header.
	minAPIVersion = "v1.4.0"
)

// Config holds client construction options.
type Config struct {
	// BaseURL of the storefront backend, e.g. "https://api.shop.example".
	BaseURL string

	// Credentials stores the bearer token. Required; use credential.NewMemStore
	// for ephemeral sessions.
	Credentials credential.Store

	// HTTPClient overrides the default client. Optional.
	HTTPClient *http.Client

	// Logger for refresh and version diagnostics. Optional.
	Logger *slog.Logger

	// Timeout for the default HTTP client. Ignored when HTTPClient is set.
	Timeout time.Duration
}

// Client issues authenticated requests against the storefront backend.
// Refresh coordination state lives on the instance; there are no package
// globals, so independent clients never interfere.
type Client struct {
	httpClient *http.Client
	baseURL    string
	creds      credential.Store
	logger     *slog.Logger

	mu         sync.Mutex
	refreshing bool
	queue      []*pendingRequest

	versionWarn sync.Once
}

// pendingRequest is a request that failed with 401 while a refresh was
// already underway. replay resends it with the new credential; the waiting
// goroutine blocks on done.
type pendingRequest struct {
	replay func() error
	done   chan error
}

// New creates a storefront API client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if cfg.Credentials == nil {
		return nil, fmt.Errorf("credential store is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		creds:      cfg.Credentials,
		logger:     logger,
	}, nil
}

// Credentials exposes the credential store, for callers that need to know
// whether a session exists (e.g. the CLI status command).
func (c *Client) Credentials() credential.Store {
	return c.creds
}

// envelope is the backend's uniform response wrapper: {"data": ..., "message": ...}.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message,omitempty"`
}

// do performs one API call: marshal body, send with auth, handle 401 via the
// refresh flow, decode the data envelope into result.
func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
	}
	return c.doAttempt(ctx, method, path, payload, "application/json", result, 0)
}

// doAttempt sends the request. attempt counts resends: an attempt beyond 0
// is never retried again, whatever the status.
func (c *Client) doAttempt(ctx context.Context, method, path string, payload []byte, contentType string, result any, attempt int) error {
	status, respBody, err := c.send(ctx, method, path, payload, contentType)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized && attempt == 0 && !isAuthPath(path) {
		return c.retryAfterRefresh(ctx, method, path, payload, contentType, result)
	}

	if status >= 400 {
		return c.parseError(status, respBody)
	}

	return decodeData(respBody, result)
}

// send executes a single HTTP exchange, attaching the bearer token when one
// is stored. Transport failures come back as NETWORK_ERROR; any response,
// whatever the status, is returned to the caller for interpretation.
func (c *Client) send(ctx context.Context, method, path string, payload []byte, contentType string) (int, []byte, error) {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return 0, nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if token := c.creds.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, nil, ctx.Err()
		}
		return 0, nil, model.NewNetworkError(err)
	}
	defer resp.Body.Close()

	c.checkAPIVersion(resp.Header.Get("X-Api-Version"))

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, model.NewNetworkError(err)
	}

	return resp.StatusCode, respBody, nil
}

// retryAfterRefresh coordinates the single-flight refresh. The first request
// to see a 401 becomes the refresher; everyone else enqueues and waits.
func (c *Client) retryAfterRefresh(ctx context.Context, method, path string, payload []byte, contentType string, result any) error {
	c.mu.Lock()
	if c.refreshing {
		p := &pendingRequest{done: make(chan error, 1)}
		p.replay = func() error {
			if ctx.Err() != nil {
				// Caller gave up while queued; drop without resending.
				return ctx.Err()
			}
			return c.doAttempt(ctx, method, path, payload, contentType, result, 1)
		}
		c.queue = append(c.queue, p)
		c.mu.Unlock()

		select {
		case err := <-p.done:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	c.refreshing = true
	c.mu.Unlock()

	refreshErr := c.refresh(ctx)

	c.mu.Lock()
	c.refreshing = false
	queued := c.queue
	c.queue = nil
	c.mu.Unlock()

	// Release waiters in enqueue order. On success each is replayed exactly
	// once with the new credential; on failure all are rejected.
	for _, p := range queued {
		if refreshErr != nil {
			p.done <- refreshErr
			continue
		}
		p.done <- p.replay()
	}

	if refreshErr != nil {
		return refreshErr
	}

	// The refresher resends its own request last.
	return c.doAttempt(ctx, method, path, payload, contentType, result, 1)
}

type refreshRequest struct {
	Token string `json:"token"`
}

type refreshResponse struct {
	Token string `json:"token"`
}

// refresh exchanges the stored credential for a fresh one. Any failure
// clears the credential: a token the backend has rejected is not worth
// keeping around for a second rejection.
func (c *Client) refresh(ctx context.Context) error {
	stale := c.creds.Token()

	payload, err := json.Marshal(refreshRequest{Token: stale})
	if err != nil {
		return model.NewRefreshFailedError(err)
	}

	status, body, err := c.send(ctx, http.MethodPost, "/auth/refresh", payload, "application/json")
	if err != nil {
		c.clearCredential()
		return model.NewRefreshFailedError(err)
	}
	if status >= 400 {
		c.clearCredential()
		return model.NewRefreshFailedError(c.parseError(status, body))
	}

	var data refreshResponse
	if err := decodeData(body, &data); err != nil {
		c.clearCredential()
		return model.NewRefreshFailedError(err)
	}
	if data.Token == "" {
		c.clearCredential()
		return model.NewRefreshFailedError(fmt.Errorf("refresh response carried no token"))
	}

	if err := c.creds.SetToken(data.Token); err != nil {
		return model.NewRefreshFailedError(fmt.Errorf("storing refreshed token: %w", err))
	}

	c.logger.Debug("credential refreshed")
	return nil
}

func (c *Client) clearCredential() {
	if err := c.creds.Clear(); err != nil {
		c.logger.Warn("clearing credential failed", slog.String("error", err.Error()))
	}
}

// isAuthPath reports whether path is one of the endpoints exempt from the
// refresh flow. A 401 from these means wrong credentials, not an expired
// session.
func isAuthPath(path string) bool {
	switch path {
	case "/auth/login", "/auth/register", "/auth/refresh":
		return true
	}
	return false
}

// parseError maps backend error responses to the model taxonomy. Business
// errors (4xx) are forwarded with the backend's message; this layer does not
// interpret them further.
func (c *Client) parseError(status int, body []byte) error {
	var env envelope
	json.Unmarshal(body, &env) // Best effort parse
	message := env.Message

	switch {
	case status == http.StatusUnauthorized:
		if message == "" {
			message = "authentication required"
		}
		return model.NewUnauthorizedError(message)
	case status == http.StatusNotFound:
		return model.NewNotFoundError("resource")
	case status == http.StatusTooManyRequests:
		return model.NewRateLimitError("storefront API")
	case status >= 500:
		return model.NewServerError(status, message)
	default:
		if message == "" {
			message = fmt.Sprintf("request rejected with status %d", status)
		}
		return model.NewValidationError("request", message)
	}
}

// decodeData unmarshals the data envelope into result. Endpoints that return
// a bare object (no envelope) still decode, since json.RawMessage falls back
// to the whole body.
func decodeData(body []byte, result any) error {
	if result == nil || len(body) == 0 {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, result); err != nil {
			return fmt.Errorf("parsing response data: %w", err)
		}
		return nil
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}

// checkAPIVersion warns once when the backend reports a version older than
// this client supports. Advisory only - requests proceed regardless.
func (c *Client) checkAPIVersion(version string) {
	if version == "" {
		return
	}
	v := version
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) || semver.Compare(v, minAPIVersion) >= 0 {
		return
	}
	c.versionWarn.Do(func() {
		c.logger.Warn("backend API older than supported minimum",
			slog.String("backend_version", version),
			slog.String("min_supported", minAPIVersion),
		)
	})
}
