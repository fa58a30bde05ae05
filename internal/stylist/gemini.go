package stylist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"shopfront/internal/model"
	"shopfront/internal/transport"
)

// Generator produces a reply for a fully assembled prompt. The HTTP handler
// and the MCP tool depend on this, not on Gemini directly.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

const (
	geminiBaseURL      = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModel = "gemini-2.0-flash"
)

// GeminiConfig holds Gemini client settings.
type GeminiConfig struct {
	// APIKey authenticates with the generative-language API. Required.
	APIKey string

	// Model overrides the default generation model.
	Model string

	// BaseURL overrides the production endpoint. Used by tests.
	BaseURL string

	// HTTPClient overrides the default client. Used by tests.
	HTTPClient *http.Client
}

// GeminiClient calls the generative-language REST API.
type GeminiClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// NewGemini creates a Gemini client.
func NewGemini(cfg GeminiConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = geminiBaseURL
	}

	geminiModel := cfg.Model
	if geminiModel == "" {
		geminiModel = defaultGeminiModel
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   60 * time.Second,
			Transport: transport.NewBrowserTransport(60 * time.Second),
		}
	}

	return &GeminiClient{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      geminiModel,
	}, nil
}

// Wire types for generateContent. Only the fields the proxy uses.

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

type geminiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Generate runs one generateContent call and returns the concatenated text of
// the first candidate.
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		g.baseURL, g.model, url.QueryEscape(g.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", model.NewUpstreamError("Gemini", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", g.parseError(resp.StatusCode, body)
	}

	var out geminiResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("parsing response: %w", err)
	}
	if len(out.Candidates) == 0 {
		return "", model.NewUpstreamError("Gemini", fmt.Errorf("no candidates in response"))
	}

	var b strings.Builder
	for _, part := range out.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	reply := strings.TrimSpace(b.String())
	if reply == "" {
		return "", model.NewUpstreamError("Gemini", fmt.Errorf("empty candidate text"))
	}
	return reply, nil
}

// parseError maps generative-language errors to the model taxonomy. The API
// key never appears in returned errors.
func (g *GeminiClient) parseError(statusCode int, body []byte) error {
	var errResp geminiErrorResponse
	json.Unmarshal(body, &errResp) // Best effort parse

	msg := errResp.Error.Message
	if msg == "" {
		msg = http.StatusText(statusCode)
	}

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return model.NewUnauthorizedError("Gemini rejected the API key")
	case http.StatusTooManyRequests:
		return model.NewRateLimitError("Gemini")
	default:
		return model.NewUpstreamError("Gemini",
			fmt.Errorf("status %d (%s): %s", statusCode, errResp.Error.Status, msg))
	}
}
