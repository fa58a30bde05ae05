package stylist

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"shopfront/internal/model"
)

// MaxRequestBodySize limits JSON request bodies to 1MB to prevent DoS.
const MaxRequestBodySize = 1 << 20 // 1MB

// Handler holds dependencies for the stylist HTTP handlers.
type Handler struct {
	generator Generator
	catalog   CatalogSource
	logger    *slog.Logger
	validate  *validator.Validate
}

// NewHandler creates a Handler with the given generator, catalog, and logger.
func NewHandler(generator Generator, catalog CatalogSource, logger *slog.Logger) *Handler {
	return &Handler{
		generator: generator,
		catalog:   catalog,
		logger:    logger,
		validate:  validator.New(),
	}
}

// RegisterRoutes registers all HTTP routes with the given ServeMux.
// Uses Go 1.22+ method routing patterns.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /chat", h.handleChat)

	// MCP transport - JSON-RPC endpoint using official MCP SDK
	mux.Handle("/mcp", h.NewMCPHandler())

	// Health check
	mux.HandleFunc("GET /{$}", h.handleHealth)
	mux.HandleFunc("GET /healthz", h.handleHealth)
}

// ChatRequest is the POST /chat body.
type ChatRequest struct {
	Message string        `json:"message" validate:"required,max=4000"`
	History []ChatMessage `json:"history" validate:"omitempty,max=50,dive"`
}

// ChatResponse is the POST /chat reply.
type ChatResponse struct {
	Reply string `json:"reply"`
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	info, err := clientInfo(r)
	if err != nil {
		h.writeError(w, model.NewValidationError("Stylist-Client", err.Error()))
		return
	}

	var req ChatRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, model.NewValidationError("message", "message is required and must fit the length limits"))
		return
	}

	catalog, err := h.catalog.Snapshot(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	prompt, err := BuildPrompt(catalog, req.History, req.Message)
	if err != nil {
		h.writeError(w, err)
		return
	}

	reply, err := h.generator.Generate(r.Context(), prompt)
	if err != nil {
		h.writeError(w, err)
		return
	}

	attrs := []any{slog.Int("prompt_len", len(prompt)), slog.Int("reply_len", len(reply))}
	if info != nil {
		attrs = append(attrs, slog.String("client_app", info.App), slog.String("client_version", info.Version))
	}
	h.logger.Info("chat served", attrs...)

	h.writeJSON(w, http.StatusOK, ChatResponse{Reply: reply})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "stylist-proxy",
	})
}

// clientInfo parses the optional Stylist-Client header. Absent header is
// fine; a present but malformed one is rejected.
func clientInfo(r *http.Request) (*ClientInfo, error) {
	header := r.Header.Get("Stylist-Client")
	if header == "" {
		return nil, nil
	}
	return ParseClientHeader(header)
}

// === Response Helpers ===

// writeJSON sends a JSON response with the given status code.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// writeError sends an error response, extracting status/code from APIError if
// present. Uses errors.As() to unwrap error chains.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError

	if errors.As(err, &apiErr) {
		// Found APIError in error chain - use it
	} else {
		apiErr = &model.APIError{
			Code:       "INTERNAL_ERROR",
			Message:    "an internal error occurred",
			StatusCode: http.StatusInternalServerError,
		}
		h.logger.Error("internal error", slog.String("error", err.Error()))
	}

	status := apiErr.StatusCode
	if status == 0 {
		// Transport failures carry no HTTP status of their own.
		status = http.StatusBadGateway
	}

	h.writeJSON(w, status, errorResponse{
		Error: errorBody{
			Code:    apiErr.Code,
			Message: apiErr.Message,
		},
	})
}

// errorResponse is the JSON structure for error responses.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// decodeJSON reads JSON from request body into v.
// Limits body size to MaxRequestBodySize to prevent memory exhaustion.
// Returns an APIError if decoding fails.
func decodeJSON(r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, MaxRequestBodySize)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		// Don't expose internal error details to client
		return model.NewValidationError("body", "invalid JSON")
	}
	return nil
}
