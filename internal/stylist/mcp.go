// MCP transport for the stylist using the official MCP Go SDK.
// Exposes the chat operation as a tool so agent clients can call it without
// the REST surface.
package stylist

import (
	"context"
	"fmt"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"shopfront/internal/model"
)

// StylistChatInput is the input schema for the stylist_chat tool.
type StylistChatInput struct {
	Message string        `json:"message" jsonschema:"the customer's question or request,required"`
	History []ChatMessage `json:"history,omitempty" jsonschema:"prior conversation turns, oldest first"`
}

// StylistChatOutput is the output schema for the stylist_chat tool.
type StylistChatOutput struct {
	Reply string `json:"reply" jsonschema:"the stylist's recommendation"`
}

// NewMCPServer creates an MCP server with the chat tool registered.
func (h *Handler) NewMCPServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "stylist-proxy",
			Version: "1.0.0",
		},
		&mcp.ServerOptions{
			Instructions: "Shopping stylist for the storefront catalog. " +
				"Use stylist_chat to get outfit and product recommendations.",
		},
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "stylist_chat",
		Description: "Ask the stylist for product recommendations. Pass prior turns in history to keep context.",
	}, h.mcpChat)

	return server
}

// NewMCPHandler returns an HTTP handler for the MCP endpoint.
// Mount this at /mcp on your mux.
func (h *Handler) NewMCPHandler() http.Handler {
	server := h.NewMCPServer()
	return mcp.NewStreamableHTTPHandler(
		func(r *http.Request) *mcp.Server { return server },
		nil,
	)
}

func (h *Handler) mcpChat(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input StylistChatInput,
) (*mcp.CallToolResult, *StylistChatOutput, error) {
	if input.Message == "" {
		return nil, nil, fmt.Errorf("message is required")
	}
	if err := h.validate.Var(input.Message, "max=4000"); err != nil {
		return nil, nil, fmt.Errorf("message exceeds the length limit")
	}

	catalog, err := h.catalog.Snapshot(ctx)
	if err != nil {
		return nil, nil, h.mcpError(err)
	}

	prompt, err := BuildPrompt(catalog, input.History, input.Message)
	if err != nil {
		return nil, nil, h.mcpError(err)
	}

	reply, err := h.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, nil, h.mcpError(err)
	}

	return nil, &StylistChatOutput{Reply: reply}, nil
}

// mcpError converts internal errors to MCP-friendly errors.
func (h *Handler) mcpError(err error) error {
	if apiErr, ok := err.(*model.APIError); ok {
		return fmt.Errorf("%s: %s", apiErr.Code, apiErr.Message)
	}
	// Don't leak internal error details
	h.logger.Error("mcp internal error", "error", err.Error())
	return fmt.Errorf("internal error")
}
