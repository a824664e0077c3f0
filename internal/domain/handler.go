package domain

import (
	"context"
)

// ToolHandler processes requests for a group of related tools.
// The catalog handler serves search/fetch over the template store and the
// website handler serves createWebsite.
type ToolHandler interface {
	// Handle processes an MCP tool call request.
	// Returns the tool response or an error if processing fails.
	// Parameter problems are reported as *Error with InvalidParams.
	Handle(ctx context.Context, req *ToolRequest) (*ToolResponse, error)

	// ListTools returns the tools this handler serves.
	ListTools() []ToolDefinition

	// HandlerName returns the identifier for this handler, used in logs.
	HandlerName() string
}
