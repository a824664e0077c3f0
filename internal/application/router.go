package application

import (
	"context"
	"fmt"

	"website-mcp-server/internal/domain"
)

// RequestRouter dispatches MCP tool requests to the appropriate
// ToolHandler. Each handler declares its tool names via ListTools, and
// routing is by exact tool name.
type RequestRouter struct {
	byTool   map[string]domain.ToolHandler
	handlers []domain.ToolHandler
}

// NewRequestRouter creates a new RequestRouter with the provided handlers.
// Later handlers win on duplicate tool names.
func NewRequestRouter(handlers ...domain.ToolHandler) *RequestRouter {
	router := &RequestRouter{
		byTool:   make(map[string]domain.ToolHandler),
		handlers: handlers,
	}

	for _, handler := range handlers {
		for _, tool := range handler.ListTools() {
			router.byTool[tool.Name] = handler
		}
	}

	return router
}

// Route dispatches a tool request to the handler that declared the tool.
// Unknown tool names yield a typed MethodNotFound error so the dispatcher
// maps them to -32601.
func (r *RequestRouter) Route(ctx context.Context, req *domain.ToolRequest) (*domain.ToolResponse, error) {
	handler, exists := r.byTool[req.Name]
	if !exists {
		return nil, &domain.Error{
			Code:    domain.MethodNotFound,
			Message: fmt.Sprintf("Unknown tool: %s", req.Name),
		}
	}

	return handler.Handle(ctx, req)
}

// ListAllTools aggregates tool definitions from all registered handlers
// in registration order. This is used for MCP tool discovery (tools/list).
func (r *RequestRouter) ListAllTools() []domain.ToolDefinition {
	var allTools []domain.ToolDefinition

	for _, handler := range r.handlers {
		allTools = append(allTools, handler.ListTools()...)
	}

	return allTools
}
