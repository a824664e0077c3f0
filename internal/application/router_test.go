package application

import (
	"context"
	"errors"
	"testing"

	"website-mcp-server/internal/domain"
)

// mockToolHandler is a minimal ToolHandler for router tests.
type mockToolHandler struct {
	name     string
	tools    []domain.ToolDefinition
	response *domain.ToolResponse
	err      error
	called   bool
}

func (m *mockToolHandler) Handle(ctx context.Context, req *domain.ToolRequest) (*domain.ToolResponse, error) {
	m.called = true
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func (m *mockToolHandler) ListTools() []domain.ToolDefinition {
	return m.tools
}

func (m *mockToolHandler) HandlerName() string {
	return m.name
}

func newMockHandler(name string, toolNames ...string) *mockToolHandler {
	handler := &mockToolHandler{
		name:     name,
		response: domain.NewTextResponse("ok"),
	}
	for _, toolName := range toolNames {
		handler.tools = append(handler.tools, domain.ToolDefinition{
			Name:        toolName,
			InputSchema: domain.JSONSchema{Type: "object"},
		})
	}
	return handler
}

// TestRouteByExactToolName verifies requests reach the handler that
// declared the tool.
func TestRouteByExactToolName(t *testing.T) {
	catalog := newMockHandler("catalog", "search", "fetch")
	website := newMockHandler("website", "createWebsite")
	router := NewRequestRouter(catalog, website)

	_, err := router.Route(context.Background(), &domain.ToolRequest{Name: "createWebsite"})
	if err != nil {
		t.Fatalf("Route() error = %v", err)
	}
	if !website.called {
		t.Error("website handler was not called")
	}
	if catalog.called {
		t.Error("catalog handler was called for createWebsite")
	}
}

// TestRouteUnknownTool verifies the typed -32601 error.
func TestRouteUnknownTool(t *testing.T) {
	router := NewRequestRouter(newMockHandler("catalog", "search"))

	_, err := router.Route(context.Background(), &domain.ToolRequest{Name: "doesNotExist"})
	if err == nil {
		t.Fatal("expected an error for an unknown tool")
	}

	var rpcErr *domain.Error
	if !errors.As(err, &rpcErr) {
		t.Fatalf("error is not a *domain.Error: %v", err)
	}
	if rpcErr.Code != domain.MethodNotFound {
		t.Errorf("error code = %d, want %d", rpcErr.Code, domain.MethodNotFound)
	}
}

// TestRoutePropagatesHandlerError verifies handler failures pass through
// unwrapped.
func TestRoutePropagatesHandlerError(t *testing.T) {
	handler := newMockHandler("catalog", "search")
	handler.err = errors.New("backend down")
	router := NewRequestRouter(handler)

	_, err := router.Route(context.Background(), &domain.ToolRequest{Name: "search"})
	if err == nil || err.Error() != "backend down" {
		t.Errorf("Route() error = %v, want backend down", err)
	}
}

// TestListAllToolsOrder verifies aggregation preserves registration
// order.
func TestListAllToolsOrder(t *testing.T) {
	router := NewRequestRouter(
		newMockHandler("catalog", "search", "fetch"),
		newMockHandler("website", "createWebsite"),
	)

	tools := router.ListAllTools()
	if len(tools) != 3 {
		t.Fatalf("ListAllTools() returned %d tools, want 3", len(tools))
	}

	want := []string{"search", "fetch", "createWebsite"}
	for i, tool := range tools {
		if tool.Name != want[i] {
			t.Errorf("tools[%d] = %s, want %s", i, tool.Name, want[i])
		}
	}
}
