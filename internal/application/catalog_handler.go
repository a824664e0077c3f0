package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"website-mcp-server/internal/domain"
)

// Tool name constants for catalog operations
const (
	ToolSearch = "search"
	ToolFetch  = "fetch"
)

// CatalogHandler implements ToolHandler for the template catalog.
// It serves the search and fetch tools over the injected TemplateStore.
type CatalogHandler struct {
	store domain.TemplateStore
}

// NewCatalogHandler creates a new CatalogHandler instance.
func NewCatalogHandler(store domain.TemplateStore) *CatalogHandler {
	return &CatalogHandler{store: store}
}

// HandlerName returns the identifier for this handler.
func (h *CatalogHandler) HandlerName() string {
	return "catalog"
}

// ListTools returns the catalog tools.
// fetch takes a template id (returned by search); an earlier variant of
// this interface keyed fetch by url instead, which is not supported.
func (h *CatalogHandler) ListTools() []domain.ToolDefinition {
	return []domain.ToolDefinition{
		{
			Name:        ToolSearch,
			Description: "Search website templates by name, description or theme",
			InputSchema: domain.JSONSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"query": map[string]interface{}{
						"type":        "string",
						"description": "Case-insensitive text to match against templates",
					},
				},
				Required: []string{"query"},
			},
		},
		{
			Name:        ToolFetch,
			Description: "Fetch a single website template by its id",
			InputSchema: domain.JSONSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"id": map[string]interface{}{
						"type":        "string",
						"description": "Template id as returned by search (e.g. tpl-blog)",
					},
				},
				Required: []string{"id"},
			},
		},
	}
}

// Handle processes a catalog tool call.
func (h *CatalogHandler) Handle(ctx context.Context, req *domain.ToolRequest) (*domain.ToolResponse, error) {
	switch req.Name {
	case ToolSearch:
		return h.search(ctx, req.Arguments)
	case ToolFetch:
		return h.fetch(ctx, req.Arguments)
	default:
		return nil, &domain.Error{
			Code:    domain.MethodNotFound,
			Message: fmt.Sprintf("Unknown tool: %s", req.Name),
		}
	}
}

// search runs a case-insensitive substring match over the catalog.
func (h *CatalogHandler) search(ctx context.Context, args map[string]interface{}) (*domain.ToolResponse, error) {
	query, err := getStringParam(args, "query", true)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return nil, &domain.Error{
			Code:    domain.InvalidParams,
			Message: "missing required parameter: query",
		}
	}

	records, err := h.store.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("template search failed: %w", err)
	}

	if len(records) == 0 {
		return domain.NewTextResponse(fmt.Sprintf("No templates matched %q.", query)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d template(s) matching %q:\n", len(records), query)
	for _, record := range records {
		fmt.Fprintf(&b, "- %s: %s (%s) %s\n", record.ID, record.Name, record.Theme, record.URL)
	}

	return domain.NewTextResponse(b.String()), nil
}

// fetch returns the full record for one template id.
func (h *CatalogHandler) fetch(ctx context.Context, args map[string]interface{}) (*domain.ToolResponse, error) {
	id, err := getStringParam(args, "id", true)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, &domain.Error{
			Code:    domain.InvalidParams,
			Message: "missing required parameter: id",
		}
	}

	record, err := h.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrTemplateNotFound) {
			return nil, &domain.Error{
				Code:    domain.InvalidParams,
				Message: fmt.Sprintf("template not found: %s", id),
			}
		}
		return nil, fmt.Errorf("template lookup failed: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", record.Name)
	fmt.Fprintf(&b, "ID: %s\n", record.ID)
	fmt.Fprintf(&b, "Theme: %s\n", record.Theme)
	fmt.Fprintf(&b, "URL: %s\n", record.URL)
	fmt.Fprintf(&b, "Description: %s\n", record.Description)
	for _, key := range sortedKeys(record.Metadata) {
		fmt.Fprintf(&b, "%s: %s\n", key, record.Metadata[key])
	}

	return domain.NewTextResponse(b.String()), nil
}

// sortedKeys returns map keys in a stable order.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
