package application

import (
	"context"
	"fmt"

	"website-mcp-server/internal/domain"
)

// ToolCreateWebsite is the tool name for website creation.
const ToolCreateWebsite = "createWebsite"

// WebsiteHandler implements ToolHandler for createWebsite.
// The same generate-then-deploy pipeline backs the legacy REST endpoint,
// so both surfaces stay in lockstep.
type WebsiteHandler struct {
	generator domain.Generator
	deployer  domain.Deployer
	logger    *StructuredLogger
}

// NewWebsiteHandler creates a new WebsiteHandler instance.
func NewWebsiteHandler(generator domain.Generator, deployer domain.Deployer) *WebsiteHandler {
	return &WebsiteHandler{
		generator: generator,
		deployer:  deployer,
		logger:    NewStructuredLogger(),
	}
}

// HandlerName returns the identifier for this handler.
func (h *WebsiteHandler) HandlerName() string {
	return "website"
}

// ListTools returns the createWebsite tool definition.
func (h *WebsiteHandler) ListTools() []domain.ToolDefinition {
	return []domain.ToolDefinition{
		{
			Name:        ToolCreateWebsite,
			Description: "Generate a simple website and deploy it, returning the live URL",
			InputSchema: domain.JSONSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"site_name": map[string]interface{}{
						"type":        "string",
						"description": "Display name of the website; also determines the URL slug",
					},
					"theme": map[string]interface{}{
						"type":        "string",
						"description": "Color theme for the generated site",
						"enum":        []string{domain.ThemeLight, domain.ThemeDark},
					},
					"domain": map[string]interface{}{
						"type":        "string",
						"description": "Custom domain (reserved for a future hosting integration)",
					},
				},
				Required: []string{"site_name", "theme"},
			},
		},
	}
}

// Handle processes a createWebsite tool call.
func (h *WebsiteHandler) Handle(ctx context.Context, req *domain.ToolRequest) (*domain.ToolResponse, error) {
	if req.Name != ToolCreateWebsite {
		return nil, &domain.Error{
			Code:    domain.MethodNotFound,
			Message: fmt.Sprintf("Unknown tool: %s", req.Name),
		}
	}

	siteName, err := getStringParam(req.Arguments, "site_name", true)
	if err != nil {
		return nil, err
	}
	theme, err := getStringParam(req.Arguments, "theme", true)
	if err != nil {
		return nil, err
	}
	if siteName == "" || theme == "" {
		return nil, &domain.Error{
			Code:    domain.InvalidParams,
			Message: "site_name and theme are required",
		}
	}
	customDomain, err := getStringParam(req.Arguments, "domain", false)
	if err != nil {
		return nil, err
	}

	spec := domain.SiteSpec{SiteName: siteName, Theme: theme, Domain: customDomain}
	result, err := h.Create(ctx, spec)
	if err != nil {
		return nil, err
	}

	text := fmt.Sprintf("Website %q deployed successfully!\nURL: %s\nTheme: %s",
		spec.SiteName, result.URL, spec.Theme)
	return domain.NewTextResponse(text), nil
}

// Create runs the generate-then-deploy pipeline for one SiteSpec.
// The generated document is discarded after deployment because the stub
// deployer has nowhere to upload it; a real backend would take it along.
func (h *WebsiteHandler) Create(ctx context.Context, spec domain.SiteSpec) (*domain.DeployResult, error) {
	document := h.generator.Generate(spec.SiteName, spec.Theme)

	result, err := h.deployer.Deploy(ctx, spec)
	if err != nil {
		return nil, fmt.Errorf("deployment failed: %w", err)
	}

	h.logger.LogInfo("website deployed", map[string]interface{}{
		"site_name":     spec.SiteName,
		"theme":         spec.Theme,
		"url":           result.URL,
		"deployment_id": result.DeploymentID,
		"html_bytes":    len(document),
	})

	return result, nil
}
