package domain

import "context"

// Theme values accepted by the site generator. Anything else is rendered
// with the light palette.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// SiteSpec describes one website creation request. It is built from
// tools/call arguments or the REST body and consumed immediately; it is
// never persisted.
type SiteSpec struct {
	SiteName string `json:"site_name"`
	Theme    string `json:"theme"`
	Domain   string `json:"domain,omitempty"`
}

// DeployResult is the outcome of a deployment. The URL is derived
// deterministically from the site name.
type DeployResult struct {
	URL          string `json:"url"`
	DeploymentID string `json:"deploymentId,omitempty"`
}

// Generator produces a complete HTML document for a site. Implementations
// must be pure: no I/O, no failure modes.
type Generator interface {
	Generate(siteName, theme string) string
}

// Deployer publishes a generated site and returns where it lives.
// The bundled implementation is a stub that fabricates the URL after a
// fixed delay; a real hosting integration slots in behind this interface.
type Deployer interface {
	Deploy(ctx context.Context, spec SiteSpec) (*DeployResult, error)
}
