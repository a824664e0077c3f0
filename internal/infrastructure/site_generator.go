package infrastructure

import (
	"fmt"
	"html"

	"website-mcp-server/internal/domain"
)

// sitePalette holds the two-tone stylesheet values keyed by theme.
type sitePalette struct {
	background string
	text       string
	accent     string
}

var (
	lightPalette = sitePalette{background: "#ffffff", text: "#1a1a1a", accent: "#2563eb"}
	darkPalette  = sitePalette{background: "#1a1a2e", text: "#eaeaea", accent: "#60a5fa"}
)

// SiteGenerator produces self-contained HTML documents for new sites.
// It is a pure string transformation: no filesystem or network access.
type SiteGenerator struct{}

// NewSiteGenerator creates a new SiteGenerator instance.
func NewSiteGenerator() *SiteGenerator {
	return &SiteGenerator{}
}

// Generate returns a complete HTML document embedding the site name.
// Theme "dark" selects the dark palette; any other value falls through to
// light, matching the original behavior for out-of-enum themes.
func (g *SiteGenerator) Generate(siteName, theme string) string {
	palette := lightPalette
	if theme == domain.ThemeDark {
		palette = darkPalette
	}

	name := html.EscapeString(siteName)

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<style>
body { background-color: %s; color: %s; font-family: -apple-system, sans-serif; margin: 0; }
main { max-width: 720px; margin: 0 auto; padding: 4rem 1.5rem; }
h1 { font-size: 2.5rem; }
a { color: %s; }
footer { margin-top: 4rem; font-size: 0.875rem; opacity: 0.7; }
</style>
</head>
<body>
<main>
<h1>%s</h1>
<p>Welcome to %s. This site was generated automatically.</p>
<footer>Powered by website-mcp-server</footer>
</main>
</body>
</html>
`, name, palette.background, palette.text, palette.accent, name, name)
}
