package infrastructure

import (
	"context"
	"strings"

	"website-mcp-server/internal/domain"
)

// seedTemplates returns the fixed catalog. The same three records seed
// both the in-memory store and a fresh SQLite database.
func seedTemplates() []domain.TemplateRecord {
	return []domain.TemplateRecord{
		{
			ID:          "tpl-portfolio",
			Name:        "Portfolio",
			Description: "Single-page portfolio with a project grid and contact section",
			Theme:       domain.ThemeLight,
			URL:         "https://portfolio-template.vercel.app",
			Metadata:    map[string]string{"category": "personal", "pages": "1"},
		},
		{
			ID:          "tpl-landing",
			Name:        "Landing Page",
			Description: "Product landing page with hero, features and pricing sections",
			Theme:       domain.ThemeDark,
			URL:         "https://landing-template.vercel.app",
			Metadata:    map[string]string{"category": "business", "pages": "1"},
		},
		{
			ID:          "tpl-blog",
			Name:        "Blog",
			Description: "Minimal blog layout with an article list and tag pages",
			Theme:       domain.ThemeLight,
			URL:         "https://blog-template.vercel.app",
			Metadata:    map[string]string{"category": "writing", "pages": "3"},
		},
	}
}

// MemoryStore is the default TemplateStore: the seed catalog held in a
// slice. It is safe for concurrent reads because it is never mutated
// after construction.
type MemoryStore struct {
	records []domain.TemplateRecord
}

// NewMemoryStore creates a store holding the seed catalog.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: seedTemplates()}
}

// All returns every record in the catalog.
func (s *MemoryStore) All(ctx context.Context) ([]domain.TemplateRecord, error) {
	out := make([]domain.TemplateRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

// Get returns the record with the given id.
func (s *MemoryStore) Get(ctx context.Context, id string) (*domain.TemplateRecord, error) {
	for _, record := range s.records {
		if record.ID == id {
			found := record
			return &found, nil
		}
	}
	return nil, domain.ErrTemplateNotFound
}

// Search returns records matching the query case-insensitively against
// name, description and theme.
func (s *MemoryStore) Search(ctx context.Context, query string) ([]domain.TemplateRecord, error) {
	needle := strings.ToLower(query)

	var matches []domain.TemplateRecord
	for _, record := range s.records {
		if templateMatches(record, needle) {
			matches = append(matches, record)
		}
	}
	return matches, nil
}

// templateMatches reports whether a record contains the lowercased needle
// in its name, description or theme.
func templateMatches(record domain.TemplateRecord, needle string) bool {
	return strings.Contains(strings.ToLower(record.Name), needle) ||
		strings.Contains(strings.ToLower(record.Description), needle) ||
		strings.Contains(strings.ToLower(record.Theme), needle)
}
