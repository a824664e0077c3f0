package domain

import (
	"context"
	"errors"
)

// ErrTemplateNotFound is returned by TemplateStore.Get for unknown ids.
var ErrTemplateNotFound = errors.New("template not found")

// TemplateRecord describes one website template in the catalog.
// Records are read-only; there is no create/update/delete lifecycle.
type TemplateRecord struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Theme       string            `json:"theme"`
	URL         string            `json:"url"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// TemplateStore is a read-only provider of template records.
// The dispatcher only ever sees this interface, so the in-memory seed data
// can be swapped for real storage without touching request handling.
type TemplateStore interface {
	// All returns every record in the catalog.
	All(ctx context.Context) ([]TemplateRecord, error)

	// Get returns the record with the given id, or ErrTemplateNotFound.
	Get(ctx context.Context, id string) (*TemplateRecord, error)

	// Search returns records whose name, description or theme contains
	// the query, compared case-insensitively.
	Search(ctx context.Context, query string) ([]TemplateRecord, error)
}
