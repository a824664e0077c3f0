package infrastructure

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"website-mcp-server/internal/domain"
)

const templateSchema = `
CREATE TABLE IF NOT EXISTS templates (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL,
	theme       TEXT NOT NULL,
	url         TEXT NOT NULL,
	metadata    TEXT NOT NULL DEFAULT '{}'
);
`

// SQLiteStore is a TemplateStore backed by a SQLite database. A fresh
// database is created and seeded with the default catalog; an existing
// one is served as-is, which is how operators customize the catalog.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open template database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.init(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// init creates the schema and seeds the catalog if the table is empty.
func (s *SQLiteStore) init() error {
	if _, err := s.db.Exec(templateSchema); err != nil {
		return fmt.Errorf("failed to create template schema: %w", err)
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM templates").Scan(&count); err != nil {
		return fmt.Errorf("failed to count templates: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, record := range seedTemplates() {
		metadata, err := json.Marshal(record.Metadata)
		if err != nil {
			return fmt.Errorf("failed to encode template metadata: %w", err)
		}

		_, err = s.db.Exec(
			"INSERT INTO templates (id, name, description, theme, url, metadata) VALUES (?, ?, ?, ?, ?, ?)",
			record.ID, record.Name, record.Description, record.Theme, record.URL, string(metadata),
		)
		if err != nil {
			return fmt.Errorf("failed to seed template %s: %w", record.ID, err)
		}
	}

	return nil
}

// All returns every record in the catalog.
func (s *SQLiteStore) All(ctx context.Context) ([]domain.TemplateRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, description, theme, url, metadata FROM templates ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query templates: %w", err)
	}
	defer rows.Close()

	return scanTemplates(rows)
}

// Get returns the record with the given id, or domain.ErrTemplateNotFound.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*domain.TemplateRecord, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, description, theme, url, metadata FROM templates WHERE id = ?", id)

	record, err := scanTemplate(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to load template %s: %w", id, err)
	}

	return record, nil
}

// Search returns records matching the query case-insensitively against
// name, description and theme.
func (s *SQLiteStore) Search(ctx context.Context, query string) ([]domain.TemplateRecord, error) {
	needle := strings.ToLower(query)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, theme, url, metadata FROM templates
		WHERE instr(lower(name), ?) > 0
		   OR instr(lower(description), ?) > 0
		   OR instr(lower(theme), ?) > 0
		ORDER BY id`,
		needle, needle, needle)
	if err != nil {
		return nil, fmt.Errorf("failed to search templates: %w", err)
	}
	defer rows.Close()

	return scanTemplates(rows)
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanTemplate reads one record from a row.
func scanTemplate(row rowScanner) (*domain.TemplateRecord, error) {
	var record domain.TemplateRecord
	var metadata string

	if err := row.Scan(&record.ID, &record.Name, &record.Description,
		&record.Theme, &record.URL, &metadata); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(metadata), &record.Metadata); err != nil {
		return nil, fmt.Errorf("invalid metadata for template %s: %w", record.ID, err)
	}

	return &record, nil
}

// scanTemplates reads all records from a result set.
func scanTemplates(rows *sql.Rows) ([]domain.TemplateRecord, error) {
	var records []domain.TemplateRecord

	for rows.Next() {
		record, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate templates: %w", err)
	}

	return records, nil
}
