// Package scan persists raw OCR text captures and the artist matches
// derived from them.
package scan

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pgulley/festline/internal/resolve"
)

// Scan is one raw OCR capture. The text is untrusted, possibly
// multi-column content; it is never mutated after creation.
type Scan struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Service provides scan data operations.
type Service struct {
	db *sql.DB
}

// NewService creates a scan service.
func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// Create inserts a new scan, assigning an id when none is set.
func (s *Service) Create(ctx context.Context, sc *Scan) error {
	if sc.Text == "" {
		return fmt.Errorf("scan text is required")
	}
	if sc.ID == "" {
		sc.ID = uuid.New().String()
	}
	sc.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scans (id, text, created_at) VALUES (?, ?, ?)
	`, sc.ID, sc.Text, sc.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("creating scan: %w", err)
	}
	return nil
}

// GetByID retrieves a scan by primary key.
func (s *Service) GetByID(ctx context.Context, id string) (*Scan, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, text, created_at FROM scans WHERE id = ?`, id)

	var sc Scan
	var createdAt string
	err := row.Scan(&sc.ID, &sc.Text, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("scan not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting scan by id: %w", err)
	}
	sc.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &sc, nil
}

// SaveMatches records the artist matches resolved from a scan.
func (s *Service) SaveMatches(ctx context.Context, matches []resolve.ArtistMatch) error {
	if len(matches) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, m := range matches {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO artist_matches (id, scan_id, name, catalog_id, artwork_url, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, m.ID, m.ScanID, m.Name, m.CatalogID, m.ArtworkURL, m.CreatedAt.Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("inserting artist match: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing matches: %w", err)
	}
	return nil
}

// MatchesForScan lists the matches recorded for a scan, oldest first.
func (s *Service) MatchesForScan(ctx context.Context, scanID string) ([]resolve.ArtistMatch, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, scan_id, name, catalog_id, artwork_url, created_at
		FROM artist_matches WHERE scan_id = ? ORDER BY created_at, id
	`, scanID)
	if err != nil {
		return nil, fmt.Errorf("listing matches: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var matches []resolve.ArtistMatch
	for rows.Next() {
		var m resolve.ArtistMatch
		var createdAt string
		if err := rows.Scan(&m.ID, &m.ScanID, &m.Name, &m.CatalogID, &m.ArtworkURL, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning match: %w", err)
		}
		m.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		matches = append(matches, m)
	}
	return matches, rows.Err()
}
