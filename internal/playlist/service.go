package playlist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const entryColumns = `id, playlist_id, artist_match_id, artist_name, artist_catalog_id,
	track_title, track_catalog_id, preview_url, artwork_url, position, created_at`

// ErrNotFound is returned when a playlist id matches nothing.
var ErrNotFound = errors.New("playlist not found")

// Service provides playlist data operations.
type Service struct {
	db *sql.DB
}

// NewService creates a playlist service.
func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// Save persists a new playlist with the given entries. The playlist id is
// assigned here and written into every entry before insert; entry order
// is preserved via the position column. The insert is transactional, so a
// canceled or failed save leaves no partial entry set behind.
func (s *Service) Save(ctx context.Context, title string, meta Metadata, entries []Entry) (*Playlist, error) {
	if title == "" {
		return nil, fmt.Errorf("playlist title is required")
	}

	pl := &Playlist{
		ID:           uuid.New().String(),
		Title:        title,
		FestivalName: meta.FestivalName,
		Venue:        meta.Venue,
		DateRange:    meta.DateRange,
		CastSummary:  meta.CastSummary,
		CreatedAt:    time.Now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `
		INSERT INTO playlists (id, title, festival_name, venue, date_range, cast_summary, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, pl.ID, pl.Title, pl.FestivalName, pl.Venue, pl.DateRange, pl.CastSummary,
		pl.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("inserting playlist: %w", err)
	}

	for i := range entries {
		entries[i].PlaylistID = pl.ID
		entries[i].Position = i
		e := entries[i]
		_, err := tx.ExecContext(ctx, `
			INSERT INTO playlist_entries (`+entryColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, e.ID, e.PlaylistID, e.ArtistMatchID, e.ArtistName, e.ArtistCatalogID,
			e.TrackTitle, e.TrackCatalogID, e.PreviewURL, e.ArtworkURL, e.Position,
			e.CreatedAt.Format(time.RFC3339))
		if err != nil {
			return nil, fmt.Errorf("inserting playlist entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing playlist: %w", err)
	}

	pl.Entries = entries
	return pl, nil
}

// GetByID retrieves a playlist with its entries in position order.
func (s *Service) GetByID(ctx context.Context, id string) (*Playlist, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, festival_name, venue, date_range, cast_summary, created_at
		FROM playlists WHERE id = ?
	`, id)

	var pl Playlist
	var createdAt string
	err := row.Scan(&pl.ID, &pl.Title, &pl.FestivalName, &pl.Venue, &pl.DateRange,
		&pl.CastSummary, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting playlist by id: %w", err)
	}
	pl.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

	entries, err := s.entriesFor(ctx, id)
	if err != nil {
		return nil, err
	}
	pl.Entries = entries
	return &pl, nil
}

// List returns all playlists, newest first, without entries.
func (s *Service) List(ctx context.Context) ([]Playlist, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, festival_name, venue, date_range, cast_summary, created_at
		FROM playlists ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("listing playlists: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var playlists []Playlist
	for rows.Next() {
		var pl Playlist
		var createdAt string
		if err := rows.Scan(&pl.ID, &pl.Title, &pl.FestivalName, &pl.Venue,
			&pl.DateRange, &pl.CastSummary, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning playlist: %w", err)
		}
		pl.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		playlists = append(playlists, pl)
	}
	return playlists, rows.Err()
}

// Delete removes a playlist; its entries cascade.
func (s *Service) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM playlists WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting playlist: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func (s *Service) entriesFor(ctx context.Context, playlistID string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+entryColumns+` FROM playlist_entries
		WHERE playlist_id = ? ORDER BY position
	`, playlistID)
	if err != nil {
		return nil, fmt.Errorf("listing playlist entries: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt string
		if err := rows.Scan(&e.ID, &e.PlaylistID, &e.ArtistMatchID, &e.ArtistName,
			&e.ArtistCatalogID, &e.TrackTitle, &e.TrackCatalogID, &e.PreviewURL,
			&e.ArtworkURL, &e.Position, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning playlist entry: %w", err)
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
