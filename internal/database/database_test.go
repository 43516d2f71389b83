package database

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenAppliesPragmas(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "festline.db"))
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close() //nolint:errcheck
	ctx := context.Background()

	var fk int
	if err := db.QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&fk); err != nil {
		t.Fatalf("querying foreign_keys pragma: %v", err)
	}
	if fk != 1 {
		t.Errorf("foreign_keys pragma = %d, want 1", fk)
	}

	var mode string
	if err := db.QueryRowContext(ctx, `PRAGMA journal_mode`).Scan(&mode); err != nil {
		t.Fatalf("querying journal_mode pragma: %v", err)
	}
	if !strings.EqualFold(mode, "wal") {
		t.Errorf("journal_mode = %q, want wal", mode)
	}

	var timeout int
	if err := db.QueryRowContext(ctx, `PRAGMA busy_timeout`).Scan(&timeout); err != nil {
		t.Fatalf("querying busy_timeout pragma: %v", err)
	}
	if timeout != 5000 {
		t.Errorf("busy_timeout = %d, want 5000", timeout)
	}
}

func TestForeignKeyCascadeFires(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "festline.db"))
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close() //nolint:errcheck
	if err := Migrate(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}
	ctx := context.Background()

	mustExec := func(query string, args ...any) {
		t.Helper()
		if _, err := db.ExecContext(ctx, query, args...); err != nil {
			t.Fatalf("exec %s: %v", query, err)
		}
	}

	mustExec(`INSERT INTO playlists (id, title, created_at) VALUES ('p1', 'Lineup', '2026-08-29T00:00:00Z')`)
	mustExec(`INSERT INTO playlist_entries
		(id, playlist_id, artist_match_id, artist_name, artist_catalog_id,
		 track_title, track_catalog_id, position, created_at)
		VALUES ('e1', 'p1', 'm1', 'Bicep', '77', 'Glue', 't1', 0, '2026-08-29T00:00:00Z')`)
	mustExec(`DELETE FROM playlists WHERE id = 'p1'`)

	var orphans int
	if err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM playlist_entries WHERE playlist_id = 'p1'`,
	).Scan(&orphans); err != nil {
		t.Fatalf("counting entries: %v", err)
	}
	if orphans != 0 {
		t.Errorf("expected entries to cascade with their playlist, found %d orphans", orphans)
	}
}
