// Package pipeline wires extraction, resolution, and track lookup into a
// single scan-to-playlist flow.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pgulley/festline/internal/extract"
	"github.com/pgulley/festline/internal/playlist"
	"github.com/pgulley/festline/internal/resolve"
	"github.com/pgulley/festline/internal/scan"
)

// Pipeline runs raw OCR text through candidate extraction, artist
// resolution, and top-track lookup.
type Pipeline struct {
	extractor *extract.Extractor
	resolver  *resolve.Resolver
	topTracks *resolve.TopTrackResolver
	scans     *scan.Service
	playlists *playlist.Service
	logger    *slog.Logger
}

// New creates a Pipeline.
func New(
	extractor *extract.Extractor,
	resolver *resolve.Resolver,
	topTracks *resolve.TopTrackResolver,
	scans *scan.Service,
	playlists *playlist.Service,
	logger *slog.Logger,
) *Pipeline {
	return &Pipeline{
		extractor: extractor,
		resolver:  resolver,
		topTracks: topTracks,
		scans:     scans,
		playlists: playlists,
		logger:    logger.With(slog.String("component", "pipeline")),
	}
}

// Result is the in-memory outcome of one pipeline run. Entries are not
// persisted until SavePlaylist, so a failed save can be retried without
// re-running the pipeline.
type Result struct {
	Scan       *scan.Scan            `json:"scan"`
	Candidates []string              `json:"candidates"`
	Matches    []resolve.ArtistMatch `json:"matches"`
	Entries    []playlist.Entry      `json:"entries"`
}

// Empty reports whether the run recognized nothing playable. Callers
// surface this as a "no festival recognized, try rescanning" state.
func (r *Result) Empty() bool {
	return len(r.Entries) == 0
}

// Run executes the full pipeline on raw OCR text. The scan record and
// its artist matches are persisted; playlist entries are assembled in
// memory only. Per-candidate and per-artist catalog failures are
// absorbed inside the resolvers; Run fails only on persistence errors or
// cancellation. Cancellation mid-flight therefore never leaves a partial
// playlist behind.
func (p *Pipeline) Run(ctx context.Context, text string) (*Result, error) {
	sc := &scan.Scan{Text: text}
	if err := p.scans.Create(ctx, sc); err != nil {
		return nil, fmt.Errorf("persisting scan: %w", err)
	}

	candidates := p.extractor.Extract(text)

	matches, err := p.resolver.Resolve(ctx, sc.ID, candidates)
	if err != nil {
		return nil, fmt.Errorf("resolving artists: %w", err)
	}

	entries, err := p.topTracks.Resolve(ctx, matches)
	if err != nil {
		return nil, fmt.Errorf("resolving top tracks: %w", err)
	}

	if err := p.scans.SaveMatches(ctx, matches); err != nil {
		return nil, fmt.Errorf("persisting matches: %w", err)
	}

	p.logger.Info("pipeline run complete",
		slog.String("scan_id", sc.ID),
		slog.Int("candidates", len(candidates)),
		slog.Int("matches", len(matches)),
		slog.Int("entries", len(entries)))

	return &Result{
		Scan:       sc,
		Candidates: candidates.Values(),
		Matches:    matches,
		Entries:    entries,
	}, nil
}

// SavePlaylist persists the run's entries as a playlist aggregate.
func (p *Pipeline) SavePlaylist(ctx context.Context, title string, meta playlist.Metadata, result *Result) (*playlist.Playlist, error) {
	return p.playlists.Save(ctx, title, meta, result.Entries)
}
