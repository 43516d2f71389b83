package resolve

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pgulley/festline/internal/catalog"
	"github.com/pgulley/festline/internal/match"
	"github.com/pgulley/festline/internal/playlist"
)

// TopTrackResolver finds playable tracks for resolved artists.
type TopTrackResolver struct {
	catalog     catalog.Catalog
	logger      *slog.Logger
	trackCap    int
	searchLimit int
}

// TopTrackOptions tunes a TopTrackResolver. Zero values fall back to
// defaults.
type TopTrackOptions struct {
	// TrackCap is the maximum number of entries per artist.
	TrackCap int
	// SearchLimit is the number of tracks requested by the fallback search.
	SearchLimit int
}

// NewTopTrackResolver creates a TopTrackResolver.
func NewTopTrackResolver(cat catalog.Catalog, logger *slog.Logger, opts TopTrackOptions) *TopTrackResolver {
	if opts.TrackCap <= 0 {
		opts.TrackCap = 3
	}
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = 5
	}
	return &TopTrackResolver{
		catalog:     cat,
		logger:      logger.With(slog.String("component", "toptracks")),
		trackCap:    opts.TrackCap,
		searchLimit: opts.SearchLimit,
	}
}

// Resolve builds playlist entries for each artist in input order, capped
// per artist. An identity lookup supplies the artist's top tracks; when
// the catalog has no entity for the id or no curated tracks, a name
// search filtered by bidirectional name containment fills in. Smaller and
// regional acts frequently lack curated top tracks, so the fallback is
// the difference between an empty playlist and a playable one.
//
// Per-artist failures are logged and skip only that artist. The only
// returned error is context cancellation.
func (t *TopTrackResolver) Resolve(ctx context.Context, artists []ArtistMatch) ([]playlist.Entry, error) {
	var entries []playlist.Entry
	for _, artist := range artists {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tracks, err := t.tracksFor(ctx, artist)
		if err != nil {
			t.logger.Warn("track resolution failed for artist",
				slog.String("artist", artist.Name),
				slog.String("error", err.Error()))
			continue
		}
		if len(tracks) == 0 {
			t.logger.Debug("no playable tracks for artist",
				slog.String("artist", artist.Name))
			continue
		}
		for _, track := range tracks {
			entries = append(entries, entryFor(artist, track))
		}
	}
	return entries, nil
}

// tracksFor returns up to trackCap tracks for one artist.
func (t *TopTrackResolver) tracksFor(ctx context.Context, artist ArtistMatch) ([]catalog.Track, error) {
	entity, err := t.catalog.LookupArtist(ctx, artist.CatalogID)

	var notFound *catalog.ErrNotFound
	switch {
	case errors.As(err, &notFound):
		return t.searchFallback(ctx, artist)
	case err != nil:
		return nil, err
	case len(entity.TopTracks) == 0:
		return t.searchFallback(ctx, artist)
	}

	return capTracks(entity.TopTracks, t.trackCap), nil
}

// searchFallback runs a general track search by artist name and keeps
// hits whose track artist bidirectionally contains the resolved name.
func (t *TopTrackResolver) searchFallback(ctx context.Context, artist ArtistMatch) ([]catalog.Track, error) {
	found, err := t.catalog.SearchTracks(ctx, artist.Name, t.searchLimit)
	if err != nil {
		return nil, err
	}

	var kept []catalog.Track
	for _, track := range found {
		if match.ContainsEitherWay(track.ArtistName, artist.Name) {
			kept = append(kept, track)
		}
	}

	t.logger.Debug("fallback track search",
		slog.String("artist", artist.Name),
		slog.Int("hits", len(found)),
		slog.Int("kept", len(kept)))

	return capTracks(kept, t.trackCap), nil
}

func capTracks(tracks []catalog.Track, n int) []catalog.Track {
	if len(tracks) > n {
		return tracks[:n]
	}
	return tracks
}

// entryFor maps a catalog track to a playlist entry. The playlist id
// stays empty until save time.
func entryFor(artist ArtistMatch, track catalog.Track) playlist.Entry {
	return playlist.Entry{
		ID:              uuid.New().String(),
		ArtistMatchID:   artist.ID,
		ArtistName:      artist.Name,
		ArtistCatalogID: artist.CatalogID,
		TrackTitle:      track.Title,
		TrackCatalogID:  track.ID,
		PreviewURL:      track.PreviewURL,
		ArtworkURL:      track.ArtworkURL,
		CreatedAt:       time.Now().UTC(),
	}
}
