package catalog

import (
	"context"
	"fmt"
)

// Name uniquely identifies a catalog backend.
type Name string

// Known catalog names.
const (
	NameDeezer Name = "deezer"
	NameITunes Name = "itunes"
)

// DisplayName returns a human-readable name for the catalog.
func (n Name) DisplayName() string {
	switch n {
	case NameDeezer:
		return "Deezer"
	case NameITunes:
		return "iTunes"
	default:
		return string(n)
	}
}

// Artist is a catalog artist entity. TopTracks is populated only by
// LookupArtist; search results leave it nil.
type Artist struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	ArtworkURL string  `json:"artwork_url,omitempty"`
	TopTracks  []Track `json:"top_tracks,omitempty"`
}

// Track is a catalog track entity.
type Track struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	ArtistName string `json:"artist_name"`
	PreviewURL string `json:"preview_url,omitempty"`
	ArtworkURL string `json:"artwork_url,omitempty"`
}

// Catalog is the interface all music catalog adapters implement.
type Catalog interface {
	// Name returns the unique catalog identifier.
	Name() Name

	// SearchArtists searches the catalog by free-text term, returning up
	// to limit artist entities.
	SearchArtists(ctx context.Context, term string, limit int) ([]Artist, error)

	// LookupArtist fetches an artist by its catalog id, including its
	// top-tracks collection. Returns ErrNotFound when the id is unknown.
	LookupArtist(ctx context.Context, id string) (*Artist, error)

	// SearchTracks searches the catalog for tracks by free-text term,
	// returning up to limit track entities.
	SearchTracks(ctx context.Context, term string, limit int) ([]Track, error)
}

// ErrUnavailable indicates a transient failure (rate-limited, timeout,
// server error, undecodable response).
type ErrUnavailable struct {
	Catalog Name
	Cause   error
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("catalog %s unavailable: %v", e.Catalog, e.Cause)
}

func (e *ErrUnavailable) Unwrap() error { return e.Cause }

// ErrNotFound indicates the catalog has no entity for the requested id.
type ErrNotFound struct {
	Catalog Name
	ID      string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("catalog %s: entity %s not found", e.Catalog, e.ID)
}
