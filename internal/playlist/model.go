package playlist

import "time"

// Playlist is the aggregate root owning an ordered list of entries.
type Playlist struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	FestivalName string    `json:"festival_name,omitempty"`
	Venue        string    `json:"venue,omitempty"`
	DateRange    string    `json:"date_range,omitempty"`
	CastSummary  string    `json:"cast_summary,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	Entries      []Entry   `json:"entries,omitempty"`
}

// Entry is one resolved track. PlaylistID is assigned at save time; until
// then it is empty. ArtistMatchID links back to the match that produced
// the entry, for lookup only.
type Entry struct {
	ID              string    `json:"id"`
	PlaylistID      string    `json:"playlist_id,omitempty"`
	ArtistMatchID   string    `json:"artist_match_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistCatalogID string    `json:"artist_catalog_id"`
	TrackTitle      string    `json:"track_title"`
	TrackCatalogID  string    `json:"track_catalog_id"`
	PreviewURL      string    `json:"preview_url,omitempty"`
	ArtworkURL      string    `json:"artwork_url,omitempty"`
	Position        int       `json:"position"`
	CreatedAt       time.Time `json:"created_at"`
}

// Metadata is the optional descriptive context saved with a playlist.
type Metadata struct {
	FestivalName string `json:"festival_name,omitempty"`
	Venue        string `json:"venue,omitempty"`
	DateRange    string `json:"date_range,omitempty"`
	CastSummary  string `json:"cast_summary,omitempty"`
}
