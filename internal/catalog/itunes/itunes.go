package itunes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pgulley/festline/internal/catalog"
)

const defaultBaseURL = "https://itunes.apple.com"

// artworkSize is the pixel size requested for track artwork. iTunes serves
// artwork through a sizable URL template; 300 keeps thumbnails crisp
// without pulling full covers.
const artworkSize = 300

// topTrackFetchLimit is how many songs an artist lookup requests (plus one
// for the artist record itself that leads the lookup response).
const topTrackFetchLimit = 10

// Adapter implements catalog.Catalog for the iTunes Search API.
// No authentication is required. Artist entities carry no artwork; the
// API only serves artwork on song results.
type Adapter struct {
	client  *http.Client
	limiter *catalog.RateLimiterMap
	logger  *slog.Logger
	baseURL string
}

// New creates an iTunes adapter with the default base URL.
func New(limiter *catalog.RateLimiterMap, logger *slog.Logger) *Adapter {
	return NewWithBaseURL(limiter, logger, defaultBaseURL)
}

// NewWithBaseURL creates an iTunes adapter with a custom base URL (for testing).
func NewWithBaseURL(limiter *catalog.RateLimiterMap, logger *slog.Logger, baseURL string) *Adapter {
	return &Adapter{
		client:  &http.Client{Timeout: 10 * time.Second},
		limiter: limiter,
		logger:  logger.With(slog.String("catalog", "itunes")),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Name returns the catalog identifier.
func (a *Adapter) Name() catalog.Name { return catalog.NameITunes }

// SearchArtists searches iTunes for artists matching the given term.
func (a *Adapter) SearchArtists(ctx context.Context, term string, limit int) ([]catalog.Artist, error) {
	if term == "" {
		return nil, nil
	}

	params := url.Values{
		"term":   {term},
		"media":  {"music"},
		"entity": {"musicArtist"},
		"limit":  {strconv.Itoa(limit)},
	}
	body, err := a.doRequest(ctx, a.baseURL+"/search?"+params.Encode(), "")
	if err != nil {
		return nil, err
	}

	var resp lookupResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing artist search response: %w", err)
	}

	artists := make([]catalog.Artist, 0, len(resp.Results))
	for _, r := range resp.Results {
		if r.WrapperType != "artist" {
			continue
		}
		artists = append(artists, catalog.Artist{
			ID:   strconv.FormatInt(r.ArtistID, 10),
			Name: r.ArtistName,
		})
	}

	a.logger.Debug("artist search completed",
		slog.String("term", term),
		slog.Int("results", len(artists)))

	return artists, nil
}

// LookupArtist fetches an artist by iTunes ID together with its songs.
// A lookup with entity=song returns the artist record first, followed by
// the artist's songs, which stand in for a curated top-tracks list.
func (a *Adapter) LookupArtist(ctx context.Context, id string) (*catalog.Artist, error) {
	params := url.Values{
		"id":     {id},
		"entity": {"song"},
		"limit":  {strconv.Itoa(topTrackFetchLimit + 1)},
	}
	body, err := a.doRequest(ctx, a.baseURL+"/lookup?"+params.Encode(), id)
	if err != nil {
		return nil, err
	}

	var resp lookupResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing lookup response: %w", err)
	}
	if resp.ResultCount == 0 {
		return nil, &catalog.ErrNotFound{Catalog: catalog.NameITunes, ID: id}
	}

	var artist *catalog.Artist
	var tracks []catalog.Track
	for _, r := range resp.Results {
		switch r.WrapperType {
		case "artist":
			artist = &catalog.Artist{
				ID:   strconv.FormatInt(r.ArtistID, 10),
				Name: r.ArtistName,
			}
		case "track":
			tracks = append(tracks, trackFrom(r))
		}
	}
	if artist == nil {
		return nil, &catalog.ErrNotFound{Catalog: catalog.NameITunes, ID: id}
	}
	artist.TopTracks = tracks

	return artist, nil
}

// SearchTracks searches iTunes for songs matching the given term.
func (a *Adapter) SearchTracks(ctx context.Context, term string, limit int) ([]catalog.Track, error) {
	if term == "" {
		return nil, nil
	}

	params := url.Values{
		"term":   {term},
		"media":  {"music"},
		"entity": {"song"},
		"limit":  {strconv.Itoa(limit)},
	}
	body, err := a.doRequest(ctx, a.baseURL+"/search?"+params.Encode(), "")
	if err != nil {
		return nil, err
	}

	var resp lookupResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing track search response: %w", err)
	}

	tracks := make([]catalog.Track, 0, len(resp.Results))
	for _, r := range resp.Results {
		if r.WrapperType != "track" {
			continue
		}
		tracks = append(tracks, trackFrom(r))
	}

	return tracks, nil
}

// doRequest executes a GET request and returns the response body.
// entityID is the catalog id the request is about, if any; a 404 carries
// it back in the not-found error.
func (a *Adapter) doRequest(ctx context.Context, reqURL, entityID string) ([]byte, error) {
	if err := a.limiter.Wait(ctx, catalog.NameITunes); err != nil {
		return nil, &catalog.ErrUnavailable{
			Catalog: catalog.NameITunes,
			Cause:   fmt.Errorf("rate limiter: %w", err),
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &catalog.ErrUnavailable{
			Catalog: catalog.NameITunes,
			Cause:   err,
		}
	}
	defer resp.Body.Close() //nolint:errcheck

	switch resp.StatusCode {
	case http.StatusOK:
		// continue
	case http.StatusNotFound:
		return nil, &catalog.ErrNotFound{Catalog: catalog.NameITunes, ID: entityID}
	case http.StatusForbidden, http.StatusTooManyRequests:
		return nil, &catalog.ErrUnavailable{
			Catalog: catalog.NameITunes,
			Cause:   fmt.Errorf("rate limited by server"),
		}
	default:
		return nil, &catalog.ErrUnavailable{
			Catalog: catalog.NameITunes,
			Cause:   fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	return io.ReadAll(io.LimitReader(resp.Body, 1*1024*1024))
}

func trackFrom(r lookupResult) catalog.Track {
	return catalog.Track{
		ID:         strconv.FormatInt(r.TrackID, 10),
		Title:      r.TrackName,
		ArtistName: r.ArtistName,
		PreviewURL: r.PreviewURL,
		ArtworkURL: resizeArtwork(r.ArtworkURL100, artworkSize),
	}
}

// resizeArtwork rewrites an iTunes artwork URL to the requested pixel size.
// iTunes artwork URLs embed the size as "100x100" before the extension.
func resizeArtwork(u string, px int) string {
	if u == "" {
		return ""
	}
	return strings.Replace(u, "100x100", fmt.Sprintf("%dx%d", px, px), 1)
}
