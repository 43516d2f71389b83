package deezer

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
	"unicode"

	"github.com/pgulley/festline/internal/catalog"
)

const defaultBaseURL = "https://api.deezer.com"

// topTrackFetchLimit is how many top tracks a lookup requests. The
// resolver caps entries further downstream; fetching a few extra keeps
// the cap decision in one place.
const topTrackFetchLimit = 10

// Adapter implements catalog.Catalog for Deezer's public API.
// No authentication is required.
type Adapter struct {
	client  *http.Client
	limiter *catalog.RateLimiterMap
	logger  *slog.Logger
	baseURL string
}

// New creates a Deezer adapter with the default base URL.
func New(limiter *catalog.RateLimiterMap, logger *slog.Logger) *Adapter {
	return NewWithBaseURL(limiter, logger, defaultBaseURL)
}

// NewWithBaseURL creates a Deezer adapter with a custom base URL (for testing).
func NewWithBaseURL(limiter *catalog.RateLimiterMap, logger *slog.Logger, baseURL string) *Adapter {
	return &Adapter{
		client:  &http.Client{Timeout: 10 * time.Second},
		limiter: limiter,
		logger:  logger.With(slog.String("catalog", "deezer")),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Name returns the catalog identifier.
func (a *Adapter) Name() catalog.Name { return catalog.NameDeezer }

// SearchArtists searches Deezer for artists matching the given term.
func (a *Adapter) SearchArtists(ctx context.Context, term string, limit int) ([]catalog.Artist, error) {
	if term == "" {
		return nil, nil
	}

	params := url.Values{
		"q":     {term},
		"limit": {strconv.Itoa(limit)},
	}
	body, err := a.doRequest(ctx, a.baseURL+"/search/artist?"+params.Encode(), "")
	if err != nil {
		return nil, err
	}

	var resp artistSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing artist search response: %w", err)
	}

	artists := make([]catalog.Artist, 0, len(resp.Data))
	for _, r := range resp.Data {
		artists = append(artists, catalog.Artist{
			ID:         strconv.FormatInt(r.ID, 10),
			Name:       r.Name,
			ArtworkURL: artworkFor(r),
		})
	}

	a.logger.Debug("artist search completed",
		slog.String("term", term),
		slog.Int("results", len(artists)))

	return artists, nil
}

// LookupArtist fetches an artist by Deezer ID, including its top tracks.
// Returns ErrNotFound for non-numeric IDs and unknown IDs.
func (a *Adapter) LookupArtist(ctx context.Context, id string) (*catalog.Artist, error) {
	if !isDeezerID(id) {
		return nil, &catalog.ErrNotFound{Catalog: catalog.NameDeezer, ID: id}
	}

	body, err := a.doRequest(ctx, fmt.Sprintf("%s/artist/%s", a.baseURL, url.PathEscape(id)), id)
	if err != nil {
		return nil, err
	}

	var result artistResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parsing artist response: %w", err)
	}
	if result.Error != nil {
		// Deezer reports missing entities as a 200 with an error object.
		return nil, &catalog.ErrNotFound{Catalog: catalog.NameDeezer, ID: id}
	}

	artist := &catalog.Artist{
		ID:         strconv.FormatInt(result.ID, 10),
		Name:       result.Name,
		ArtworkURL: artworkFor(result),
	}

	tracks, err := a.topTracks(ctx, id, result.Name)
	if err != nil {
		return nil, err
	}
	artist.TopTracks = tracks

	return artist, nil
}

// SearchTracks searches Deezer for tracks matching the given term.
func (a *Adapter) SearchTracks(ctx context.Context, term string, limit int) ([]catalog.Track, error) {
	if term == "" {
		return nil, nil
	}

	params := url.Values{
		"q":     {term},
		"limit": {strconv.Itoa(limit)},
	}
	body, err := a.doRequest(ctx, a.baseURL+"/search/track?"+params.Encode(), "")
	if err != nil {
		return nil, err
	}

	var resp trackListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing track search response: %w", err)
	}

	return tracksFrom(resp.Data), nil
}

func (a *Adapter) topTracks(ctx context.Context, id, artistName string) ([]catalog.Track, error) {
	reqURL := fmt.Sprintf("%s/artist/%s/top?limit=%d", a.baseURL, url.PathEscape(id), topTrackFetchLimit)
	body, err := a.doRequest(ctx, reqURL, id)
	if err != nil {
		return nil, err
	}

	var resp trackListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing top tracks response: %w", err)
	}

	tracks := tracksFrom(resp.Data)
	for i := range tracks {
		if tracks[i].ArtistName == "" {
			tracks[i].ArtistName = artistName
		}
	}

	a.logger.Debug("top tracks fetched",
		slog.String("artist_id", id),
		slog.Int("tracks", len(tracks)))

	return tracks, nil
}

// doRequest executes a GET request and returns the response body.
// entityID is the catalog id the request is about, if any; a 404 carries
// it back in the not-found error.
func (a *Adapter) doRequest(ctx context.Context, reqURL, entityID string) ([]byte, error) {
	if err := a.limiter.Wait(ctx, catalog.NameDeezer); err != nil {
		return nil, &catalog.ErrUnavailable{
			Catalog: catalog.NameDeezer,
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
			Catalog: catalog.NameDeezer,
			Cause:   err,
		}
	}
	defer resp.Body.Close() //nolint:errcheck

	switch resp.StatusCode {
	case http.StatusOK:
		// continue
	case http.StatusNotFound:
		return nil, &catalog.ErrNotFound{Catalog: catalog.NameDeezer, ID: entityID}
	case http.StatusTooManyRequests:
		return nil, &catalog.ErrUnavailable{
			Catalog: catalog.NameDeezer,
			Cause:   fmt.Errorf("rate limited by server"),
		}
	default:
		return nil, &catalog.ErrUnavailable{
			Catalog: catalog.NameDeezer,
			Cause:   fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	return io.ReadAll(io.LimitReader(resp.Body, 1*1024*1024))
}

// isDeezerID reports whether id is a valid Deezer artist ID (all digits).
func isDeezerID(id string) bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// artworkFor picks the best available artist photo, skipping Deezer's
// generic placeholder (URLs with "/images/artist//").
func artworkFor(r artistResult) string {
	for _, u := range []string{r.PictureXL, r.PictureBig, r.PictureMedium} {
		if u != "" && !strings.Contains(u, "/images/artist//") {
			return u
		}
	}
	return ""
}

func tracksFrom(results []trackResult) []catalog.Track {
	tracks := make([]catalog.Track, 0, len(results))
	for _, r := range results {
		tracks = append(tracks, catalog.Track{
			ID:         strconv.FormatInt(r.ID, 10),
			Title:      r.Title,
			ArtistName: r.Artist.Name,
			PreviewURL: r.Preview,
			ArtworkURL: r.Album.CoverMedium,
		})
	}
	return tracks
}
