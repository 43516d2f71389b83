package itunes

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/pgulley/festline/internal/catalog"
)

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("loading fixture %s: %v", name, err)
	}
	return data
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/search":
			if r.URL.Query().Get("entity") == "song" {
				w.Write(loadFixture(t, "song_search.json"))
				return
			}
			w.Write(loadFixture(t, "search_bts.json"))

		case "/lookup":
			switch r.URL.Query().Get("id") {
			case "0":
				w.Write([]byte(`{"resultCount":0,"results":[]}`))
			case "40404":
				w.WriteHeader(http.StatusNotFound)
			default:
				w.Write(loadFixture(t, "lookup_bts.json"))
			}

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func newTestAdapter(t *testing.T, baseURL string) *Adapter {
	t.Helper()
	limiter := catalog.NewRateLimiterMap()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewWithBaseURL(limiter, logger, baseURL)
}

func TestSearchArtists(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()
	a := newTestAdapter(t, srv.URL)

	artists, err := a.SearchArtists(context.Background(), "bts", 5)
	if err != nil {
		t.Fatalf("SearchArtists: %v", err)
	}
	if len(artists) != 2 {
		t.Fatalf("expected 2 results, got %d", len(artists))
	}
	if artists[0].Name != "BTS" {
		t.Errorf("expected BTS, got %q", artists[0].Name)
	}
	if artists[0].ID != "883131348" {
		t.Errorf("expected id 883131348, got %q", artists[0].ID)
	}
	// iTunes serves no artwork on artist entities.
	if artists[0].ArtworkURL != "" {
		t.Errorf("expected empty artwork, got %q", artists[0].ArtworkURL)
	}
}

func TestLookupArtist(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()
	a := newTestAdapter(t, srv.URL)

	artist, err := a.LookupArtist(context.Background(), "883131348")
	if err != nil {
		t.Fatalf("LookupArtist: %v", err)
	}
	if artist.Name != "BTS" {
		t.Errorf("expected BTS, got %q", artist.Name)
	}
	if len(artist.TopTracks) != 3 {
		t.Fatalf("expected 3 tracks, got %d", len(artist.TopTracks))
	}
	if artist.TopTracks[0].Title != "Dynamite" {
		t.Errorf("expected Dynamite first, got %q", artist.TopTracks[0].Title)
	}
	if !strings.Contains(artist.TopTracks[0].ArtworkURL, "300x300") {
		t.Errorf("expected artwork resized to 300x300, got %q", artist.TopTracks[0].ArtworkURL)
	}
}

func TestLookupArtistNotFound(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()
	a := newTestAdapter(t, srv.URL)

	_, err := a.LookupArtist(context.Background(), "0")
	var notFound *catalog.ErrNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if notFound.ID != "0" {
		t.Errorf("not-found id = %q, want %q", notFound.ID, "0")
	}
}

func TestLookupArtistHTTPNotFound(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()
	a := newTestAdapter(t, srv.URL)

	_, err := a.LookupArtist(context.Background(), "40404")
	var notFound *catalog.ErrNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if notFound.ID != "40404" {
		t.Errorf("not-found id = %q, want %q", notFound.ID, "40404")
	}
}

func TestSearchTracks(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()
	a := newTestAdapter(t, srv.URL)

	tracks, err := a.SearchTracks(context.Background(), "dynamite", 5)
	if err != nil {
		t.Fatalf("SearchTracks: %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(tracks))
	}
	if tracks[1].ArtistName != "Taio Cruz" {
		t.Errorf("expected Taio Cruz, got %q", tracks[1].ArtistName)
	}
}

func TestResizeArtwork(t *testing.T) {
	got := resizeArtwork("https://example.com/a/100x100bb.jpg", 300)
	want := "https://example.com/a/300x300bb.jpg"
	if got != want {
		t.Errorf("resizeArtwork = %q, want %q", got, want)
	}
	if resizeArtwork("", 300) != "" {
		t.Error("expected empty input to stay empty")
	}
}
