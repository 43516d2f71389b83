package resolve

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/pgulley/festline/internal/catalog"
	"github.com/pgulley/festline/internal/extract"
)

// fakeCatalog is an in-memory catalog.Catalog for tests.
type fakeCatalog struct {
	mu sync.Mutex

	// artistsByTerm maps lowercased search terms to results.
	artistsByTerm map[string][]catalog.Artist
	// artistsByID backs LookupArtist.
	artistsByID map[string]*catalog.Artist
	// tracksByTerm backs SearchTracks, keyed by lowercased term.
	tracksByTerm map[string][]catalog.Track

	searchErr error
	lookupErr error

	searchCalls int
}

func (f *fakeCatalog) Name() catalog.Name { return "fake" }

func (f *fakeCatalog) SearchArtists(ctx context.Context, term string, limit int) ([]catalog.Artist, error) {
	f.mu.Lock()
	f.searchCalls++
	f.mu.Unlock()
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	artists := f.artistsByTerm[strings.ToLower(term)]
	if len(artists) > limit {
		artists = artists[:limit]
	}
	return artists, nil
}

func (f *fakeCatalog) LookupArtist(ctx context.Context, id string) (*catalog.Artist, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	a, ok := f.artistsByID[id]
	if !ok {
		return nil, &catalog.ErrNotFound{Catalog: "fake", ID: id}
	}
	return a, nil
}

func (f *fakeCatalog) SearchTracks(ctx context.Context, term string, limit int) ([]catalog.Track, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	tracks := f.tracksByTerm[strings.ToLower(term)]
	if len(tracks) > limit {
		tracks = tracks[:limit]
	}
	return tracks, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func candidateSet(names ...string) extract.CandidateSet {
	cs := make(extract.CandidateSet)
	for _, n := range names {
		cs.Insert(n)
	}
	return cs
}

func TestResolveAcceptsExactMatch(t *testing.T) {
	cat := &fakeCatalog{
		artistsByTerm: map[string][]catalog.Artist{
			"coldplay": {{ID: "892", Name: "Coldplay", ArtworkURL: "https://img/892.jpg"}},
		},
	}
	r := NewResolver(cat, testLogger(), ResolverOptions{})

	matches, err := r.Resolve(context.Background(), "scan-1", candidateSet("coldplay"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	m := matches[0]
	if m.Name != "Coldplay" || m.CatalogID != "892" {
		t.Errorf("unexpected match: %+v", m)
	}
	if m.ScanID != "scan-1" {
		t.Errorf("expected scan id carried through, got %q", m.ScanID)
	}
	if m.ID == "" {
		t.Error("expected a fresh local id")
	}
	if m.ArtworkURL != "https://img/892.jpg" {
		t.Errorf("expected artwork URL, got %q", m.ArtworkURL)
	}
}

func TestResolveRejectsBelowThreshold(t *testing.T) {
	// "Coldply" vs "Coldplay" scores 35: below the 60-point threshold.
	cat := &fakeCatalog{
		artistsByTerm: map[string][]catalog.Artist{
			"coldply": {{ID: "892", Name: "Coldplay"}},
		},
	}
	r := NewResolver(cat, testLogger(), ResolverOptions{})

	matches, err := r.Resolve(context.Background(), "scan-1", candidateSet("Coldply"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected no matches, got %+v", matches)
	}
}

func TestResolveDeduplicatesByCatalogID(t *testing.T) {
	// Two OCR variants of the same artist collapse to one match.
	cat := &fakeCatalog{
		artistsByTerm: map[string][]catalog.Artist{
			"coldplay":  {{ID: "892", Name: "Coldplay"}},
			"cold play": {{ID: "892", Name: "Coldplay"}},
		},
	}
	r := NewResolver(cat, testLogger(), ResolverOptions{})

	matches, err := r.Resolve(context.Background(), "scan-1", candidateSet("coldplay", "Cold Play"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 deduplicated match, got %d", len(matches))
	}
}

func TestResolvePicksBestScoringEntity(t *testing.T) {
	cat := &fakeCatalog{
		artistsByTerm: map[string][]catalog.Artist{
			"bts": {
				{ID: "2", Name: "BTS World"},
				{ID: "1", Name: "BTS"},
			},
		},
	}
	r := NewResolver(cat, testLogger(), ResolverOptions{})

	matches, err := r.Resolve(context.Background(), "scan-1", candidateSet("BTS"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(matches) != 1 || matches[0].CatalogID != "1" {
		t.Fatalf("expected exact-name entity to win, got %+v", matches)
	}
}

func TestResolveSkipsFailedQueries(t *testing.T) {
	cat := &fakeCatalog{
		searchErr: &catalog.ErrUnavailable{Catalog: "fake", Cause: fmt.Errorf("boom")},
	}
	r := NewResolver(cat, testLogger(), ResolverOptions{})

	matches, err := r.Resolve(context.Background(), "scan-1", candidateSet("Coldplay", "BTS"))
	if err != nil {
		t.Fatalf("per-candidate failures must not abort the batch: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected no matches, got %+v", matches)
	}
}

func TestResolveSkipsUnsearchableCandidates(t *testing.T) {
	cat := &fakeCatalog{}
	r := NewResolver(cat, testLogger(), ResolverOptions{})

	_, err := r.Resolve(context.Background(), "scan-1", candidateSet("   ", "\t"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cat.searchCalls != 0 {
		t.Errorf("expected no catalog calls for empty keys, got %d", cat.searchCalls)
	}
}

func TestResolveCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cat := &fakeCatalog{
		artistsByTerm: map[string][]catalog.Artist{
			"coldplay": {{ID: "892", Name: "Coldplay"}},
		},
	}
	r := NewResolver(cat, testLogger(), ResolverOptions{})

	if _, err := r.Resolve(ctx, "scan-1", candidateSet("coldplay")); err == nil {
		t.Fatal("expected context cancellation error")
	}
}

func TestResolveManyCandidatesConcurrently(t *testing.T) {
	terms := make(map[string][]catalog.Artist)
	cs := make(extract.CandidateSet)
	for i := 0; i < 50; i++ {
		name := fmt.Sprintf("Artist %02d", i)
		terms[strings.ToLower(name)] = []catalog.Artist{{ID: fmt.Sprintf("id-%02d", i), Name: name}}
		cs.Insert(name)
	}
	cat := &fakeCatalog{artistsByTerm: terms}
	r := NewResolver(cat, testLogger(), ResolverOptions{Workers: 8})

	matches, err := r.Resolve(context.Background(), "scan-1", cs)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(matches) != 50 {
		t.Fatalf("expected 50 matches, got %d", len(matches))
	}
}
