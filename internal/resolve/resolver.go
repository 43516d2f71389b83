// Package resolve turns candidate names into catalog-confirmed artists
// and playable tracks.
package resolve

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pgulley/festline/internal/catalog"
	"github.com/pgulley/festline/internal/extract"
	"github.com/pgulley/festline/internal/match"
)

// ArtistMatch is a resolved, catalog-confirmed artist derived from one or
// more candidates. Immutable after creation.
type ArtistMatch struct {
	ID         string    `json:"id"`
	ScanID     string    `json:"scan_id"`
	Name       string    `json:"name"`
	CatalogID  string    `json:"catalog_id"`
	ArtworkURL string    `json:"artwork_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Resolver matches candidate strings against a music catalog.
type Resolver struct {
	catalog     catalog.Catalog
	scorer      *match.Scorer
	logger      *slog.Logger
	threshold   float64
	searchLimit int
	workers     int
}

// ResolverOptions tunes a Resolver. Zero values fall back to defaults.
type ResolverOptions struct {
	// AcceptThreshold is the minimum score for accepting a catalog entity.
	AcceptThreshold float64
	// DistanceCutoff is forwarded to the scorer.
	DistanceCutoff float64
	// SearchLimit is the number of entities requested per catalog search.
	SearchLimit int
	// Workers bounds concurrent catalog searches.
	Workers int
}

func (o ResolverOptions) withDefaults() ResolverOptions {
	if o.AcceptThreshold <= 0 {
		o.AcceptThreshold = match.DefaultAcceptThreshold
	}
	if o.DistanceCutoff <= 0 {
		o.DistanceCutoff = match.DefaultDistanceCutoff
	}
	if o.SearchLimit <= 0 {
		o.SearchLimit = 5
	}
	if o.Workers <= 0 {
		o.Workers = 4
	}
	return o
}

// NewResolver creates a Resolver querying the given catalog.
func NewResolver(cat catalog.Catalog, logger *slog.Logger, opts ResolverOptions) *Resolver {
	opts = opts.withDefaults()
	return &Resolver{
		catalog:     cat,
		scorer:      &match.Scorer{DistanceCutoff: opts.DistanceCutoff},
		logger:      logger.With(slog.String("component", "resolver")),
		threshold:   opts.AcceptThreshold,
		searchLimit: opts.SearchLimit,
		workers:     opts.Workers,
	}
}

// Resolve queries the catalog for every candidate and returns accepted
// matches deduplicated by catalog id. Candidates are processed by a
// bounded worker pool; each worker accumulates into its own slice and the
// results are merged and deduplicated after all workers finish, so no
// collection is mutated concurrently. Per-candidate failures are logged
// and skipped. The only returned error is context cancellation.
func (r *Resolver) Resolve(ctx context.Context, scanID string, candidates extract.CandidateSet) ([]ArtistMatch, error) {
	ordered := candidates.Values()

	workers := r.workers
	if workers > len(ordered) {
		workers = len(ordered)
	}
	if workers == 0 {
		return nil, nil
	}

	work := make(chan string)
	results := make([][]ArtistMatch, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			var acc []ArtistMatch
			for candidate := range work {
				if m, ok := r.resolveOne(ctx, scanID, candidate); ok {
					acc = append(acc, m)
				}
			}
			results[slot] = acc
		}(i)
	}

feed:
	for _, candidate := range ordered {
		select {
		case work <- candidate:
		case <-ctx.Done():
			break feed
		}
	}
	close(work)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var matches []ArtistMatch
	seen := make(map[string]struct{})
	for _, acc := range results {
		for _, m := range acc {
			if _, dup := seen[m.CatalogID]; dup {
				continue
			}
			seen[m.CatalogID] = struct{}{}
			matches = append(matches, m)
		}
	}

	r.logger.Info("resolution complete",
		slog.Int("candidates", len(ordered)),
		slog.Int("matches", len(matches)))

	return matches, nil
}

// resolveOne searches the catalog for a single candidate and selects the
// best-scoring entity, if any clears the acceptance threshold.
func (r *Resolver) resolveOne(ctx context.Context, scanID, candidate string) (ArtistMatch, bool) {
	if match.NormalizeKey(candidate) == "" {
		return ArtistMatch{}, false
	}

	artists, err := r.catalog.SearchArtists(ctx, candidate, r.searchLimit)
	if err != nil {
		r.logger.Warn("catalog search failed",
			slog.String("candidate", candidate),
			slog.String("error", err.Error()))
		return ArtistMatch{}, false
	}

	var best *catalog.Artist
	var bestScore float64
	for i := range artists {
		score := r.scorer.Score(candidate, artists[i].Name)
		if best == nil || score > bestScore {
			best = &artists[i]
			bestScore = score
		}
	}

	if best == nil || bestScore < r.threshold {
		r.logger.Debug("no acceptable match",
			slog.String("candidate", candidate),
			slog.Float64("best_score", bestScore))
		return ArtistMatch{}, false
	}

	r.logger.Debug("candidate matched",
		slog.String("candidate", candidate),
		slog.String("artist", best.Name),
		slog.Float64("score", bestScore))

	return ArtistMatch{
		ID:         uuid.New().String(),
		ScanID:     scanID,
		Name:       best.Name,
		CatalogID:  best.ID,
		ArtworkURL: best.ArtworkURL,
		CreatedAt:  time.Now().UTC(),
	}, true
}
