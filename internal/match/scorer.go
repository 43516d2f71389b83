// Package match scores how well an OCR-derived candidate string fits a
// catalog entity name.
package match

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Scoring component weights. Layered because OCR-derived names fail in
// layered ways: exact, space-mangled, partially occluded, or
// character-corrupted.
const (
	ScoreExact     = 100.0
	ScoreSpaceless = 90.0
	ScoreSubstring = 70.0
	ScoreContained = 50.0
	ScoreDistance  = 40.0
)

// Defaults for the tunable knobs. Chosen against a corpus of real poster
// scans; tunable, not structural.
const (
	DefaultAcceptThreshold = 60.0
	DefaultDistanceCutoff  = 0.3
)

// Scorer computes match-confidence scores between candidate strings and
// catalog entity names.
type Scorer struct {
	// DistanceCutoff is the normalized edit distance at or above which
	// no distance component is awarded.
	DistanceCutoff float64
}

// NewScorer creates a Scorer with the default distance cutoff.
func NewScorer() *Scorer {
	return &Scorer{DistanceCutoff: DefaultDistanceCutoff}
}

// Score returns the accumulated confidence that candidate names the
// entity. One name-shape component (exact, spaceless, substring, or
// containment) applies, by precedence; the edit-distance component is
// always evaluated and added on top.
func (s *Scorer) Score(candidate, entityName string) float64 {
	var score float64

	candLower := strings.ToLower(candidate)
	nameLower := strings.ToLower(entityName)

	switch {
	case candLower == nameLower:
		score += ScoreExact
	case stripSpaces(candLower) == stripSpaces(nameLower):
		score += ScoreSpaceless
	case strings.Contains(nameLower, candLower):
		score += ScoreSubstring
	case strings.Contains(candLower, nameLower) && len(nameLower) >= len(candLower)/2:
		score += ScoreContained
	}

	// Case folded first so an exact case-insensitive match always collects
	// the full distance component and outranks every non-exact match.
	if dist := NormalizedDistance(candLower, nameLower); dist < s.DistanceCutoff {
		score += (1 - dist) * ScoreDistance
	}

	return score
}

// Distance returns the Levenshtein edit distance between a and b:
// insertions, deletions, and substitutions each cost 1.
func Distance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// NormalizedDistance returns the edit distance divided by the longer
// string's length. Two empty strings are at distance 0.
func NormalizedDistance(a, b string) float64 {
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 0
	}
	return float64(Distance(a, b)) / float64(maxLen)
}

func stripSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "")
}
