// Package extract turns raw OCR text from a festival poster into a set
// of artist-name candidates.
//
// Poster OCR is noisy: names interleave with dates, venue text, and
// sponsor blocks, columns merge, and narrow separator glyphs come back
// as letters. The extractor therefore favors recall, emitting many
// candidates (splits plus word n-grams) and leaving precision to the
// downstream catalog matcher.
package extract

import (
	"log/slog"
	"sort"
	"strings"
)

// maxNGram bounds the word n-grams generated per line. Artist names
// longer than three words are rare enough that the catalog search on the
// full line split covers them.
const maxNGram = 3

// CandidateSet is a set of cleaned candidate names. Uniqueness is exact
// string equality after cleaning.
type CandidateSet map[string]struct{}

// Insert adds a candidate if it is non-empty.
func (cs CandidateSet) Insert(s string) {
	if s == "" {
		return
	}
	cs[s] = struct{}{}
}

// Contains reports whether the set holds s.
func (cs CandidateSet) Contains(s string) bool {
	_, ok := cs[s]
	return ok
}

// Values returns the candidates in sorted order.
func (cs CandidateSet) Values() []string {
	out := make([]string, 0, len(cs))
	for s := range cs {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Extractor derives artist-name candidates from raw OCR text.
type Extractor struct {
	logger *slog.Logger
}

// New creates an Extractor.
func New(logger *slog.Logger) *Extractor {
	return &Extractor{logger: logger.With(slog.String("component", "extractor"))}
}

// Extract parses raw OCR text into a candidate set. It tracks the artist
// section via lineup markers, drops noise and date/location lines, splits
// surviving lines on separator characters, and adds word n-grams. When no
// section markers were found at all, a fallback pass admits every
// non-noise line so the pipeline never comes up empty for marker-free
// posters.
func (e *Extractor) Extract(text string) CandidateSet {
	candidates := make(CandidateSet)
	lines := SplitLines(text)

	inSection := false
	for _, line := range lines {
		lower := strings.ToLower(line)

		if isSectionHeader(lower) {
			inSection = true
			continue
		}
		if inSection && containsAny(lower, sectionEndPhrases) {
			inSection = false
			continue
		}
		if isNoiseLine(lower) || isDateOrLocationLine(line, lower) {
			continue
		}
		if !inSection {
			continue
		}

		e.harvestLine(line, candidates)
	}

	if len(candidates) == 0 {
		e.logger.Debug("no candidates from section pass, running fallback",
			slog.Int("lines", len(lines)))
		for _, line := range lines {
			lower := strings.ToLower(line)
			if len(line) <= 2 || isNoiseLine(lower) || isDateOrLocationLine(line, lower) {
				continue
			}
			candidates.Insert(Clean(line))
		}
	}

	e.logger.Debug("extraction complete",
		slog.Int("lines", len(lines)),
		slog.Int("candidates", len(candidates)))

	return candidates
}

// harvestLine inserts the separator-split pieces of a line plus its word
// n-grams into the candidate set.
func (e *Extractor) harvestLine(line string, candidates CandidateSet) {
	for _, piece := range splitNames(line) {
		candidates.Insert(Clean(piece))
	}

	words := strings.Fields(line)
	max := maxNGram
	if len(words) < max {
		max = len(words)
	}
	for n := 1; n <= max; n++ {
		for i := 0; i+n <= len(words); i++ {
			candidates.Insert(Clean(strings.Join(words[i:i+n], " ")))
		}
	}
}

// splitNames breaks a line into name pieces on separator characters and
// the feat./ft. credit markers.
func splitNames(line string) []string {
	pieces := separatorRe.Split(line, -1)
	var out []string
	for _, piece := range pieces {
		parts := []string{piece}
		for _, marker := range featSplits {
			var next []string
			for _, p := range parts {
				next = append(next, strings.Split(p, marker)...)
			}
			parts = next
		}
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// isSectionHeader reports whether a lowercased line announces the artist
// block.
func isSectionHeader(lower string) bool {
	if lineupMarkerRe.MatchString(lower) {
		return true
	}
	return containsAny(lower, sectionHeaderWords)
}

// isNoiseLine reports whether a lowercased line is promotional or
// structural text.
func isNoiseLine(lower string) bool {
	if containsAny(lower, noisePhrases) {
		return true
	}
	return digitRunRe.MatchString(lower)
}

// isDateOrLocationLine reports whether a line is schedule or venue text.
func isDateOrLocationLine(line, lower string) bool {
	if monthDayRe.MatchString(line) ||
		dayMonthRe.MatchString(line) ||
		numericDateRe.MatchString(line) ||
		bareYearRe.MatchString(line) ||
		weekdayRe.MatchString(line) ||
		venueRe.MatchString(line) ||
		timeRe.MatchString(line) {
		return true
	}
	return containsAnyWord(lower, locationWords)
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

// containsAnyWord matches list entries as whole whitespace-delimited
// words, so "la" flags "Los Angeles LA" but not "Coldplay".
func containsAnyWord(s string, words []string) bool {
	for _, field := range strings.Fields(s) {
		field = strings.Trim(field, ".,!?")
		for _, w := range words {
			if field == w {
				return true
			}
		}
	}
	return false
}
