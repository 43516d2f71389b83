package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold removes diacritics ("Beyoncé" -> "Beyonce"). OCR and catalogs
// disagree on accents often enough that comparisons run on folded text.
func Fold(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeKey builds the search key for a candidate: folded, lowercased,
// all spaces stripped. An empty key means the candidate is unsearchable.
func NormalizeKey(s string) string {
	s = Fold(s)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, " ", "")
}

// ContainsEitherWay reports whether a contains b or b contains a,
// compared case-insensitively on folded text. Used to keep fallback
// track-search hits tied to the resolved artist. Short names can admit
// false positives; that is an accepted recall tradeoff.
func ContainsEitherWay(a, b string) bool {
	af := strings.ToLower(Fold(a))
	bf := strings.ToLower(Fold(b))
	if af == "" || bf == "" {
		return false
	}
	return strings.Contains(af, bf) || strings.Contains(bf, af)
}
