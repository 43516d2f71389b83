package extract

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	newlineRe    = regexp.MustCompile(`\r\n|\r|\n`)
	parenRe      = regexp.MustCompile(`\([^)]*\)`)
	multiSpaceRe = regexp.MustCompile(`\s+`)
)

// zeroWidthReplacer strips the zero-width characters OCR engines emit at
// glyph boundaries.
var zeroWidthReplacer = strings.NewReplacer(
	"​", "",
	"‌", "",
	"‍", "",
	"\uFEFF", "",
)

// SplitLines splits raw OCR text on any newline variant, trims each line,
// and drops empty lines.
func SplitLines(text string) []string {
	raw := newlineRe.Split(text, -1)
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// Clean projects a raw piece of lineup text onto a candidate name. It is
// idempotent: cleaning an already-clean string returns it unchanged.
//
// Cleaning removes zero-width characters, parenthesized asides,
// performance suffixes ("LIVE", "DJ SET", "B2B", ...), and any character
// outside letters, digits, whitespace, '&', '.', and '-', then collapses
// runs of whitespace.
func Clean(s string) string {
	s = zeroWidthReplacer.Replace(s)
	s = parenRe.ReplaceAllString(s, " ")
	s = strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsSpace(r):
			return r
		case r == '&' || r == '.' || r == '-':
			return r
		}
		return -1
	}, s)
	s = stripSuffixKeywords(s)
	s = multiSpaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// stripSuffixKeywords removes trailing performance annotations,
// case-insensitively, repeating until none remain ("NAME B2B LIVE").
func stripSuffixKeywords(s string) string {
	for {
		trimmed := strings.TrimSpace(s)
		lower := strings.ToLower(trimmed)
		stripped := false
		for _, kw := range suffixKeywords {
			if !strings.HasSuffix(lower, kw) {
				continue
			}
			cut := len(trimmed) - len(kw)
			// Only strip whole words, not name fragments like "Alive".
			if cut > 0 && !isWordBoundary(rune(trimmed[cut-1])) {
				continue
			}
			s = trimmed[:cut]
			stripped = true
			break
		}
		if !stripped {
			return strings.TrimSpace(s)
		}
	}
}

func isWordBoundary(r rune) bool {
	return unicode.IsSpace(r) || r == '-' || r == '(' || r == '['
}
