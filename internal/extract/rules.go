package extract

import "regexp"

// The rule tables below drive the extractor's line classification. They
// are ordinary data, kept apart from the algorithm so individual phrases
// can be tested and tuned without touching control flow.

// lineupMarkerRe matches section headers that introduce the artist block:
// "LINEUP", "LINE UP", "LINE-UP", "LINE_UP".
var lineupMarkerRe = regexp.MustCompile(`(?i)\bline[ \-_]?up\b`)

// sectionHeaderWords also flag the start of an artist block when they
// appear anywhere in a line.
var sectionHeaderWords = []string{
	"artists",
	"featuring",
}

// sectionEndPhrases terminate the artist block. Posters follow the lineup
// with ticketing, sponsorship, and social-media text.
var sectionEndPhrases = []string{
	"ticket",
	"on sale",
	"presented by",
	"sponsored by",
	"brought to you",
	"www.",
	".com",
	".net",
	"@",
	"and more",
	"plus more",
	"many more",
	"info",
	"follow us",
}

// noisePhrases mark a line as promotional or structural text rather than
// artist names. Includes tokens OCR commonly produces from logos and
// decorative borders.
var noisePhrases = []string{
	"festival",
	"ticket",
	"presented by",
	"sponsored by",
	"stage",
	"www",
	".com",
	".net",
	"http",
	"@",
	"follow",
	"instagram",
	"facebook",
	"twitter",
	"tiktok",
	"snapchat",
	"vip",
	"camping",
	"parking",
	"gates open",
	"doors open",
	"all ages",
	"18+",
	"21+",
	"free entry",
	"sold out",
	"scan here",
	"|||",
	"///",
	"___",
}

// digitRunRe marks lines carrying long numeric runs (phone numbers,
// postcodes, prices) as noise.
var digitRunRe = regexp.MustCompile(`\d{3,}`)

// Date and location patterns. A line matching any of these is dropped as
// schedule or venue text.
var (
	monthDayRe    = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{1,2}\b`)
	dayMonthRe    = regexp.MustCompile(`(?i)\b\d{1,2}(st|nd|rd|th)?\s+(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\b`)
	numericDateRe = regexp.MustCompile(`\b\d{1,2}[\-./ ]\d{1,2}([\-./ ]\d{2,4})?\b`)
	bareYearRe    = regexp.MustCompile(`^\s*(19|20)\d{2}\s*$`)
	weekdayRe     = regexp.MustCompile(`(?i)\b(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
	venueRe       = regexp.MustCompile(`(?i)\b(stadium|arena|park|hall|venue|center|centre|dome|grounds|fairgrounds|speedway)\b`)
	timeRe        = regexp.MustCompile(`\b\d{1,2}:\d{2}\b`)
)

// locationWords are country, city, and day abbreviations checked as whole
// words within a line.
var locationWords = []string{
	"usa", "uk", "nyc", "la", "sf", "atx", "tx", "ca", "fl", "az",
	"london", "berlin", "amsterdam", "barcelona", "paris", "tokyo",
	"chicago", "miami", "austin", "brooklyn", "vegas", "indio",
	"mon", "tue", "tues", "wed", "thu", "thur", "thurs", "fri", "sat", "sun",
}

// suffixKeywords are performance annotations stripped from candidate
// names during cleaning.
var suffixKeywords = []string{
	"live",
	"dj set",
	"dj-set",
	"djset",
	"b2b",
	"a/v set",
	"av set",
	"hybrid set",
	"soundsystem",
}

// separatorRe splits a lineup line into individual names. Besides the
// usual punctuation, OCR reads narrow glyph separators (dots, bullets)
// as 1, l, or I, so those are split points too.
var separatorRe = regexp.MustCompile(`[,/&1lI|\\]`)

// featSplits are literal substrings that also split names.
var featSplits = []string{"feat.", "ft."}
