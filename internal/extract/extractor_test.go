package extract

import (
	"log/slog"
	"os"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestExtractLineupSection(t *testing.T) {
	e := New(testLogger())
	text := "LINEUP\nBTS, Coldplay\nTickets on sale now"

	got := e.Extract(text)

	for _, want := range []string{"BTS", "Coldplay"} {
		if !got.Contains(want) {
			t.Errorf("expected candidate %q, got %v", want, got.Values())
		}
	}
	for _, bad := range []string{"Tickets", "Tickets on sale now"} {
		if got.Contains(bad) {
			t.Errorf("ticketing text leaked into candidates: %q", bad)
		}
	}
}

func TestExtractMarkerVariants(t *testing.T) {
	e := New(testLogger())
	for _, marker := range []string{"LINE UP", "Line-Up", "line_up", "FEATURING", "Artists"} {
		got := e.Extract(marker + "\nRadiohead")
		if !got.Contains("Radiohead") {
			t.Errorf("marker %q: expected Radiohead, got %v", marker, got.Values())
		}
	}
}

func TestExtractNGrams(t *testing.T) {
	e := New(testLogger())
	got := e.Extract("LINEUP\nFlorence The Machine")

	// All 1..3-grams of the line are candidates.
	for _, want := range []string{
		"Florence",
		"The",
		"Machine",
		"Florence The",
		"The Machine",
		"Florence The Machine",
	} {
		if !got.Contains(want) {
			t.Errorf("expected n-gram %q, got %v", want, got.Values())
		}
	}
}

func TestExtractSeparators(t *testing.T) {
	e := New(testLogger())
	got := e.Extract("LINEUP\nBTS / Queen | SZA, ABBA")

	for _, want := range []string{"BTS", "Queen", "SZA", "ABBA"} {
		if !got.Contains(want) {
			t.Errorf("expected candidate %q, got %v", want, got.Values())
		}
	}
}

func TestExtractSkipsDateAndVenueLines(t *testing.T) {
	e := New(testLogger())
	text := "LINEUP\nJune 14\nFriday\nMadison Square Garden Arena\n7:30\nColdplay"

	got := e.Extract(text)

	if !got.Contains("Coldplay") {
		t.Fatalf("expected Coldplay, got %v", got.Values())
	}
	for _, bad := range []string{"June 14", "Friday", "Madison Square Garden Arena", "7.30"} {
		if got.Contains(bad) {
			t.Errorf("date/venue text leaked into candidates: %q", bad)
		}
	}
}

func TestExtractSectionTermination(t *testing.T) {
	e := New(testLogger())
	text := "LINEUP\nColdplay\nPresented by MegaCorp\nNot An Artist"

	got := e.Extract(text)

	if !got.Contains("Coldplay") {
		t.Fatalf("expected Coldplay, got %v", got.Values())
	}
	// "Not An Artist" follows the section terminator and is outside the block.
	if got.Contains("Not An Artist") {
		t.Error("post-section text leaked into candidates")
	}
}

func TestExtractFallbackWithoutMarkers(t *testing.T) {
	e := New(testLogger())
	got := e.Extract("Radiohead\nBjörk\nat The Dome 2026")

	if !got.Contains("Radiohead") {
		t.Errorf("expected fallback candidate Radiohead, got %v", got.Values())
	}
	if !got.Contains("Björk") {
		t.Errorf("expected fallback candidate Björk, got %v", got.Values())
	}
	// Venue line stays excluded even in fallback.
	for _, c := range got.Values() {
		if c == "at The Dome 2026" {
			t.Error("venue line leaked into fallback candidates")
		}
	}
}

func TestExtractNoiseOnlyTextYieldsNothing(t *testing.T) {
	e := New(testLogger())
	got := e.Extract("June 14 2026\nTickets at www.fest.com\nFollow us @fest")

	if len(got) != 0 {
		t.Errorf("expected no candidates from noise-only text, got %v", got.Values())
	}
}

func TestExtractEmptyInput(t *testing.T) {
	e := New(testLogger())
	if got := e.Extract(""); len(got) != 0 {
		t.Errorf("expected empty set, got %v", got.Values())
	}
	if got := e.Extract("\n\n  \n"); len(got) != 0 {
		t.Errorf("expected empty set, got %v", got.Values())
	}
}

func TestCandidateSetNeverHoldsEmptyStrings(t *testing.T) {
	cs := make(CandidateSet)
	cs.Insert("")
	cs.Insert("Coldplay")
	if len(cs) != 1 {
		t.Errorf("expected 1 entry, got %d", len(cs))
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"Coldplay",
		"COLDPLAY (LIVE)",
		"Peggy​Gou DJ SET",
		"Bicep LIVE!",
		"M.I.A.",
		"Years & Years",
		"  spaced   out  ",
	}
	for _, in := range inputs {
		once := Clean(in)
		twice := Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestClean(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"COLDPLAY (LIVE)", "COLDPLAY"},
		{"Peggy Gou DJ SET", "Peggy Gou"},
		{"Bicep LIVE", "Bicep"},
		{"Amelie Lens B2B", "Amelie Lens"},
		{"M.I.A.", "M.I.A."},
		{"Years & Years", "Years & Years"},
		{"Alive", "Alive"}, // suffix match must be a whole word
		{"Sigur Rós", "Sigur Rós"},
		{"A$AP Rocky", "AAP Rocky"}, // outside the kept character class
		{"", ""},
	}
	for _, c := range cases {
		if got := Clean(c.in); got != c.want {
			t.Errorf("Clean(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSplitNamesFeatMarkers(t *testing.T) {
	got := splitNames("DJ Snake ft. Ozuna")
	found := false
	for _, p := range got {
		if p == "Ozuna" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected Ozuna piece, got %v", got)
	}
}

func TestSplitLines(t *testing.T) {
	got := SplitLines("a\r\nb\rc\n\n d ")
	want := []string{"a", "b", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}
