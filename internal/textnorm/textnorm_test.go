package textnorm

import "testing"

func TestReplaceRomanNumeralsCanonical(t *testing.T) {
	cases := map[string]string{
		"Rocky III":        "Rocky 3",
		"Star Wars IV":     "Star Wars 4",
		"Fake Street IC":   "Fake Street IC", // non-canonical, left as-is
		"I am here":        "I am here",      // isolated I preserved
		"Final Fantasy XIV": "Final Fantasy 14",
	}
	for in, want := range cases {
		if got := ReplaceRomanNumerals(in); got != want {
			t.Errorf("ReplaceRomanNumerals(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestReplaceRomanNumeralsOutOfRange(t *testing.T) {
	// MMMM (4000) has no canonical encoding in 1..3999 and should be left alone.
	in := "Chapter MMMM"
	if got := ReplaceRomanNumerals(in); got != in {
		t.Errorf("expected out-of-range token untouched, got %q", got)
	}
}

func TestCreateSearchableReferenceBlankPreserving(t *testing.T) {
	if got := CreateSearchableReference(""); got != "" {
		t.Errorf("expected empty string preserved, got %q", got)
	}
	if got := CreateSearchableReference("   "); got != "   " {
		t.Errorf("expected whitespace-only string preserved, got %q", got)
	}
}

func TestCreateSearchableReferenceIdempotent(t *testing.T) {
	inputs := []string{
		"The Matrix: Reloaded!!",
		"Rocky III - Special Edition",
		"  multiple   spaces  here  ",
	}
	for _, in := range inputs {
		once := CreateSearchableReference(in)
		twice := CreateSearchableReference(once)
		if once != twice {
			t.Errorf("not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}

func TestCreateSearchableReferenceScrubsPunctuation(t *testing.T) {
	got := CreateSearchableReference("The Matrix: Reloaded!!")
	want := "The Matrix Reloaded"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
