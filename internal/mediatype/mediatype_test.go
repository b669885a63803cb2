package mediatype

import "testing"

func TestNormalizeAccepted(t *testing.T) {
	cases := map[string]string{
		"tv":        TV,
		"TV Show":   TV,
		"tv-show":   TV,
		"tv_show":   TV,
		"tvshow":    TV,
		"series":    TV,
		"Episode":   TV,
		"scripted":  TV,
		"film":      Movie,
		"Movie":     Movie,
		"movies":    Movie,
		"  movie  ": Movie,
	}
	for in, want := range cases {
		got, ok := Normalize(in)
		if !ok || got != want {
			t.Errorf("Normalize(%q) = (%q, %v), want (%q, true)", in, got, ok, want)
		}
	}
}

func TestNormalizeRejected(t *testing.T) {
	for _, in := range []string{"", "   ", "documentary", "podcast", "audiobook"} {
		if _, ok := Normalize(in); ok {
			t.Errorf("Normalize(%q) unexpectedly accepted", in)
		}
	}
}
