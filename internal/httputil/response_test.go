package httputil

import (
	"net/http"
	"testing"
)

func TestStatusForMapsEachKind(t *testing.T) {
	cases := []struct {
		kind ErrorKind
		want int
	}{
		{KindInput, http.StatusBadRequest},
		{KindNotIdentified, http.StatusNoContent},
		{KindPipelineFatal, http.StatusInternalServerError},
		{KindPersistence, http.StatusInternalServerError},
		{KindInternal, http.StatusInternalServerError},
		{ErrorKind("unknown"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := StatusFor(tc.kind); got != tc.want {
			t.Errorf("StatusFor(%q) = %d, want %d", tc.kind, got, tc.want)
		}
	}
}
