package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/mediavault/identifier/internal/httputil"
)

type contextKey string

const contextSubject contextKey = "service_subject"

// Middleware validates the Authorization: Bearer <jwt> header against a
// single shared secret, adapted from CineVault's session-lookup
// Middleware: there is no per-user session table here, so RequireAuth
// verifies the signature and expiry in-process instead of querying a
// sessions table.
type Middleware struct {
	secret string
}

func NewMiddleware(secret string) *Middleware {
	return &Middleware{secret: secret}
}

func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			httputil.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
			return
		}

		claims, err := ValidateToken(m.secret, token)
		if err != nil {
			httputil.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired service token")
			return
		}

		ctx := context.WithValue(r.Context(), contextSubject, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SubjectFromContext returns the authenticated caller's token subject, if
// any.
func SubjectFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(contextSubject).(string)
	return v, ok
}

func extractToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}
