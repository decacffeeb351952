package middleware

import (
	"context"
	"net/http"
	"strings"

	h "weddingplanner/internal/delivery/http/helpers"
	"weddingplanner/internal/domain"
)

type contextKey string

const adminSubjectKey contextKey = "adminSubject"

// SetAdminSubject returns a context with the admin subject set. Used by the
// auth middleware and by tests.
func SetAdminSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, adminSubjectKey, subject)
}

// AdminSubjectFromContext returns the authenticated admin subject, if present.
func AdminSubjectFromContext(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(adminSubjectKey).(string)
	return s, ok
}

// RequireAdmin returns a wrapper that validates the Bearer token and sets the
// admin subject in the request context. If the token is missing, invalid, or
// lacks the admin role, it responds with 401 and does not call next.
func RequireAdmin(verifier domain.TokenVerifier) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing token")
				return
			}
			subject, err := verifier.Verify(token)
			if err != nil {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			r = r.WithContext(SetAdminSubject(r.Context(), subject))
			next(w, r)
		}
	}
}
