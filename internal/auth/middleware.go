// ABOUTME: HTTP middleware gating admin API endpoints behind a valid session
// ABOUTME: Reads the session cookie, validates it against the store, and attaches the session to context

package auth

import (
	"net/http"
)

// RequireSession creates an HTTP middleware that rejects requests lacking a
// valid session cookie with a 401 before the handler runs. Valid sessions are
// attached to the request context via WithSession.
func RequireSession(a *Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				unauthorized(w)
				return
			}

			session, err := a.Validate(r.Context(), cookie.Value)
			if err != nil {
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Unauthorized"}`))
}
