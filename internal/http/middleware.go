package http

import (
	"log"
	"net/http"

	"github.com/edrone/storefront/internal/auth"
)

// RequireAuth rejects requests while the session flag is not set. Store
// failures surface as 500 rather than silently logging the user out.
func RequireAuth(session *auth.Session) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			loggedIn, err := session.LoggedIn(r.Context())
			if err != nil {
				log.Printf("session check failed: %v", err)
				respondError(w, http.StatusInternalServerError, "internal_error", "could not verify session")
				return
			}
			if !loggedIn {
				respondError(w, http.StatusUnauthorized, "unauthenticated", "login required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
