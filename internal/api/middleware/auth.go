package middleware

import (
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/session"
)

const (
	LoginPath = "/auth/login"
	HomePath  = "/"
)

// RequireLogin sends visitors without a signed-in session to the login page.
func RequireLogin(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromContext(r.Context())
		if !ok || !sess.IsAuthenticated() {
			if ok {
				sess.AddFlash(session.FlashError, "Please log in to continue")
			}
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	}
}

// RequireAdmin hides admin pages from everyone but admins. The store API
// enforces the role again on each admin call.
func RequireAdmin(next http.Handler) http.HandlerFunc {
	return RequireLogin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, _ := session.FromContext(r.Context())
		if !sess.IsAdmin() {
			LoggerFromContext(r.Context()).Warn("Non-admin tried to open an admin page")
			sess.AddFlash(session.FlashError, "Admin access required")
			http.Redirect(w, r, HomePath, http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	}))
}
