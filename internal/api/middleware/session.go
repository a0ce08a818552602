package middleware

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/session"
)

type SessionMiddleware struct {
	store      *session.Store
	codec      *session.Codec
	cookieName string
	secure     bool
}

func NewSessionMiddleware(store *session.Store, codec *session.Codec, cookieName string, secure bool) *SessionMiddleware {
	return &SessionMiddleware{store: store, codec: codec, cookieName: cookieName, secure: secure}
}

// Load attaches the visitor's session to the request context, starting a new
// one when the cookie is missing, forged, expired or points at a session this
// process no longer holds. The cookie is re-issued on every response so its
// lifetime slides with the session's.
func (m *SessionMiddleware) Load(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := LoggerFromContext(r.Context())

		sess := m.resolve(r, logger)

		value, err := m.codec.Encode(sess.ID)
		if err != nil {
			logger.Error("Failed to encode session cookie", slog.Any("error", err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     m.cookieName,
			Value:    value,
			Path:     "/",
			MaxAge:   int(m.codec.TTL().Seconds()),
			HttpOnly: true,
			Secure:   m.secure,
			SameSite: http.SameSiteLaxMode,
		})

		next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), sess)))
	})
}

func (m *SessionMiddleware) resolve(r *http.Request, logger *slog.Logger) *session.Session {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return m.store.Create()
	}

	id, err := m.codec.Decode(cookie.Value)
	if err != nil {
		logger.Warn("Rejected session cookie", slog.Any("error", err))
		return m.store.Create()
	}

	if sess, ok := m.store.Get(id); ok {
		return sess
	}

	logger.Debug("Session expired, starting a new one")
	return m.store.Create()
}
