package httpapi

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Overland-East-Bay/fellow-passengers/internal/app/session"
	"github.com/Overland-East-Bay/fellow-passengers/internal/domain"
)

// CookieOptions configures the session cookie.
type CookieOptions struct {
	Name   string
	Secure bool
}

// NewSessionMiddleware loads the caller's session from the session cookie,
// starting a new one (and setting the cookie) when the cookie is missing or
// the session has expired. The session is stored in request context.
func NewSessionMiddleware(mgr *session.Manager, cookie CookieOptions, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var s *session.Session
			if c, err := r.Cookie(cookie.Name); err == nil && c.Value != "" {
				s, _ = mgr.Get(domain.SessionID(c.Value))
			}
			if s == nil {
				s = mgr.Create()
				logger.Debug().Str("session", string(s.ID())).Msg("session started")
				http.SetCookie(w, &http.Cookie{
					Name:     cookie.Name,
					Value:    string(s.ID()),
					Path:     "/",
					HttpOnly: true,
					Secure:   cookie.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
		})
	}
}
