package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/miniforum/internal/logger"
	"github.com/MKhiriev/miniforum/internal/service"
	"github.com/MKhiriev/miniforum/internal/utils"
)

// withSession resolves the session cookie of every request.
//
// A valid cookie puts the session, its token and, for bound sessions, the
// freshly loaded user into the request context. A missing, forged, expired
// or unknown cookie starts a new anonymous session and replaces the cookie.
// Store faults abort the request with 503.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromRequest(r)

		if token := h.sessionTokenFromRequest(r); token != "" {
			session, user, err := h.services.SessionService.Resolve(ctx, token)
			switch {
			case err == nil:
				ctx = utils.WithSession(ctx, session)
				ctx = utils.WithSessionToken(ctx, token)
				if user != nil {
					ctx = utils.WithUser(ctx, *user)
				}
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			case !errors.Is(err, service.ErrUnauthenticated):
				writeError(w, r, err)
				return
			}
			log.Debug().Msg("session cookie rejected, starting a new session")
		}

		session, token, err := h.services.SessionService.Start(ctx)
		if err != nil {
			writeError(w, r, err)
			return
		}
		h.metrics.ObserveSessionStarted(false)
		h.setSessionCookie(w, token, session.ExpiresAt)

		ctx = utils.WithSession(ctx, session)
		ctx = utils.WithSessionToken(ctx, token.String())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAuthenticated rejects anonymous requests with 401 and a redirect to
// the front page. The wrapped handler is not called.
func (h *Handler) requireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := service.RequireAuthenticated(r.Context()); err != nil {
			writeError(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}
