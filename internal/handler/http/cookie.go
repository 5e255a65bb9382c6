package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/MKhiriev/miniforum/models"
)

// sessionTokenFromRequest returns the raw session cookie value, or "" when
// the request carries none.
func (h *Handler) sessionTokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(h.cookie.name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// setSessionCookie hands token to the client. The cookie expires together
// with the session.
func (h *Handler) setSessionCookie(w http.ResponseWriter, token models.Token, expiresAt time.Time) {
	h.dropPendingSessionCookie(w)
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.name,
		Value:    token.String(),
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie instructs the client to drop the session cookie.
func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	h.dropPendingSessionCookie(w)
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// dropPendingSessionCookie removes a session cookie queued earlier in the
// same response, e.g. the anonymous one set by withSession before login.
func (h *Handler) dropPendingSessionCookie(w http.ResponseWriter) {
	header := w.Header()
	prefix := h.cookie.name + "="

	var kept []string
	for _, value := range header.Values("Set-Cookie") {
		if !strings.HasPrefix(value, prefix) {
			kept = append(kept, value)
		}
	}

	header.Del("Set-Cookie")
	for _, value := range kept {
		header.Add("Set-Cookie", value)
	}
}
