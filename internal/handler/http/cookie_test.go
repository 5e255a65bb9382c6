package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/miniforum/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetSessionCookie_Attributes(t *testing.T) {
	h := &Handler{cookie: cookieSettings{name: testCookieName, secure: true}}
	rr := httptest.NewRecorder()
	expiresAt := time.Now().Add(time.Hour)

	h.setSessionCookie(rr, models.Token{SignedString: "signed"}, expiresAt)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, "signed", c.Value)
	assert.True(t, c.Secure)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.InDelta(t, time.Hour.Seconds(), float64(c.MaxAge), 5)
}

func TestSetSessionCookie_ReplacesPendingCookie(t *testing.T) {
	h := &Handler{cookie: cookieSettings{name: testCookieName}}
	rr := httptest.NewRecorder()
	http.SetCookie(rr, &http.Cookie{Name: "other", Value: "kept"})

	h.setSessionCookie(rr, models.Token{SignedString: "first"}, time.Now().Add(time.Hour))
	h.setSessionCookie(rr, models.Token{SignedString: "second"}, time.Now().Add(time.Hour))

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 2)
	assert.Equal(t, "other", cookies[0].Name)
	assert.Equal(t, "second", cookies[1].Value)
}

func TestClearSessionCookie(t *testing.T) {
	h := &Handler{cookie: cookieSettings{name: testCookieName}}
	rr := httptest.NewRecorder()

	h.setSessionCookie(rr, models.Token{SignedString: "signed"}, time.Now().Add(time.Hour))
	h.clearSessionCookie(rr)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestSessionTokenFromRequest(t *testing.T) {
	h := &Handler{cookie: cookieSettings{name: testCookieName}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, h.sessionTokenFromRequest(req))

	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "token"})
	assert.Equal(t, "token", h.sessionTokenFromRequest(req))
}
