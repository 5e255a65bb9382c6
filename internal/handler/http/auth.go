package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/miniforum/internal/app"
	"github.com/MKhiriev/miniforum/internal/logger"
	"github.com/MKhiriev/miniforum/internal/metrics"
	"github.com/MKhiriev/miniforum/internal/service"
	"github.com/MKhiriev/miniforum/internal/utils"
	"github.com/MKhiriev/miniforum/models"
)

const (
	forumPage = "/forum"
	frontPage = "/"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	user, err := h.services.AuthService.RegisterUser(ctx, req)
	h.metrics.ObserveAuth(metrics.ActionRegister, outcomeOf(err))
	if err != nil {
		writeError(w, r, err)
		return
	}

	if !h.bindSession(w, r, user) {
		return
	}

	log.Info().Int64("user_id", user.UserID).Msg("user registered and logged in")
	utils.WriteJSON(w, models.MessageResponse{
		Message:  fmt.Sprintf(app.MsgAccountCreatedFormat, user.Username),
		Redirect: forumPage,
	}, http.StatusOK)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	user, err := h.services.AuthService.Authenticate(ctx, req)
	h.metrics.ObserveAuth(metrics.ActionLogin, outcomeOf(err))
	if err != nil {
		writeError(w, r, err)
		return
	}

	if !h.bindSession(w, r, user) {
		return
	}

	log.Info().Int64("user_id", user.UserID).Msg("user logged in")
	utils.WriteJSON(w, models.MessageResponse{
		Message:  fmt.Sprintf(app.MsgWelcomeFormat, user.Username),
		Redirect: forumPage,
	}, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.services.SessionService.Logout(ctx, utils.GetSessionTokenFromContext(ctx)); err != nil {
		writeError(w, r, err)
		return
	}

	h.clearSessionCookie(w)
	utils.WriteJSON(w, models.MessageResponse{Redirect: frontPage}, http.StatusOK)
}

// bindSession replaces the current session with one bound to user and sets
// the new cookie. It writes the error response itself and reports false on
// failure.
func (h *Handler) bindSession(w http.ResponseWriter, r *http.Request, user models.User) bool {
	ctx := r.Context()

	session, token, err := h.services.SessionService.Login(ctx, utils.GetSessionTokenFromContext(ctx), user)
	if err != nil {
		writeError(w, r, err)
		return false
	}
	h.metrics.ObserveSessionStarted(true)
	h.setSessionCookie(w, token, session.ExpiresAt)

	return true
}

// currentUser returns the user resolved by withSession. Routes behind
// requireAuthenticated always have one.
func currentUser(r *http.Request) (models.User, error) {
	return service.RequireAuthenticated(r.Context())
}
