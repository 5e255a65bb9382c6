package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/miniforum/internal/app"
	"github.com/MKhiriev/miniforum/internal/logger"
	"github.com/MKhiriev/miniforum/internal/metrics"
	"github.com/MKhiriev/miniforum/internal/utils"
	"github.com/MKhiriev/miniforum/models"
)

// changePassword verifies the current password, stores the new one and logs
// the user out of every session, this one included.
func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.ChangePasswordRequest
	if err = utils.ReadJSON(r, &req); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	err = h.services.AuthService.UpdatePassword(ctx, user.UserID, req)
	h.metrics.ObserveAuth(metrics.ActionPasswordChange, outcomeOf(err))
	if err != nil {
		writeError(w, r, err)
		return
	}

	// the session record is gone already; Logout is a no-op on unknown tokens
	if err = h.services.SessionService.Logout(ctx, utils.GetSessionTokenFromContext(ctx)); err != nil {
		log.Err(err).Msg("logout after password change failed")
	}
	h.clearSessionCookie(w)

	log.Info().Int64("user_id", user.UserID).Msg("password changed")
	utils.WriteJSON(w, models.MessageResponse{
		Message:  app.MsgPasswordChanged,
		Redirect: frontPage,
	}, http.StatusOK)
}

// resetPassword mails a new random password to the account owner when both
// username and email match.
func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.ResetPasswordRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	err := h.services.AuthService.ResetPassword(ctx, req)
	h.metrics.ObserveAuth(metrics.ActionPasswordReset, outcomeOf(err))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{
		Message: app.MsgPasswordReset,
	}, http.StatusOK)
}
