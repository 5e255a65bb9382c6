package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/miniforum/internal/app"
	"github.com/MKhiriev/miniforum/internal/logger"
	"github.com/MKhiriev/miniforum/internal/metrics"
	"github.com/MKhiriev/miniforum/internal/service"
	"github.com/MKhiriev/miniforum/internal/utils"
	"github.com/MKhiriev/miniforum/models"
)

// errorStatusMap is consulted in order of errorPriority, so wrapped errors
// resolve to their most specific status.
var errorStatusMap = map[error]int{
	ErrInvalidJSON:                   http.StatusBadRequest,
	ErrInvalidQuery:                  http.StatusBadRequest,
	service.ErrInvalidDataProvided:   http.StatusBadRequest,
	service.ErrPasswordsDoNotMatch:   http.StatusBadRequest,
	service.ErrInvalidCredentials:    http.StatusUnauthorized,
	service.ErrWrongPassword:         http.StatusUnauthorized,
	service.ErrUnauthenticated:       http.StatusUnauthorized,
	service.ErrResetDetailsMismatch:  http.StatusUnauthorized,
	service.ErrForbidden:             http.StatusForbidden,
	service.ErrUserNotFound:          http.StatusNotFound,
	service.ErrPostNotFound:          http.StatusNotFound,
	service.ErrDuplicateUser:         http.StatusConflict,
	service.ErrMailerUnavailable:     http.StatusNotImplemented,
	service.ErrMailDeliveryFailed:    http.StatusBadGateway,
	service.ErrStoreUnavailable:      http.StatusServiceUnavailable,
	service.ErrVersionIsNotSpecified: http.StatusInternalServerError,
}

// errorPriority fixes the lookup order. Store faults come first: they wrap
// the underlying driver error and must never be reported as anything else.
var errorPriority = []error{
	service.ErrStoreUnavailable,
	ErrInvalidJSON,
	ErrInvalidQuery,
	service.ErrPasswordsDoNotMatch,
	service.ErrInvalidDataProvided,
	service.ErrInvalidCredentials,
	service.ErrWrongPassword,
	service.ErrUnauthenticated,
	service.ErrResetDetailsMismatch,
	service.ErrForbidden,
	service.ErrUserNotFound,
	service.ErrPostNotFound,
	service.ErrDuplicateUser,
	service.ErrMailerUnavailable,
	service.ErrMailDeliveryFailed,
	service.ErrVersionIsNotSpecified,
}

// errorMessageMap holds the user-visible text for errors whose own message
// is not meant for clients. Validation errors are reported verbatim.
var errorMessageMap = map[error]string{
	service.ErrStoreUnavailable:   "service unavailable, try again",
	service.ErrInvalidCredentials: "invalid login",
	service.ErrDuplicateUser:      "username unavailable",
	service.ErrForbidden:          "you can't modify another user's post",
	service.ErrUnauthenticated:    app.MsgLoginRequired,
}

const internalErrorMessage = app.MsgInternalServerError

func statusFromError(err error) int {
	if target := classify(err); target != nil {
		return errorStatusMap[target]
	}
	return http.StatusInternalServerError
}

func messageFromError(err error) string {
	target := classify(err)
	if target == nil {
		return internalErrorMessage
	}
	if msg, ok := errorMessageMap[target]; ok {
		return msg
	}
	if target == service.ErrInvalidDataProvided || target == ErrInvalidQuery {
		return err.Error()
	}
	return target.Error()
}

func classify(err error) error {
	for _, target := range errorPriority {
		if errors.Is(err, target) {
			return target
		}
	}
	return nil
}

// writeError logs err and writes the mapped status with an ErrorResponse.
// Server-side faults are logged at error level, client mistakes at debug.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	response := models.ErrorResponse{Error: messageFromError(err)}
	if status == http.StatusUnauthorized && errors.Is(err, service.ErrUnauthenticated) {
		response.Redirect = "/"
	}

	utils.WriteJSON(w, response, status)
}

// outcomeOf labels the outcome of an operation for metrics.
func outcomeOf(err error) string {
	if err == nil {
		return metrics.ResultSuccess
	}
	if statusFromError(err) >= http.StatusInternalServerError {
		return metrics.ResultError
	}
	return metrics.ResultFailure
}
