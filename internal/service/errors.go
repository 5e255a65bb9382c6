package service

import "errors"

// Domain errors returned by the services. Handlers map them to status codes
// and user-visible messages with [errors.Is].
var (
	ErrInvalidCredentials = errors.New("invalid login")
	ErrDuplicateUser      = errors.New("username unavailable")
	ErrUserNotFound       = errors.New("user not found")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrForbidden          = errors.New("you can't modify another user's post")
	ErrStoreUnavailable   = errors.New("service unavailable, try again")

	ErrInvalidDataProvided  = errors.New("invalid data provided")
	ErrPasswordsDoNotMatch  = errors.New("new password does not match")
	ErrWrongPassword        = errors.New("incorrect password")
	ErrResetDetailsMismatch = errors.New("username and email do not match")
	ErrMailerUnavailable    = errors.New("emailer service not available")
	ErrMailDeliveryFailed   = errors.New("password reset mail could not be delivered")
	ErrPostNotFound         = errors.New("post not found")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
