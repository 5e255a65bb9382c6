package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("mail provider rejected the request")
	ErrUnauthorized        = errors.New("mail provider unauthorized")
	ErrForbidden           = errors.New("mail provider forbidden")
	ErrPayloadTooLarge     = errors.New("mail payload too large")
	ErrTooManyRequests     = errors.New("mail provider rate limit exceeded")
	ErrInternalServerError = errors.New("mail provider internal error")
	ErrUnexpectedStatus    = errors.New("unexpected mail provider response")
	ErrSendingMail         = errors.New("error sending mail")
)
