// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides clients for the external services the forum
// talks to.
//
// The only outbound dependency is the mail provider used by the password
// reset flow. [Mailer] decouples the service layer from the provider; the
// package ships a SendGrid v3 implementation ([NewSendGridMailer]).
//
// Provider failures are mapped from HTTP status codes by mapHTTPError so that
// callers can use [errors.Is] against the sentinels in errors.go.
package adapter

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/mailer_mock.go -package=mock

// Mailer delivers transactional email.
type Mailer interface {
	// SendNewPassword mails a freshly generated password to the account
	// owner. Implementations must not log or retain newPassword.
	SendNewPassword(ctx context.Context, toEmail, newPassword string) error
}
