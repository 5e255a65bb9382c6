// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the user-facing message strings written into HTTP
// response bodies by the miniforum handlers.
//
// Format strings take the username as their only argument.
package app

const (
	// MsgAccountCreatedFormat greets a freshly registered user.
	MsgAccountCreatedFormat = "Account created! Welcome to Miniforum, %s!"

	// MsgWelcomeFormat greets a user after a successful login.
	MsgWelcomeFormat = "Welcome, %s!"

	MsgPasswordChanged = "Password changed!"
	MsgPasswordReset   = "Password reset! Check your email!"
	MsgPostDeleted     = "Post deleted!"

	// MsgLoginRequired is returned on routes that need an authenticated
	// session when the request carries none.
	MsgLoginRequired = "you must be logged in"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"
)
