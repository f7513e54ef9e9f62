// Package service holds the auth workflows: signup, verification, login
// and the invite lifecycle. Services are plain structs wired by the app
// layer; they speak sentinel errors upward so the HTTP layer can map them
// to status codes without inspecting strings.
package service

import "errors"

var (
	// ErrValidation reports malformed or missing request input.
	ErrValidation = errors.New("invalid request")

	// ErrEmailTaken reports a signup against an already-registered email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrAccountNotFound reports an operation against an unknown account.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidOtp reports a wrong or expired verification code.
	ErrInvalidOtp = errors.New("invalid or expired otp")

	// ErrInvalidCredentials reports a failed login. Unknown email and wrong
	// password map to the same error to avoid account enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInviteTokenInvalid reports an unknown, used or expired invite
	// token. The three cases are deliberately indistinguishable.
	ErrInviteTokenInvalid = errors.New("invalid or expired invite token")

	// ErrEmailDelivery reports that the state change succeeded but the
	// notification email could not be sent.
	ErrEmailDelivery = errors.New("email delivery failed")
)
