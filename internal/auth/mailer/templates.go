package mailer

import (
	"fmt"
	"html"
)

// Email composition. Each message carries a plain-text body plus an HTML
// alternative. Dynamic values are escaped before they reach the HTML part.

// ComposeSignupOtp builds the verification email sent after signup.
func ComposeSignupOtp(to, name, otp string) Message {
	greeting := "Hi"
	if name != "" {
		greeting = "Hi " + name
	}

	return Message{
		To:      to,
		Subject: "Verify your email address",
		Body: fmt.Sprintf(
			"%s,\n\nYour verification code is: %s\n\nIt expires in 10 minutes. If you didn't sign up, you can ignore this email.\n",
			greeting, otp),
		HTMLBody: fmt.Sprintf(
			`<p>%s,</p><p>Your verification code is: <strong>%s</strong></p><p>It expires in 10 minutes. If you didn't sign up, you can ignore this email.</p>`,
			html.EscapeString(greeting), html.EscapeString(otp)),
	}
}

// ComposeInvite builds the invitation email carrying the one-time accept
// link. The raw token is embedded in the URL; only its fingerprint is
// stored server-side.
func ComposeInvite(to, baseURL, token string) Message {
	link := fmt.Sprintf("%s/auth/accept-invite?token=%s", baseURL, token)

	return Message{
		To:      to,
		Subject: "You've been invited",
		Body: fmt.Sprintf(
			"Hi,\n\nYou've been invited to join the team. Follow the link below to set up your account:\n\n%s\n\nThe link expires in 24 hours.\n",
			link),
		HTMLBody: fmt.Sprintf(
			`<p>Hi,</p><p>You've been invited to join the team. Follow the link below to set up your account:</p><p><a href="%s">Accept invitation</a></p><p>The link expires in 24 hours.</p>`,
			html.EscapeString(link)),
	}
}

// ComposePasswordReset builds the reset email with a one-time link. The
// reset completion endpoint lives outside this service; composition is
// kept here so all outbound mail shares one home.
func ComposePasswordReset(to, baseURL, token string) Message {
	link := fmt.Sprintf("%s/auth/reset-password?token=%s", baseURL, token)

	return Message{
		To:      to,
		Subject: "Reset your password",
		Body: fmt.Sprintf(
			"Hi,\n\nWe received a request to reset your password. Follow the link below to choose a new one:\n\n%s\n\nIf you didn't ask for this, you can ignore this email.\n",
			link),
		HTMLBody: fmt.Sprintf(
			`<p>Hi,</p><p>We received a request to reset your password. Follow the link below to choose a new one:</p><p><a href="%s">Reset password</a></p><p>If you didn't ask for this, you can ignore this email.</p>`,
			html.EscapeString(link)),
	}
}
