package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
)

// AuthAPIForReset defines the API surface needed by the reset flows.
type AuthAPIForReset interface {
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) (string, error)
}

// ResetDeps holds dependencies for both reset flows.
type ResetDeps struct {
	API AuthAPIForReset
}

var (
	ErrMissingEmail      = errors.New("please enter your email")
	ErrMissingResetToken = errors.New("missing or invalid reset token")
	ErrMissingPassword   = errors.New("enter a new password")
)

// genericResetAck is shown whenever the server's message is empty, keeping
// the acknowledgement shape identical for registered and unknown emails.
const genericResetAck = "If that email exists, a reset link has been sent."

// ExecuteRequestReset asks the API for a reset link. The outcome never
// reveals whether the email is registered.
func ExecuteRequestReset(ctx context.Context, email string, deps ResetDeps) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", ErrMissingEmail
	}

	msg, err := deps.API.RequestPasswordReset(ctx, email)
	if err != nil {
		return "", err
	}
	if msg == "" {
		msg = genericResetAck
	}
	slog.Info("auth_event", "event", "reset_requested")
	return msg, nil
}

// ResetPasswordInput carries the raw token segment from the URL path and
// the new password.
type ResetPasswordInput struct {
	RawToken    string
	NewPassword string
}

// ExecuteResetPassword URL-decodes the emailed token and sets the new
// password. A missing or undecodable token is a local error and is never
// sent to the server.
func ExecuteResetPassword(ctx context.Context, input ResetPasswordInput, deps ResetDeps) (string, error) {
	if input.RawToken == "" {
		return "", ErrMissingResetToken
	}
	token, err := url.PathUnescape(input.RawToken)
	if err != nil || token == "" {
		return "", ErrMissingResetToken
	}
	if input.NewPassword == "" {
		return "", ErrMissingPassword
	}

	msg, err := deps.API.ResetPassword(ctx, token, input.NewPassword)
	if err != nil {
		slog.Info("auth_event", "event", "reset_failed")
		return "", err
	}
	if msg == "" {
		msg = "Password reset successful."
	}
	slog.Info("auth_event", "event", "reset_done")
	return msg, nil
}
