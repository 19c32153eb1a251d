package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
)

// AuthAPIForVerify defines the API surface needed by VerifyEmail.
type AuthAPIForVerify interface {
	VerifyEmail(ctx context.Context, token string) (string, error)
}

// VerifyEmailInput carries the raw token segment from the URL path.
type VerifyEmailInput struct {
	RawToken string
}

// VerifyEmailResult carries the server's confirmation message.
type VerifyEmailResult struct {
	Message string
}

// VerifyEmailDeps holds dependencies for VerifyEmail.
type VerifyEmailDeps struct {
	API AuthAPIForVerify
}

var (
	ErrMissingVerifyToken = errors.New("no verification token provided")
	ErrBadVerifyToken     = errors.New("verification token is malformed")
)

// ExecuteVerifyEmail URL-decodes the emailed token and submits it. A
// missing or undecodable token is a local error and is never sent to the
// server.
func ExecuteVerifyEmail(ctx context.Context, input VerifyEmailInput, deps VerifyEmailDeps) (VerifyEmailResult, error) {
	if input.RawToken == "" {
		return VerifyEmailResult{}, ErrMissingVerifyToken
	}
	token, err := url.PathUnescape(input.RawToken)
	if err != nil || token == "" {
		return VerifyEmailResult{}, ErrBadVerifyToken
	}

	msg, err := deps.API.VerifyEmail(ctx, token)
	if err != nil {
		slog.Info("auth_event", "event", "verify_failed")
		return VerifyEmailResult{}, err
	}
	if msg == "" {
		msg = "Email verified successfully. You can now login."
	}

	slog.Info("auth_event", "event", "verified")
	return VerifyEmailResult{Message: msg}, nil
}
