package orchestrators

import (
	"context"
	"log/slog"

	domain "chamaweb/internal/domain/session"
	"chamaweb/internal/domain/user"
)

// AuthAPIForRegister defines the API surface needed by Register.
type AuthAPIForRegister interface {
	Register(ctx context.Context, reg user.Registration) (string, error)
}

// RegisterInput carries the signup form fields.
type RegisterInput struct {
	Registration user.Registration
}

// RegisterResult carries the server's acknowledgement. State is
// AwaitingVerification: the account exists but cannot log in until the
// emailed link is used.
type RegisterResult struct {
	Message string
	State   domain.State
}

// RegisterDeps holds dependencies for Register.
type RegisterDeps struct {
	API AuthAPIForRegister
}

const registeredFallbackMsg = "Registered. Please check your email to verify before logging in."

// ExecuteRegister validates the signup locally and submits it. Validation
// failures never reach the network.
func ExecuteRegister(ctx context.Context, input RegisterInput, deps RegisterDeps) (RegisterResult, error) {
	if err := input.Registration.Validate(); err != nil {
		return RegisterResult{}, err
	}

	msg, err := deps.API.Register(ctx, input.Registration)
	if err != nil {
		slog.Info("auth_event", "event", "register_failed", "email", input.Registration.Email)
		return RegisterResult{}, err
	}
	if msg == "" {
		msg = registeredFallbackMsg
	}

	slog.Info("auth_event", "event", "registered", "email", input.Registration.Email)
	return RegisterResult{Message: msg, State: domain.AwaitingVerification()}, nil
}
