package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	domain "chamaweb/internal/domain/session"
	"chamaweb/internal/domain/user"
)

// AuthAPIForLogin defines the API surface needed by Login.
type AuthAPIForLogin interface {
	Login(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context, token string) (user.Profile, error)
}

// SessionStoreForLogin defines the store interface needed by Login.
type SessionStoreForLogin interface {
	Create(ctx context.Context, token string, profile user.Profile) (domain.Session, error)
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult carries the established session and the flow state that
// decides the landing route.
type LoginResult struct {
	Session domain.Session
	State   domain.State
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	API      AuthAPIForLogin
	Sessions SessionStoreForLogin
}

var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrProfileUnavailable = errors.New("could not fetch user profile after login, try again")
	ErrEmailNotVerified   = errors.New("your email is not verified, please check your inbox and click the verification link before logging in")
)

// ExecuteLogin performs the two-step login commit: exchange credentials
// for a token, then fetch the authoritative profile with that token. No
// session is persisted unless both steps succeed AND the profile's email
// is verified; a token whose profile cannot be fetched or is unverified
// is discarded even though the credential check passed.
// POST: on success exactly one session row exists for this login
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	if input.Email == "" || input.Password == "" {
		return LoginResult{}, ErrMissingCredentials
	}

	token, err := deps.API.Login(ctx, input.Email, input.Password)
	if err != nil {
		slog.Info("auth_event", "event", "login_failed", "email", input.Email, "reason", "token_exchange")
		return LoginResult{}, err
	}

	// The token is held in memory only until the profile confirms it.
	profile, err := deps.API.Me(ctx, token)
	if err != nil {
		slog.Info("auth_event", "event", "login_failed", "email", input.Email, "reason", "profile_fetch")
		return LoginResult{}, ErrProfileUnavailable
	}

	if !bool(profile.EmailVerified) {
		slog.Info("auth_event", "event", "login_blocked", "email", input.Email, "reason", "unverified")
		return LoginResult{State: domain.AwaitingVerification()}, ErrEmailNotVerified
	}

	sess, err := deps.Sessions.Create(ctx, token, profile)
	if err != nil {
		return LoginResult{}, err
	}

	state := domain.LoggedIn(profile.Role)
	slog.Info("auth_event", "event", "login_success", "email", profile.Email, "role", state.Role())

	return LoginResult{Session: sess, State: state}, nil
}
