package session

import (
	"time"

	"chamaweb/internal/domain/user"
)

// Lifetime is how long a web session row stays valid. The API token inside
// may die earlier; that is detected reactively through 401 responses.
const Lifetime = 24 * time.Hour

// Session binds an API bearer token to the profile that was fetched with
// it. The two are only ever written together.
// INVARIANT: User was fetched from GET /me using Token
type Session struct {
	ID        string
	Token     string
	User      user.Profile
	CreatedAt time.Time
}

// Expired reports whether the session row has aged out.
func (s Session) Expired(now time.Time) bool {
	return now.Sub(s.CreatedAt) > Lifetime
}

// State identifies a position in the authentication flow. Modelling the
// flow as a tagged variant keeps illegal combinations (a logged-in state
// without a role) unrepresentable.
type State struct {
	kind stateKind
	role string
}

type stateKind int

const (
	kindLoggedOut stateKind = iota
	kindRegistering
	kindAwaitingVerification
	kindLoggingIn
	kindLoggedIn
)

// LoggedOut is the initial state: no token, no profile.
func LoggedOut() State { return State{kind: kindLoggedOut} }

// Registering is active while a signup form is being submitted.
func Registering() State { return State{kind: kindRegistering} }

// AwaitingVerification follows a successful registration: the account
// exists but its email has not been confirmed yet.
func AwaitingVerification() State { return State{kind: kindAwaitingVerification} }

// LoggingIn is active between the token exchange and the profile fetch.
func LoggingIn() State { return State{kind: kindLoggingIn} }

// LoggedIn carries the normalized role decided from the fetched profile.
func LoggedIn(role string) State {
	return State{kind: kindLoggedIn, role: user.NormalizeRole(role)}
}

// IsLoggedIn reports whether the state carries an authenticated identity.
func (s State) IsLoggedIn() bool { return s.kind == kindLoggedIn }

// IsAwaitingVerification reports whether the account still needs its email
// confirmed before it can log in.
func (s State) IsAwaitingVerification() bool { return s.kind == kindAwaitingVerification }

// Role returns the authenticated role, or "" when not logged in.
func (s State) Role() string {
	if s.kind != kindLoggedIn {
		return ""
	}
	return s.role
}

// LandingPath returns the dashboard for a logged-in state and the auth
// page for every other state.
func (s State) LandingPath() string {
	if s.kind != kindLoggedIn {
		return "/auth"
	}
	if s.role == user.RoleAdmin {
		return "/admin"
	}
	return "/member"
}

// String names the state for logging.
func (s State) String() string {
	switch s.kind {
	case kindRegistering:
		return "registering"
	case kindAwaitingVerification:
		return "awaiting_verification"
	case kindLoggingIn:
		return "logging_in"
	case kindLoggedIn:
		return "logged_in:" + s.role
	default:
		return "logged_out"
	}
}
