package user

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

// Max length constants for user-editable fields, mirroring the API schema.
const (
	MaxNameLength  = 25
	MaxEmailLength = 50
	MaxPhoneLength = 10
)

// Role constants. The API may report roles in any casing; NormalizeRole is
// applied before comparison.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Domain errors
var (
	ErrEmptyFirstname = errors.New("firstname cannot be empty")
	ErrEmptyLastname  = errors.New("lastname cannot be empty")
	ErrEmptyEmail     = errors.New("email cannot be empty")
	ErrInvalidEmail   = errors.New("email must contain '@'")
	ErrEmptyPhone     = errors.New("phone number cannot be empty")
	ErrEmptyPassword  = errors.New("password cannot be empty")
)

// Profile is the authoritative user record as returned by GET /me.
// It is read-only from this client's perspective.
type Profile struct {
	MemberID      int          `json:"memberId"`
	Firstname     string       `json:"firstname"`
	Lastname      string       `json:"lastname"`
	Email         string       `json:"email"`
	PhoneNo       string       `json:"phoneno"`
	Role          string       `json:"role"`
	EmailVerified VerifiedFlag `json:"email_verified"`
}

// FullName returns the display name for the profile.
func (p Profile) FullName() string {
	return strings.TrimSpace(p.Firstname + " " + p.Lastname)
}

// IsAdmin reports whether the profile carries the admin role, ignoring case.
func (p Profile) IsAdmin() bool {
	return NormalizeRole(p.Role) == RoleAdmin
}

// LandingPath returns the dashboard a freshly logged-in user lands on.
// Admins land on the admin console; every other role is a member.
func (p Profile) LandingPath() string {
	if p.IsAdmin() {
		return "/admin"
	}
	return "/member"
}

// NormalizeRole lowercases and trims a role string from the API.
func NormalizeRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}

// VerifiedFlag is a bool that tolerates the API's loosely typed
// email_verified field, which has been observed as JSON true/false as well
// as the strings "true" and "false". Anything unrecognized decodes as
// unverified.
type VerifiedFlag bool

// UnmarshalJSON accepts a JSON bool or a quoted "true"/"false".
func (f *VerifiedFlag) UnmarshalJSON(data []byte) error {
	switch string(bytes.Trim(data, `"`)) {
	case "true", "1":
		*f = true
	default:
		*f = false
	}
	return nil
}

// MarshalJSON always emits a plain JSON bool.
func (f VerifiedFlag) MarshalJSON() ([]byte, error) {
	if f {
		return []byte("true"), nil
	}
	return []byte("false"), nil
}

// Registration carries the fields of a new-user signup form.
type Registration struct {
	Firstname string
	Lastname  string
	Email     string
	PhoneNo   string
	Password  string
}

// Validate checks the registration locally before any request is sent.
// PRE: struct is populated from form input
// POST: returns nil if the registration may be submitted
func (r Registration) Validate() error {
	if strings.TrimSpace(r.Firstname) == "" {
		return ErrEmptyFirstname
	}
	if len(r.Firstname) > MaxNameLength {
		return fmt.Errorf("firstname cannot exceed %d characters", MaxNameLength)
	}
	if strings.TrimSpace(r.Lastname) == "" {
		return ErrEmptyLastname
	}
	if len(r.Lastname) > MaxNameLength {
		return fmt.Errorf("lastname cannot exceed %d characters", MaxNameLength)
	}
	if strings.TrimSpace(r.Email) == "" {
		return ErrEmptyEmail
	}
	if !strings.Contains(r.Email, "@") {
		return ErrInvalidEmail
	}
	if len(r.Email) > MaxEmailLength {
		return fmt.Errorf("email cannot exceed %d characters", MaxEmailLength)
	}
	if strings.TrimSpace(r.PhoneNo) == "" {
		return ErrEmptyPhone
	}
	if r.Password == "" {
		return ErrEmptyPassword
	}
	return nil
}
