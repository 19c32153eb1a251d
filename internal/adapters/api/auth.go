package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"chamaweb/internal/domain/user"
)

// Auth flow errors.
var (
	// ErrNoToken means login returned 2xx without an access token.
	ErrNoToken = errors.New("login succeeded but server did not return a token")
	// ErrNoProfile means GET /me returned 2xx without a user object.
	ErrNoProfile = errors.New("could not fetch user profile")
)

// Register creates a new account. The server assigns role "member" and
// sends the verification email out-of-band. Returns the server's message.
func (c *Client) Register(ctx context.Context, reg user.Registration) (string, error) {
	payload := map[string]string{
		"firstname": reg.Firstname,
		"lastname":  reg.Lastname,
		"email":     reg.Email,
		"phoneno":   reg.PhoneNo,
		"password":  reg.Password,
	}
	var env msgEnvelope
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", payload, &env); err != nil {
		return "", err
	}
	return env.Msg, nil
}

// Login exchanges credentials for an access token. The token is opaque to
// this client; the profile that interprets it comes from Me.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	payload := map[string]string{"email": email, "password": password}
	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", payload, &out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", ErrNoToken
	}
	return out.AccessToken, nil
}

// Me fetches the authoritative profile for a token.
func (c *Client) Me(ctx context.Context, token string) (user.Profile, error) {
	var out struct {
		User *user.Profile `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/me", token, nil, &out); err != nil {
		return user.Profile{}, err
	}
	if out.User == nil || out.User.Email == "" {
		return user.Profile{}, ErrNoProfile
	}
	return *out.User, nil
}

// VerifyEmail submits an emailed verification token. The token travels in
// the URL path and is escaped here; callers pass it already URL-decoded.
func (c *Client) VerifyEmail(ctx context.Context, token string) (string, error) {
	var env msgEnvelope
	path := "/auth/verify-email/" + url.PathEscape(token)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &env); err != nil {
		return "", err
	}
	return env.Msg, nil
}

// RequestPasswordReset asks for a reset link. The server answers with the
// same generic message whether or not the email is registered.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	var env msgEnvelope
	payload := map[string]string{"email": email}
	if err := c.do(ctx, http.MethodPost, "/auth/request-password-reset", "", payload, &env); err != nil {
		return "", err
	}
	return env.Msg, nil
}

// ResetPassword sets a new password using an emailed reset token.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) (string, error) {
	var env msgEnvelope
	payload := map[string]string{"token": token, "new_password": newPassword}
	if err := c.do(ctx, http.MethodPost, "/auth/reset-password", "", payload, &env); err != nil {
		return "", err
	}
	return env.Msg, nil
}
