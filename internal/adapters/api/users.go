package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"chamaweb/internal/domain/user"
)

// ListUsers lists registered users, optionally filtered by role. Admin
// only.
func (c *Client) ListUsers(ctx context.Context, token, role string) ([]user.Profile, error) {
	path := "/users"
	if role != "" && role != "all" {
		path += "?role=" + url.QueryEscape(role)
	}
	var env struct {
		Users []user.Profile `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, path, token, nil, &env); err != nil {
		return nil, err
	}
	return env.Users, nil
}

// AssignRole promotes or demotes a user. Admin only.
func (c *Client) AssignRole(ctx context.Context, token string, memberID int, role string) error {
	payload := map[string]string{"role": role}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d/role", memberID), token, payload, nil)
}

// DeleteUser removes a user account. Admin only.
func (c *Client) DeleteUser(ctx context.Context, token string, memberID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d/delete", memberID), token, nil, nil)
}
