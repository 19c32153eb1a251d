package api

import (
	"context"
	"fmt"
	"net/http"

	"chamaweb/internal/domain/share"
	"chamaweb/internal/domain/user"
)

// MyShares fetches the calling member's share record. A member without a
// record yet gets (nil, nil).
func (c *Client) MyShares(ctx context.Context, token string) (*share.Record, error) {
	var env struct {
		Shares *share.Record `json:"shares"`
	}
	if err := c.do(ctx, http.MethodGet, "/shares", token, nil, &env); err != nil {
		return nil, err
	}
	return env.Shares, nil
}

// AdminShares lists every member's share record. Admin only.
func (c *Client) AdminShares(ctx context.Context, token string) ([]share.Record, error) {
	var env struct {
		Shares []share.Record `json:"shares"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/shares", token, nil, &env); err != nil {
		return nil, err
	}
	return env.Shares, nil
}

// AdminMembers lists member-role users for the share assignment form.
// Admin only.
func (c *Client) AdminMembers(ctx context.Context, token string) ([]user.Profile, error) {
	var env struct {
		Users []user.Profile `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/users?role=member", token, nil, &env); err != nil {
		return nil, err
	}
	return env.Users, nil
}

// CreateShare creates a share record for a member. Admin only.
func (c *Client) CreateShare(ctx context.Context, token string, rec share.Record) error {
	return c.do(ctx, http.MethodPost, "/admin/shares", token, rec, nil)
}

// UpdateShare replaces a member's share record. Admin only.
func (c *Client) UpdateShare(ctx context.Context, token string, rec share.Record) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/shares/%d", rec.MemberID), token, rec, nil)
}

// DeleteShare removes a member's share record. Admin only.
func (c *Client) DeleteShare(ctx context.Context, token string, memberID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/shares/%d", memberID), token, nil, nil)
}
