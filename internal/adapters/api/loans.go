package api

import (
	"context"
	"fmt"
	"net/http"

	"chamaweb/internal/domain/loan"
)

type loansEnvelope struct {
	Loans []loan.Application `json:"loans"`
}

// MyLoans lists the calling member's loan applications.
func (c *Client) MyLoans(ctx context.Context, token string) ([]loan.Application, error) {
	var env loansEnvelope
	if err := c.do(ctx, http.MethodGet, "/loans/me", token, nil, &env); err != nil {
		return nil, err
	}
	return env.Loans, nil
}

// ApplyLoan submits a loan application. Validation happens before the
// call; the server may still reject with a business error.
func (c *Client) ApplyLoan(ctx context.Context, token string, app loan.Application) (string, error) {
	var env msgEnvelope
	if err := c.do(ctx, http.MethodPost, "/loans/apply", token, app, &env); err != nil {
		return "", err
	}
	return env.Msg, nil
}

// AllLoans lists every member's loan application. Admin only.
func (c *Client) AllLoans(ctx context.Context, token string) ([]loan.Application, error) {
	var env loansEnvelope
	if err := c.do(ctx, http.MethodGet, "/loans", token, nil, &env); err != nil {
		return nil, err
	}
	return env.Loans, nil
}

// UpdateLoan replaces a member's loan application. Admin only.
func (c *Client) UpdateLoan(ctx context.Context, token string, memberID int, app loan.Application) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/loans/%d", memberID), token, app, nil)
}

// DeleteLoan removes a member's loan application. Admin only.
func (c *Client) DeleteLoan(ctx context.Context, token string, memberID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/loans/%d", memberID), token, nil, nil)
}
