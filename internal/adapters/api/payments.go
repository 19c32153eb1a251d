package api

import (
	"context"
	"fmt"
	"net/http"

	"chamaweb/internal/domain/payment"
)

type paymentsEnvelope struct {
	Payments []payment.Payment `json:"payments"`
}

// MyPayments lists the calling member's payments.
func (c *Client) MyPayments(ctx context.Context, token string) ([]payment.Payment, error) {
	var env paymentsEnvelope
	if err := c.do(ctx, http.MethodGet, "/payments/me", token, nil, &env); err != nil {
		return nil, err
	}
	return env.Payments, nil
}

// CreatePayment records a contribution for the calling member.
func (c *Client) CreatePayment(ctx context.Context, token string, p payment.Payment) (string, error) {
	var env msgEnvelope
	if err := c.do(ctx, http.MethodPost, "/payments", token, p, &env); err != nil {
		return "", err
	}
	return env.Msg, nil
}

// AllPayments lists every member's payments. Admin only.
func (c *Client) AllPayments(ctx context.Context, token string) ([]payment.Payment, error) {
	var env paymentsEnvelope
	if err := c.do(ctx, http.MethodGet, "/payments/all", token, nil, &env); err != nil {
		return nil, err
	}
	return env.Payments, nil
}

// DeletePayment removes a payment record. Admin only.
func (c *Client) DeletePayment(ctx context.Context, token string, paymentID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/payments/%d", paymentID), token, nil, nil)
}
