package orchestrators

import (
	"context"
	"log/slog"

	"chamaweb/internal/domain/payment"
)

// PaymentAPIForSubmit defines the API surface needed by SubmitPayment.
type PaymentAPIForSubmit interface {
	CreatePayment(ctx context.Context, token string, p payment.Payment) (string, error)
}

// SubmitPaymentInput carries the member's payment form.
type SubmitPaymentInput struct {
	Token   string
	Payment payment.Payment
}

// SubmitPaymentDeps holds dependencies for SubmitPayment.
type SubmitPaymentDeps struct {
	API PaymentAPIForSubmit
}

// ExecuteSubmitPayment validates the payment locally and records it.
func ExecuteSubmitPayment(ctx context.Context, input SubmitPaymentInput, deps SubmitPaymentDeps) (string, error) {
	if err := input.Payment.Validate(); err != nil {
		return "", err
	}

	msg, err := deps.API.CreatePayment(ctx, input.Token, input.Payment)
	if err != nil {
		return "", err
	}
	if msg == "" {
		msg = "Payment recorded"
	}
	slog.Info("payment_event", "event", "recorded", "amount", input.Payment.Amount, "method", input.Payment.Method)
	return msg, nil
}
