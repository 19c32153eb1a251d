package orchestrators

import (
	"context"
	"log/slog"

	"chamaweb/internal/domain/loan"
)

// LoanAPIForApply defines the API surface needed by ApplyLoan.
type LoanAPIForApply interface {
	ApplyLoan(ctx context.Context, token string, app loan.Application) (string, error)
}

// ApplyLoanInput carries the member's loan form.
type ApplyLoanInput struct {
	Token       string
	Application loan.Application
}

// ApplyLoanDeps holds dependencies for ApplyLoan.
type ApplyLoanDeps struct {
	API LoanAPIForApply
}

// ExecuteApplyLoan validates the application locally and submits it.
// Out-of-range numbers never generate a request.
func ExecuteApplyLoan(ctx context.Context, input ApplyLoanInput, deps ApplyLoanDeps) (string, error) {
	if err := input.Application.Validate(); err != nil {
		return "", err
	}

	msg, err := deps.API.ApplyLoan(ctx, input.Token, input.Application)
	if err != nil {
		return "", err
	}
	if msg == "" {
		msg = "Loan application submitted"
	}
	slog.Info("loan_event", "event", "applied", "amount", input.Application.Amount, "year", input.Application.Year)
	return msg, nil
}
