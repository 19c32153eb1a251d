package orchestrators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chamaweb/internal/domain/loan"
	"chamaweb/internal/domain/payment"
)

type fakeLoanAPI struct {
	msg   string
	err   error
	calls int
}

func (f *fakeLoanAPI) ApplyLoan(_ context.Context, token string, app loan.Application) (string, error) {
	f.calls++
	return f.msg, f.err
}

type fakePaymentAPI struct {
	msg   string
	err   error
	calls int
}

func (f *fakePaymentAPI) CreatePayment(_ context.Context, token string, p payment.Payment) (string, error) {
	f.calls++
	return f.msg, f.err
}

func TestApplyLoanSubmitsValidApplication(t *testing.T) {
	apiFake := &fakeLoanAPI{msg: "Loan application received"}

	msg, err := ExecuteApplyLoan(context.Background(), ApplyLoanInput{
		Token:       "tok",
		Application: loan.Application{Amount: 5000, Interest: loan.DefaultInterest, Year: 2, MonthRepay: 250},
	}, ApplyLoanDeps{API: apiFake})
	require.NoError(t, err)

	assert.Equal(t, "Loan application received", msg)
	assert.Equal(t, 1, apiFake.calls)
}

func TestApplyLoanRejectsLocallyWithoutRequest(t *testing.T) {
	tests := []struct {
		name string
		app  loan.Application
	}{
		{"zero amount", loan.Application{Amount: 0, Interest: 0.1, Year: 1, MonthRepay: 10}},
		{"zero year", loan.Application{Amount: 100, Interest: 0.1, Year: 0, MonthRepay: 10}},
		{"negative interest", loan.Application{Amount: 100, Interest: -1, Year: 1, MonthRepay: 10}},
		{"interest above cap", loan.Application{Amount: 100, Interest: 6, Year: 1, MonthRepay: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiFake := &fakeLoanAPI{}
			_, err := ExecuteApplyLoan(context.Background(),
				ApplyLoanInput{Token: "tok", Application: tt.app},
				ApplyLoanDeps{API: apiFake})
			assert.Error(t, err)
			assert.Equal(t, 0, apiFake.calls, "invalid application must not reach the API")
		})
	}
}

func TestSubmitPaymentRejectsLocallyWithoutRequest(t *testing.T) {
	apiFake := &fakePaymentAPI{}
	_, err := ExecuteSubmitPayment(context.Background(), SubmitPaymentInput{
		Token:   "tok",
		Payment: payment.Payment{PayName: "x", Amount: -10, Method: "cash", Receipt: "r"},
	}, SubmitPaymentDeps{API: apiFake})
	assert.ErrorIs(t, err, payment.ErrNonPositiveAmount)
	assert.Equal(t, 0, apiFake.calls)
}

func TestSubmitPaymentFallbackMessage(t *testing.T) {
	apiFake := &fakePaymentAPI{}
	msg, err := ExecuteSubmitPayment(context.Background(), SubmitPaymentInput{
		Token:   "tok",
		Payment: payment.Payment{PayName: "March", Amount: 1500, Method: "mpesa", Receipt: "QX1"},
	}, SubmitPaymentDeps{API: apiFake})
	require.NoError(t, err)
	assert.NotEmpty(t, msg)
}
