package loan

import "errors"

// DefaultInterest is the rate pre-filled on the application form.
const DefaultInterest = 0.08

// Interest sanity bounds. The rate is a fraction, not a percentage, so
// anything above 5 is a data-entry mistake.
const (
	MinInterest = 0.0
	MaxInterest = 5.0
)

// Domain errors
var (
	ErrNonPositiveAmount  = errors.New("amount must be a positive number")
	ErrNonPositiveYear    = errors.New("year must be a positive integer")
	ErrNonPositiveMonthly = errors.New("monthly repayment must be a positive number")
	ErrInterestOutOfRange = errors.New("interest value out of range")
)

// Application is a loan application as submitted to and returned by the
// API. MemberID is assigned server-side and is zero on new applications.
type Application struct {
	MemberID   int     `json:"memberId,omitempty"`
	Amount     float64 `json:"amount"`
	Interest   float64 `json:"interest"`
	Year       int     `json:"year"`
	MonthRepay float64 `json:"monthrepay"`
}

// Validate rejects an application before any request is sent.
// POST: returns nil only if all numeric fields are in range
func (a Application) Validate() error {
	if a.Amount <= 0 {
		return ErrNonPositiveAmount
	}
	if a.Year <= 0 {
		return ErrNonPositiveYear
	}
	if a.MonthRepay <= 0 {
		return ErrNonPositiveMonthly
	}
	if a.Interest < MinInterest || a.Interest > MaxInterest {
		return ErrInterestOutOfRange
	}
	return nil
}
