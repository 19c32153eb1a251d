package payment

import (
	"errors"
	"strings"
)

// Domain errors
var (
	ErrMissingFields     = errors.New("please fill all fields")
	ErrNonPositiveAmount = errors.New("amount must be a positive number")
)

// Payment is a contribution record. PaymentID and MemberID are assigned
// server-side and are zero on new payments.
type Payment struct {
	PaymentID int     `json:"paymentId,omitempty"`
	MemberID  int     `json:"memberId,omitempty"`
	PayName   string  `json:"payname"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method"`
	Receipt   string  `json:"receipt"`
}

// Validate rejects a payment before any request is sent.
func (p Payment) Validate() error {
	if strings.TrimSpace(p.PayName) == "" ||
		strings.TrimSpace(p.Method) == "" ||
		strings.TrimSpace(p.Receipt) == "" {
		return ErrMissingFields
	}
	if p.Amount <= 0 {
		return ErrNonPositiveAmount
	}
	return nil
}
