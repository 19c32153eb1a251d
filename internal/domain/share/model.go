package share

import "errors"

// Domain errors
var (
	ErrMissingMemberID  = errors.New("member id is required")
	ErrNegativeShares   = errors.New("shares cannot be negative")
	ErrNegativeDividend = errors.New("dividends cannot be negative")
	ErrNegativePenalty  = errors.New("penalties cannot be negative")
)

// Record is a member's ownership stake with accrued dividends and
// penalties. One record exists per member.
type Record struct {
	MemberID  int     `json:"memberId"`
	Shares    float64 `json:"shares"`
	Dividends float64 `json:"dividends"`
	Penalties float64 `json:"penalties"`
}

// Validate rejects an admin upsert before any request is sent. Empty
// numeric form fields default to zero upstream, which is valid here.
func (r Record) Validate() error {
	if r.MemberID <= 0 {
		return ErrMissingMemberID
	}
	if r.Shares < 0 {
		return ErrNegativeShares
	}
	if r.Dividends < 0 {
		return ErrNegativeDividend
	}
	if r.Penalties < 0 {
		return ErrNegativePenalty
	}
	return nil
}
