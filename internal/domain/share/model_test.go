package share

import (
	"errors"
	"testing"
)

func TestRecordValidate(t *testing.T) {
	valid := Record{MemberID: 3, Shares: 120, Dividends: 0, Penalties: 0}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() on valid record: %v", err)
	}

	tests := []struct {
		name    string
		rec     Record
		wantErr error
	}{
		{"missing member", Record{Shares: 10}, ErrMissingMemberID},
		{"negative member", Record{MemberID: -2, Shares: 10}, ErrMissingMemberID},
		{"negative shares", Record{MemberID: 1, Shares: -1}, ErrNegativeShares},
		{"negative dividends", Record{MemberID: 1, Dividends: -1}, ErrNegativeDividend},
		{"negative penalties", Record{MemberID: 1, Penalties: -1}, ErrNegativePenalty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.rec.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v; want %v", err, tt.wantErr)
			}
		})
	}
}
