package orchestrators

import (
	"context"
	"log/slog"

	"chamaweb/internal/domain/share"
)

// ShareAPIForUpsert defines the API surface needed by UpsertShare.
type ShareAPIForUpsert interface {
	AdminShares(ctx context.Context, token string) ([]share.Record, error)
	CreateShare(ctx context.Context, token string, rec share.Record) error
	UpdateShare(ctx context.Context, token string, rec share.Record) error
}

// UpsertShareInput carries the admin share form.
type UpsertShareInput struct {
	Token  string
	Record share.Record
}

// UpsertShareDeps holds dependencies for UpsertShare.
type UpsertShareDeps struct {
	API ShareAPIForUpsert
}

// ExecuteUpsertShare validates the record and either creates it or
// replaces the member's existing one. The create/update split mirrors the
// API: POST for a first record, PUT for an existing member.
func ExecuteUpsertShare(ctx context.Context, input UpsertShareInput, deps UpsertShareDeps) (string, error) {
	if err := input.Record.Validate(); err != nil {
		return "", err
	}

	existing, err := deps.API.AdminShares(ctx, input.Token)
	if err != nil {
		return "", err
	}

	exists := false
	for _, rec := range existing {
		if rec.MemberID == input.Record.MemberID {
			exists = true
			break
		}
	}

	if exists {
		if err := deps.API.UpdateShare(ctx, input.Token, input.Record); err != nil {
			return "", err
		}
		slog.Info("share_event", "event", "updated", "member_id", input.Record.MemberID)
		return "Shares updated", nil
	}

	if err := deps.API.CreateShare(ctx, input.Token, input.Record); err != nil {
		return "", err
	}
	slog.Info("share_event", "event", "created", "member_id", input.Record.MemberID)
	return "Shares assigned", nil
}
