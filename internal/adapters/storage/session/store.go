package session

import (
	"context"
	"errors"

	domain "chamaweb/internal/domain/session"
	"chamaweb/internal/domain/user"
)

// ErrNotFound is returned when no live session exists for an ID. Expired
// rows count as not found.
var ErrNotFound = errors.New("session not found")

// Store persists web sessions. A session binds an API bearer token to the
// profile fetched with it; the pair is written atomically.
type Store interface {
	Create(ctx context.Context, token string, profile user.Profile) (domain.Session, error)
	Get(ctx context.Context, id string) (domain.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context) (int, error)
}
