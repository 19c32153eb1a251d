package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	domain "chamaweb/internal/domain/session"
	"chamaweb/internal/domain/user"
)

const timeLayout = "2006-01-02T15:04:05.999999999Z07:00"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new session store.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Create persists a new session and returns it with a fresh ID.
// PRE: token is non-empty and profile was fetched with it
// POST: the token/profile pair is stored in a single row
func (s *SQLiteStore) Create(ctx context.Context, token string, profile user.Profile) (domain.Session, error) {
	userJSON, err := json.Marshal(profile)
	if err != nil {
		return domain.Session{}, fmt.Errorf("encode profile: %w", err)
	}

	sess := domain.Session{
		ID:        uuid.New().String(),
		Token:     token,
		User:      profile,
		CreatedAt: time.Now().UTC(),
	}

	query := "INSERT INTO web_session (id, token, user_json, created_at) VALUES (?, ?, ?, ?)"
	if _, err := s.db.ExecContext(ctx, query, sess.ID, sess.Token, string(userJSON), sess.CreatedAt.Format(timeLayout)); err != nil {
		return domain.Session{}, fmt.Errorf("insert session: %w", err)
	}
	return sess, nil
}

// Get retrieves a live session by ID. Expired rows are removed and
// reported as ErrNotFound.
func (s *SQLiteStore) Get(ctx context.Context, id string) (domain.Session, error) {
	query := "SELECT id, token, user_json, created_at FROM web_session WHERE id = ?"
	row := s.db.QueryRowContext(ctx, query, id)

	var sess domain.Session
	var userJSON, createdAt string
	if err := row.Scan(&sess.ID, &sess.Token, &userJSON, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return domain.Session{}, ErrNotFound
		}
		return domain.Session{}, fmt.Errorf("scan session: %w", err)
	}

	ts, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return domain.Session{}, fmt.Errorf("parse created_at: %w", err)
	}
	sess.CreatedAt = ts

	if sess.Expired(time.Now().UTC()) {
		_ = s.Delete(ctx, id)
		return domain.Session{}, ErrNotFound
	}

	if err := json.Unmarshal([]byte(userJSON), &sess.User); err != nil {
		return domain.Session{}, fmt.Errorf("decode profile: %w", err)
	}
	return sess, nil
}

// Delete removes a session by ID. Deleting a missing session is a no-op.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM web_session WHERE id = ?", id)
	return err
}

// DeleteExpired removes every aged-out session row and returns the count.
func (s *SQLiteStore) DeleteExpired(ctx context.Context) (int, error) {
	cutoff := time.Now().UTC().Add(-domain.Lifetime).Format(timeLayout)
	res, err := s.db.ExecContext(ctx, "DELETE FROM web_session WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}
