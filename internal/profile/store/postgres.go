package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"worklink/pkg/platform/sentinel"
	txcontext "worklink/pkg/platform/tx"
)

// uniqueViolation is the postgres error code for duplicate keys.
const uniqueViolation = "23505"

// PostgresStore persists profile rows in the profiles table.
//
// Schema:
//
//	CREATE TABLE profiles (
//	    id         TEXT PRIMARY KEY,
//	    user_id    TEXT NOT NULL,
//	    kind       TEXT NOT NULL,
//	    status     TEXT NOT NULL,
//	    payload    JSONB NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL
//	);
//	CREATE INDEX idx_profiles_user ON profiles (user_id);
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) Create(ctx context.Context, row Row) error {
	query := `
		INSERT INTO profiles (id, user_id, kind, status, payload, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		row.ID, row.UserID, string(row.Kind), row.Status, row.Payload, row.CreatedAt, row.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (Row, error) {
	query := `
		SELECT id, user_id, kind, status, payload, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`
	var row Row
	var kind string
	err := s.execer(ctx).QueryRowContext(ctx, query, id).Scan(
		&row.ID, &row.UserID, &kind, &row.Status, &row.Payload, &row.CreatedAt, &row.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Row{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Row{}, fmt.Errorf("select profile: %w", err)
	}
	row.Kind = Kind(kind)
	return row, nil
}

// Update performs a compare-and-swap on updated_at. Zero rows affected means
// either the profile vanished or another writer got there first; both
// surface as conflicts after an existence probe.
func (s *PostgresStore) Update(ctx context.Context, row Row, expectedUpdatedAt time.Time) error {
	query := `
		UPDATE profiles
		SET status = $1, payload = $2, updated_at = $3
		WHERE id = $4 AND updated_at = $5
	`
	result, err := s.execer(ctx).ExecContext(ctx, query,
		row.Status, row.Payload, row.UpdatedAt, row.ID, expectedUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update profile rows affected: %w", err)
	}
	if affected == 0 {
		if _, err := s.Get(ctx, row.ID); errors.Is(err, sentinel.ErrNotFound) {
			return sentinel.ErrNotFound
		}
		return sentinel.ErrConflict
	}
	return nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID string) ([]Row, error) {
	query := `
		SELECT id, user_id, kind, status, payload, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
		ORDER BY created_at
	`
	rows, err := s.execer(ctx).QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var row Row
		var kind string
		if err := rows.Scan(&row.ID, &row.UserID, &kind, &row.Status, &row.Payload, &row.CreatedAt, &row.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		row.Kind = Kind(kind)
		out = append(out, row)
	}
	return out, rows.Err()
}
