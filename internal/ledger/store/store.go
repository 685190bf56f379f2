// Package store implements the ledger Repository on Postgres. Every query
// filters by tenant id; an id owned by another tenant scans as no rows.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tidybooks/tidybooks/internal/ledger"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// queries holds every query against one querier. Over *sql.DB it serves
// plain reads; over *sql.Tx it is the atomic unit handed to the service.
type queries struct {
	q querier
}

type Store struct {
	queries

	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{queries: queries{q: db}, db: db}
}

// WithTx runs fn inside one database transaction. A non-nil error from fn
// rolls everything back; fn's error is returned unwrapped so sentinel
// checks still work.
func (s *Store) WithTx(ctx context.Context, fn func(ledger.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&queries{q: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// foreignKeyViolation reports whether err is a Postgres FK constraint
// failure (class 23503), the signal that a row is still referenced.
func foreignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
