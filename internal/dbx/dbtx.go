// Package dbx carries the small database plumbing shared by the sqlite
// repositories: DBTX, satisfied by both *sql.DB and *sql.Tx so a repository
// works standalone or joins a surrounding transaction, and WithTx for the
// multi-key writes (session swap, isolation purge) that must land atomically.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the execution surface the repositories need. Handing a repository
// a *sql.Tx makes every one of its calls part of that transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx runs fn inside a transaction: commit when fn returns nil, rollback
// when it errors or panics. A panic is rethrown after the rollback.
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) error {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
