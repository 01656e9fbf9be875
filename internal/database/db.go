package database

import (
	"context"
	"database/sql"
)

// Queryer is the statement surface shared by a pool and an open transaction.
type Queryer interface {
	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row
}

type DB interface {
	Queryer

	Ping(ctx context.Context) error
	Close() error

	Begin(ctx context.Context) (Tx, error)

	// SQLDB exposes the pool through database/sql for the migration runner.
	SQLDB() *sql.DB
}

type Tx interface {
	Queryer

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type Rows interface {
	Close()
	Next() bool
	Scan(dest ...any) error
	Err() error
}

type Row interface {
	Scan(dest ...any) error
}

// InTx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back otherwise.
func InTx(ctx context.Context, db DB, fn func(tx Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
