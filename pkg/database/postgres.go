// Package database wraps the relational connection pool and the
// transaction-scoping helpers the booking engine and repositories share.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Rajeswari195/kayak/internal/config"

	"github.com/lib/pq"
)

// DB wraps the pooled relational connection.
type DB struct {
	*sql.DB
}

// NewPostgresConnection opens and pings a PostgreSQL connection pool.
func NewPostgresConnection(cfg *config.RelationalConfig) (*DB, error) {
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	return &DB{db}, nil
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.DB.Close()
}

// WithTx runs fn inside a transaction, committing on success and rolling
// back on any error (including a panic, which is re-raised after rollback).
// No function called from fn may open its own transaction; they must accept
// the *sql.Tx passed down from here.
func (db *DB) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback also failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// deadlockSQLState is Postgres's error code for "deadlock_detected".
const deadlockSQLState = "40P01"

// IsDeadlock reports whether err is a Postgres deadlock_detected error
// surfaced by the driver, as distinct from a domain no_inventory failure.
func IsDeadlock(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == deadlockSQLState
}

// WithTxRetryOnDeadlock runs WithTx, retrying at most once if the failure
// was a transient store deadlock rather than a domain error. A booking that
// loses a deadlock race gets one more shot at the lock before the caller
// sees a failure.
func (db *DB) WithTxRetryOnDeadlock(ctx context.Context, fn func(tx *sql.Tx) error) error {
	err := db.WithTx(ctx, fn)
	if err != nil && IsDeadlock(err) {
		err = db.WithTx(ctx, fn)
	}
	return err
}
