package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

// mysqlDeadlock is ER_LOCK_DEADLOCK, mysqlLockWait is ER_LOCK_WAIT_TIMEOUT.
const (
	mysqlDeadlock = 1213
	mysqlLockWait = 1205
	mysqlDupEntry = 1062
)

// TransactionManager handles database transactions with retry logic for deadlocks
type TransactionManager struct {
	db *sql.DB
}

// NewTransactionManager creates a new TransactionManager
func NewTransactionManager(db *sql.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// WithTransaction executes fn within a database transaction.
// The transaction is rolled back if fn returns an error or panics, committed otherwise.
func (tm *TransactionManager) WithTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := tm.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction failed: %w (rollback error: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// WithRetry runs WithTransaction, retrying deadlocks up to maxRetries times with backoff.
func (tm *TransactionManager) WithRetry(ctx context.Context, fn func(tx *sql.Tx) error, maxRetries int) error {
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		err := tm.WithTransaction(ctx, fn)
		if err == nil {
			return nil
		}
		lastErr = err
		if !isDeadlock(err) {
			return err
		}

		backoff := time.Duration(10*(1<<attempt)) * time.Millisecond
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return fmt.Errorf("transaction failed after %d retries: %w", maxRetries, lastErr)
}

func isDeadlock(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDeadlock || myErr.Number == mysqlLockWait
	}
	return false
}

func isDuplicateEntry(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDupEntry
	}
	return false
}
