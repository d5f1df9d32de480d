package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	mssql "github.com/microsoft/go-mssqldb"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storehub/pkg/logger"
	"github.com/shashiranjanraj/storehub/pkg/metrics"
)

// ErrConflict is returned when a transaction still fails to serialize after
// MaxRetries re-runs.
var ErrConflict = errors.New("database: transaction conflict")

// MaxRetries is how many times Transaction re-runs fn after a retryable error.
var MaxRetries = 3

// retryBackoff is the base delay between attempts; doubled each retry.
var retryBackoff = 20 * time.Millisecond

// Transaction runs fn inside a single database transaction. Any error from fn
// rolls the whole transaction back. Serialization failures and deadlocks are
// retried with exponential backoff; once retries are exhausted the result
// wraps ErrConflict.
func Transaction(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	delay := retryBackoff

	for attempt := 0; ; attempt++ {
		err := db.WithContext(ctx).Transaction(fn)
		if err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return err
		}
		if attempt >= MaxRetries {
			return fmt.Errorf("%w: %v", ErrConflict, err)
		}

		metrics.TxRetries.Inc()
		logger.WithCtx(ctx).Warn("database: retrying transaction", "attempt", attempt+1, "error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}

// IsRetryable reports whether err is a serialization failure or deadlock that
// a fresh attempt of the same transaction may resolve.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// serialization_failure, deadlock_detected
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}

	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) {
		// ER_LOCK_DEADLOCK, ER_LOCK_WAIT_TIMEOUT
		return myErr.Number == 1213 || myErr.Number == 1205
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code == sqlite3.ErrBusy || liteErr.Code == sqlite3.ErrLocked
	}

	var msErr mssql.Error
	if errors.As(err, &msErr) {
		// deadlock victim
		return msErr.Number == 1205
	}

	return false
}
