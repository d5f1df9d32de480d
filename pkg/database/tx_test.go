package database

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type counter struct {
	ID    uint `gorm:"primaryKey"`
	Value int
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&counter{}))
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func TestIsRetryable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain", errors.New("boom"), false},
		{"pg serialization", &pgconn.PgError{Code: "40001"}, true},
		{"pg deadlock", &pgconn.PgError{Code: "40P01"}, true},
		{"pg unique", &pgconn.PgError{Code: "23505"}, false},
		{"mysql deadlock", &mysqldriver.MySQLError{Number: 1213}, true},
		{"mysql lock wait", &mysqldriver.MySQLError{Number: 1205}, true},
		{"mysql dup", &mysqldriver.MySQLError{Number: 1062}, false},
		{"sqlite busy", sqlite3.Error{Code: sqlite3.ErrBusy}, true},
		{"sqlite constraint", sqlite3.Error{Code: sqlite3.ErrConstraint}, false},
		{"wrapped", fmt.Errorf("order: update: %w", &pgconn.PgError{Code: "40001"}), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsRetryable(tc.err))
		})
	}
}

func TestTransactionCommits(t *testing.T) {
	db := openTestDB(t)

	err := Transaction(context.Background(), db, func(tx *gorm.DB) error {
		return tx.Create(&counter{Value: 7}).Error
	})
	require.NoError(t, err)

	var n int64
	require.NoError(t, db.Model(&counter{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestTransactionRollsBackOnError(t *testing.T) {
	db := openTestDB(t)
	sentinel := errors.New("fail after write")

	err := Transaction(context.Background(), db, func(tx *gorm.DB) error {
		if err := tx.Create(&counter{Value: 1}).Error; err != nil {
			return err
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	var n int64
	require.NoError(t, db.Model(&counter{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestTransactionRetriesThenSucceeds(t *testing.T) {
	db := openTestDB(t)
	retryBackoff = time.Millisecond

	attempts := 0
	err := Transaction(context.Background(), db, func(tx *gorm.DB) error {
		attempts++
		if attempts < 3 {
			return sqlite3.Error{Code: sqlite3.ErrBusy}
		}
		return tx.Create(&counter{Value: attempts}).Error
	})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestTransactionSurfacesConflict(t *testing.T) {
	db := openTestDB(t)
	retryBackoff = time.Millisecond

	attempts := 0
	err := Transaction(context.Background(), db, func(tx *gorm.DB) error {
		attempts++
		return &pgconn.PgError{Code: "40001"}
	})
	require.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, MaxRetries+1, attempts)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open("oracle", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported DB_DRIVER")
}
