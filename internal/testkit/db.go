// Package testkit provides an in-memory database with the storehub schema,
// fixture builders and HTTP helpers for tests.
package testkit

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	_ "github.com/shashiranjanraj/storehub/database/migrations"
	"github.com/shashiranjanraj/storehub/pkg/database"
	"github.com/shashiranjanraj/storehub/pkg/migration"
)

var nameCleaner = strings.NewReplacer("/", "_", " ", "_", "#", "_")

// DB opens a private in-memory sqlite database named after the test, with
// foreign keys on and every migration applied. It is closed on cleanup.
func DB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", nameCleaner.Replace(t.Name()))
	db, err := database.Open("sqlite", dsn)
	require.NoError(t, err, "testkit: open sqlite")
	t.Cleanup(func() { _ = database.Close(db) })

	_, err = migration.New(db, nil).Run()
	require.NoError(t, err, "testkit: migrate")
	return db
}
