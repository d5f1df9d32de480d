// Package repositories holds the gorm queries behind the services. Every
// method takes the handle to run on, so the same repository serves both plain
// reads and statements inside a database.Transaction.
package repositories

import "errors"

// ErrNoRows is returned by guarded updates that matched nothing.
var ErrNoRows = errors.New("repositories: no rows affected")
