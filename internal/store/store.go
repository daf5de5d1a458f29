// Package store provides the SQLite-backed persistence layer. Lookups
// return (nil, nil) when no row matches; callers distinguish "absent" from
// store failure by the error.
package store

import (
	"errors"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// isConstraintErr reports whether err is a SQLite uniqueness violation,
// either on a UNIQUE index or on a composite primary key.
func isConstraintErr(err error) bool {
	var serr *sqlite.Error
	if !errors.As(err, &serr) {
		return false
	}
	switch serr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	}
	return false
}
