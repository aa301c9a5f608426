// Package sqlite implements the storage contracts on top of database/sql
// with the modernc SQLite driver. Constraint violations and empty result
// sets are translated to the storage sentinels so callers stay driver
// agnostic.
package sqlite

import (
	"database/sql"
	"errors"

	sqlitedriver "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/avenn/stayfinder-be/internal/storage"
)

func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}
	var se *sqlitedriver.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return storage.ErrDuplicate
		}
	}
	return err
}

// requireAffected turns a zero-row UPDATE or DELETE into ErrNotFound.
func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
