// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow higher layers such as
// handlers to distinguish "nothing there" from "clashes with existing data"
// from genuine failures without inspecting driver errors themselves.
package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrNotFound is returned when a lookup by id matches no row.  Handlers
// should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert or update would violate a
// primary key or unique constraint, e.g. creating a record with an id that
// is already taken.  Handlers should translate this into HTTP 409.
var ErrDuplicate = errors.New("duplicate key")

// ErrReference is returned when a foreign key points at a row that does not
// exist.  Handlers should translate this into HTTP 422.
var ErrReference = errors.New("referenced record does not exist")

// MySQL server error numbers.
const (
	mysqlDupEntry        = 1062
	mysqlNoReferencedRow = 1452
	mysqlRowIsReferenced = 1451
)

// classify wraps driver errors in the sentinel that describes them.  nil
// and unrelated errors are wrapped with op only.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case isDuplicate(err):
		return fmt.Errorf("%s: %w: %v", op, ErrDuplicate, err)
	case isForeignKey(err):
		return fmt.Errorf("%s: %w: %v", op, ErrReference, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == mysqlDupEntry
	}
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			return strings.Contains(se.Error(), "UNIQUE")
		}
	}
	return false
}

func isForeignKey(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == mysqlNoReferencedRow || me.Number == mysqlRowIsReferenced
	}
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			return strings.Contains(se.Error(), "FOREIGN KEY")
		}
	}
	return false
}
