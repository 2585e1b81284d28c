package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// codeUndefinedTable is PostgreSQL's "relation does not exist"
const codeUndefinedTable = "42P01"

// IsUndefinedTable reports whether err is a PgError for a missing table,
// which for client state means migrations have not run.
func IsUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUndefinedTable
}
