package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUndefinedTable(t *testing.T) {
	missing := fmt.Errorf("query: %w", &pgconn.PgError{Code: "42P01"})
	if !IsUndefinedTable(missing) {
		t.Fatalf("expected undefined table")
	}
	if IsUndefinedTable(&pgconn.PgError{Code: "23505"}) || IsUndefinedTable(errors.New("plain")) {
		t.Fatalf("unexpected match")
	}
}
