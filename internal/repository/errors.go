// Package repository provides data access layer implementations for the application.
package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// isDuplicateKey reports whether a DB error is a unique constraint violation.
// Postgres surfaces SQLSTATE 23505 through pgconn; the sqlite driver used in
// tests only gives us the message text.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

// orderClause builds the ORDER BY expression for a fixed sort column and the
// requested direction. The column is never caller-supplied.
func orderClause(column string, descending bool) string {
	if descending {
		return column + " DESC"
	}
	return column + " ASC"
}
