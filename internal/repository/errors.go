// Package repository defines error types that are reused across multiple
// repositories and the service layer. These sentinel values allow higher
// layers such as handlers to distinguish between different failure
// scenarios without inspecting driver specific errors.
package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// ErrMemberNotFound is returned when a member lookup, update or delete
// matches no rows. Handlers should translate this into an HTTP 404.
var ErrMemberNotFound = errors.New("member not found")

// ErrSeatNotFound is returned when a seat lookup yields no rows.
var ErrSeatNotFound = errors.New("seat not found")

// ErrDuplicateKey is returned when a unique column (members.aadhar,
// seats.seat_id, admins.email) already holds the value being written.
// Handlers should translate this into an HTTP 409.
var ErrDuplicateKey = errors.New("duplicate key")

// ErrInvalidID is returned when an identifier is malformed, before any
// query is issued. Handlers should translate this into an HTTP 400.
var ErrInvalidID = errors.New("invalid identifier")

// ValidationError aggregates field level validation failures.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation error: " + strings.Join(e.Messages, ", ")
}

// IsValidation reports whether err carries a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// isDuplicate recognises unique violations from MySQL (1062) and SQLite.
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "1062")
}
