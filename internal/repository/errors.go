// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver errors themselves. All domain errors are detected
// here, at the write boundary, by classifying the MySQL error number;
// nothing is retried automatically.
package repository

import (
    "errors"
    "strings"
)

// ErrNotFound is returned when a read or conditional write matched no row.
// For event edits it deliberately conflates "wrong id", "not the owner"
// and "already deleted" so that non-owners cannot probe for existence.
// Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrAlreadyJoined is returned when a join hits the uniqueness constraint
// on the (event_id, user_id) pair. Handlers should translate this into an
// HTTP 409 response.
var ErrAlreadyJoined = errors.New("already joined")

// ErrMissingReference is returned when a write violates a foreign key,
// meaning the referenced event or user does not exist. Handlers should
// translate this into an HTTP 404 response with a message.
var ErrMissingReference = errors.New("user or event not found")

// ErrInvalidTime is returned when the store rejects a timestamp value.
var ErrInvalidTime = errors.New("invalid time format")

// ErrInvalidCreator is returned when the store rejects the creator value,
// either through the creator check constraint or its foreign key.
var ErrInvalidCreator = errors.New("invalid creator")

// ErrEmailExists is returned when user creation hits the unique email index.
var ErrEmailExists = errors.New("email already exists")

// MySQL error numbers surfaced by go-sql-driver in the error text.
const (
    mysqlErrDuplicateKey   = "1062" // duplicate entry for a unique index
    mysqlErrInvalidDate    = "1292" // incorrect datetime value
    mysqlErrForeignKey     = "1452" // foreign key constraint fails
    mysqlErrCheckViolation = "3819" // check constraint violated
)

// hasErrorCode reports whether err carries the given MySQL error number.
// The driver formats errors as "Error <number> (<state>): ...", so a
// substring match on the number is sufficient and keeps the repositories
// free of driver-specific types.
func hasErrorCode(err error, code string) bool {
    return err != nil && strings.Contains(err.Error(), code)
}
