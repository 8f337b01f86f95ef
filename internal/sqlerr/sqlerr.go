// Package sqlerr handles database driver errors.
//
// It parses cryptic SQLSTATE codes from the Postgres driver and
// converts them into user-friendly application errors (e.g. a foreign
// key violation becomes a Bad Request with a readable message).
package sqlerr

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Code classifies a database error into the categories the
// application cares about.
type Code int

const (
	Other Code = iota
	UniqueViolation
	ForeignKeyViolation
	NotNullViolation
	CheckViolation
	InvalidTextRepresentation
	SerializationFailure
	DeadlockDetected
)

// Severity mirrors the Postgres error severity field.
type Severity int

const (
	SeverityError Severity = iota
	SeverityFatal
	SeverityPanic
)

// MapCode maps a Postgres SQLSTATE to a Code.
//
// SQLSTATE reference: class 23 is integrity constraint violations,
// 22P02 is invalid text representation (bad uuid/numeric casts), 40xxx
// are transaction rollbacks.
func MapCode(sqlstate string) Code {
	switch sqlstate {
	case "23505":
		return UniqueViolation
	case "23503":
		return ForeignKeyViolation
	case "23502":
		return NotNullViolation
	case "23514":
		return CheckViolation
	case "22P02":
		return InvalidTextRepresentation
	case "40001":
		return SerializationFailure
	case "40P01":
		return DeadlockDetected
	default:
		return Other
	}
}

// MapSeverity maps the Postgres severity string to a Severity.
func MapSeverity(severity string) Severity {
	switch severity {
	case "FATAL":
		return SeverityFatal
	case "PANIC":
		return SeverityPanic
	default:
		return SeverityError
	}
}

// Error is the normalized form of a Postgres error, carrying enough
// metadata (table, column, constraint) to build useful messages.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string

	driverErr *pgconn.PgError
}

func (e *Error) Error() string {
	if e.TableName != "" {
		return fmt.Sprintf("database error %s on table %s: %s", e.DatabaseCode, e.TableName, e.Message)
	}
	return fmt.Sprintf("database error %s: %s", e.DatabaseCode, e.Message)
}

// Unwrap exposes the original driver error for errors.As chains.
func (e *Error) Unwrap() error {
	if e.driverErr == nil {
		return nil
	}
	return e.driverErr
}
