package sqlerr_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donorops/backend/internal/errs"
	"github.com/donorops/backend/internal/sqlerr"
)

func TestMapCode(t *testing.T) {
	assert.Equal(t, sqlerr.UniqueViolation, sqlerr.MapCode("23505"))
	assert.Equal(t, sqlerr.ForeignKeyViolation, sqlerr.MapCode("23503"))
	assert.Equal(t, sqlerr.NotNullViolation, sqlerr.MapCode("23502"))
	assert.Equal(t, sqlerr.CheckViolation, sqlerr.MapCode("23514"))
	assert.Equal(t, sqlerr.InvalidTextRepresentation, sqlerr.MapCode("22P02"))
	assert.Equal(t, sqlerr.SerializationFailure, sqlerr.MapCode("40001"))
	assert.Equal(t, sqlerr.DeadlockDetected, sqlerr.MapCode("40P01"))
	assert.Equal(t, sqlerr.Other, sqlerr.MapCode("53300"))
}

func TestHandleError_UniqueViolation(t *testing.T) {
	pgerr := &pgconn.PgError{
		Code:           "23505",
		Severity:       "ERROR",
		Message:        `duplicate key value violates unique constraint "users_email_key"`,
		TableName:      "users",
		ConstraintName: "users_email_key",
	}

	err := sqlerr.HandleError(pgerr)

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "USER_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A User with this Email already exists", httpErr.Message)
	assert.True(t, httpErr.Override)
}

func TestHandleError_ForeignKeyViolation(t *testing.T) {
	pgerr := &pgconn.PgError{
		Code:      "23503",
		Severity:  "ERROR",
		Message:   `insert or update on table "gifts" violates foreign key constraint`,
		TableName: "gifts",
	}

	err := sqlerr.HandleError(pgerr)

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "GIFT_NOT_FOUND", httpErr.Code)
	assert.Equal(t, "The referenced Gift does not exist", httpErr.Message)
}

func TestHandleError_ForeignKeyViolationUsesColumn(t *testing.T) {
	pgerr := &pgconn.PgError{
		Code:       "23503",
		Severity:   "ERROR",
		TableName:  "gifts",
		ColumnName: "donor_id",
	}

	err := sqlerr.HandleError(pgerr)

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, "The referenced Donor does not exist", httpErr.Message)
}

func TestHandleError_NotNullViolation(t *testing.T) {
	pgerr := &pgconn.PgError{
		Code:       "23502",
		Severity:   "ERROR",
		TableName:  "donors",
		ColumnName: "last_name",
	}

	err := sqlerr.HandleError(pgerr)

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, "DONOR_REQUIRED", httpErr.Code)
	assert.Equal(t, "The Last Name is required", httpErr.Message)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "last_name", httpErr.Errors[0].Field)
}

func TestHandleError_NoRows(t *testing.T) {
	err := sqlerr.HandleError(pgx.ErrNoRows)

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestHandleError_PassesThroughHTTPErrors(t *testing.T) {
	orig := errs.NewConflictError("Only active pledges can be cancelled", true, nil)
	assert.Same(t, error(orig), sqlerr.HandleError(orig))
}

func TestHandleError_UnknownErrorBecomesInternal(t *testing.T) {
	err := sqlerr.HandleError(errors.New("connection reset"))

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}

func TestConvertPgError(t *testing.T) {
	pgerr := &pgconn.PgError{
		Code:           "40P01",
		Severity:       "FATAL",
		Message:        "deadlock detected",
		TableName:      "pledge_installments",
		ConstraintName: "pledge_installments_pkey",
	}

	converted := sqlerr.ConvertPgError(pgerr)
	assert.Equal(t, sqlerr.DeadlockDetected, converted.Code)
	assert.Equal(t, sqlerr.SeverityFatal, converted.Severity)
	assert.Contains(t, converted.Error(), "pledge_installments")
	assert.Equal(t, error(pgerr), converted.Unwrap())
	assert.Equal(t, sqlerr.DeadlockDetected, sqlerr.ErrCode(converted))
	assert.Equal(t, sqlerr.Other, sqlerr.ErrCode(errors.New("plain")))
}
