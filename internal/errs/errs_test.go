package errs_test

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donorops/backend/internal/errs"
)

func TestErrorConstructors(t *testing.T) {
	cases := []struct {
		name   string
		err    *errs.HTTPError
		status int
		code   string
	}{
		{"unauthorized", errs.NewUnauthorizedError("Invalid email or password", true), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", errs.NewForbiddenError("Insufficient permissions", true), http.StatusForbidden, "FORBIDDEN"},
		{"bad request", errs.NewBadRequestError("Malformed request body", false, nil, nil, nil), http.StatusBadRequest, "BAD_REQUEST"},
		{"not found", errs.NewNotFoundError("Donor not found", true, nil), http.StatusNotFound, "NOT_FOUND"},
		{"conflict", errs.NewConflictError("Email already in use", true, nil), http.StatusConflict, "CONFLICT"},
		{"too many requests", errs.NewTooManyRequestsError("Too many attempts, try again later"), http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
		{"internal", errs.NewInternalServerError(), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.NotNil(t, tc.err)
			assert.Equal(t, tc.status, tc.err.Status)
			assert.Equal(t, tc.code, tc.err.Code)
			assert.NotEmpty(t, tc.err.Message)
		})
	}
}

func TestCustomCodeOverride(t *testing.T) {
	code := "DONOR_NOT_FOUND"
	err := errs.NewNotFoundError("Donor not found", true, &code)
	assert.Equal(t, "DONOR_NOT_FOUND", err.Code)
}

func TestHTTPErrorIs(t *testing.T) {
	wrapped := errors.Wrap(errs.NewNotFoundError("Gift not found", true, nil), "lookup failed")

	var httpErr *errs.HTTPError
	require.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)

	assert.True(t, errors.Is(wrapped, &errs.HTTPError{}))
	assert.False(t, errors.Is(errors.New("plain"), &errs.HTTPError{}))
}

func TestWithMessage(t *testing.T) {
	orig := errs.NewConflictError("Email already in use", true, nil)
	changed := orig.WithMessage("Pledge belongs to a different donor")

	assert.Equal(t, "Email already in use", orig.Message)
	assert.Equal(t, "Pledge belongs to a different donor", changed.Message)
	assert.Equal(t, orig.Status, changed.Status)
	assert.Equal(t, orig.Code, changed.Code)
}

func TestValidationError(t *testing.T) {
	err := errs.ValidationError(errors.New("installment count must be at least 1"))
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "Validation failed: installment count must be at least 1", err.Message)
}

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", errs.MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "TOO_MANY_REQUESTS", errs.MakeUpperCaseWithUnderscores("Too Many Requests"))
}
