package validation_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donorops/backend/internal/errs"
	"github.com/donorops/backend/internal/validation"
)

type sampleRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Amount      string `json:"amount" validate:"required,amount"`
	Capacity    string `json:"capacity" validate:"omitempty,money"`
	Currency    string `json:"currency" validate:"omitempty,currency"`
	DonorID     string `json:"donor_id" validate:"omitempty,uuid"`
	GiftDate    string `json:"gift_date" validate:"omitempty,datetime=2006-01-02"`
	Stage       string `json:"stage" validate:"omitempty,oneof=prospect cultivation"`
	Description string `json:"description" validate:"omitempty,max=10"`
}

func (r *sampleRequest) Validate() error {
	return validation.Validator().Struct(r)
}

func TestAmountTag(t *testing.T) {
	valid := []string{"1", "0.01", "250.00", "99999.99", "1000000"}
	invalid := []string{"0", "-5", "10.123", "abc", "", "1,000"}

	for _, v := range valid {
		req := &sampleRequest{Email: "a@b.co", Amount: v}
		assert.NoError(t, req.Validate(), "amount %q should be valid", v)
	}
	for _, v := range invalid {
		req := &sampleRequest{Email: "a@b.co", Amount: v}
		assert.Error(t, req.Validate(), "amount %q should be rejected", v)
	}
}

func TestMoneyTagAllowsZero(t *testing.T) {
	req := &sampleRequest{Email: "a@b.co", Amount: "10", Capacity: "0"}
	assert.NoError(t, req.Validate())

	req.Capacity = "-0.01"
	assert.Error(t, req.Validate())

	req.Capacity = "50000.555"
	assert.Error(t, req.Validate())
}

func TestCurrencyTag(t *testing.T) {
	req := &sampleRequest{Email: "a@b.co", Amount: "10", Currency: "USD"}
	assert.NoError(t, req.Validate())

	for _, bad := range []string{"usd", "US", "DOLLARS", "U$D"} {
		req.Currency = bad
		assert.Error(t, req.Validate(), "currency %q should be rejected", bad)
	}
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, validation.IsValidUUID("a3bb189e-8bf9-3888-9912-ace4e6543002"))
	assert.True(t, validation.IsValidUUID("A3BB189E-8BF9-3888-9912-ACE4E6543002"))
	assert.False(t, validation.IsValidUUID("a3bb189e8bf938889912ace4e6543002"))
	assert.False(t, validation.IsValidUUID("not-a-uuid"))
	assert.False(t, validation.IsValidUUID(""))
}

func TestBindAndValidate_FieldErrorsUseSnakeCase(t *testing.T) {
	e := echo.New()
	body := `{"email":"not-an-email","amount":"0","donor_id":"nope","gift_date":"15/01/2026"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	err := validation.BindAndValidate(c, &sampleRequest{})
	require.Error(t, err)

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)

	fields := make(map[string]string, len(httpErr.Errors))
	for _, fe := range httpErr.Errors {
		fields[fe.Field] = fe.Error
	}
	assert.Equal(t, "must be a valid email address", fields["email"])
	assert.Equal(t, "must be a positive amount with at most 2 decimal places", fields["amount"])
	assert.Equal(t, "must be a valid UUID", fields["donor_id"])
	assert.Equal(t, "must be a date in YYYY-MM-DD format", fields["gift_date"])
}

func TestBindAndValidate_MalformedBody(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	err := validation.BindAndValidate(c, &sampleRequest{})
	require.Error(t, err)

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "Malformed request body", httpErr.Message)
}

func TestBindAndValidate_Valid(t *testing.T) {
	e := echo.New()
	body := `{"email":"officer@donorops.io","amount":"250.00","currency":"USD","stage":"prospect"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	assert.NoError(t, validation.BindAndValidate(c, &sampleRequest{}))
}

func TestCustomValidationErrors(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	err := validation.BindAndValidate(c, &crossFieldRequest{})
	require.Error(t, err)

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "ends_at", httpErr.Errors[0].Field)
	assert.Equal(t, "must be after starts_at", httpErr.Errors[0].Error)
}

type crossFieldRequest struct{}

func (r *crossFieldRequest) Validate() error {
	return validation.CustomValidationErrors{
		{Field: "ends_at", Message: "must be after starts_at"},
	}
}
