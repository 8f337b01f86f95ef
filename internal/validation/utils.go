package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/donorops/backend/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payload types that know how to
// validate themselves.
//
// Typical pattern:
//   - Define a request struct with validator tags (`validate:"required,email"`)
//   - Implement Validate() error that runs validator.Struct(req)
//   - Return validator.ValidationErrors (or CustomValidationErrors for
//     cross-field rules tags cannot express)
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue for a
// specific field, used for rules that cannot be expressed via tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that
// satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
//  1. c.Bind(payload) populates the request struct from body/params.
//  2. payload.Validate() applies validation rules.
//  3. Returns *errs.HTTPError (400) with field-level errors on failure.
//
// payload must be a pointer to a struct so c.Bind can populate it.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return errs.NewBadRequestError("Malformed request body", false, nil, nil, nil)
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewBadRequestError(msg, true, nil, fieldErrors, nil)
	}

	return nil
}

// validateStruct calls v.Validate() and extracts field errors if
// validation fails.
func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		customValidationErrors, ok := err.(CustomValidationErrors)
		if !ok {
			// Unknown error shape; surface it as a single general error.
			return "Validation failed", []errs.FieldError{{Field: "_", Error: err.Error()}}
		}
		for _, err := range customValidationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: err.Field,
				Error: err.Message,
			})
		}
	}

	// Convert validator.ValidationErrors into user-friendly messages.
	for _, err := range validationErrors {
		field := fieldName(err)
		var msg string

		switch err.Tag() {
		case "required":
			msg = "is required"

		case "min":
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", err.Param())
			}

		case "max":
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", err.Param())
			}

		case "gt":
			msg = fmt.Sprintf("must be greater than %s", err.Param())

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", err.Param())

		case "email":
			msg = "must be a valid email address"

		case "e164":
			msg = "must be a valid phone number with country code"

		case "uuid":
			msg = "must be a valid UUID"

		case "datetime":
			if err.Param() == "2006-01-02" {
				msg = "must be a date in YYYY-MM-DD format"
			} else {
				msg = "must be a valid RFC 3339 timestamp"
			}

		case "amount":
			msg = "must be a positive amount with at most 2 decimal places"

		case "money":
			msg = "must be a non-negative amount with at most 2 decimal places"

		case "currency":
			msg = "must be a 3-letter ISO 4217 currency code"

		case "dive":
			msg = "some items are invalid"

		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, err.Tag(), err.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, err.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return "Validation failed", fieldErrors
}

// fieldName derives the client-facing field name for an error. Struct
// fields are CamelCase but the wire format is snake_case, so the Go
// name is converted (GiftDate -> gift_date).
func fieldName(err validator.FieldError) string {
	return toSnakeCase(err.Field())
}

func toSnakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if r >= 'A' && r <= 'Z' {
			// Break before an upper rune when the previous rune is lower
			// ("GiftDate" -> gift_date) or when an acronym run ends
			// ("DonorID" -> donor_id, not donor_i_d).
			prevLower := i > 0 && runes[i-1] >= 'a' && runes[i-1] <= 'z'
			nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
			if i > 0 && (prevLower || nextLower) {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
