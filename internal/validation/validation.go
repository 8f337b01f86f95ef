// Package validation contains the logic for validating request data.
//
// It uses the `validator` library to enforce rules (like required
// fields, email formats, or decimal money amounts) defined in struct
// tags and extracts validation errors into a format the client can
// understand.
package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// validate is the shared validator instance used by all request schemas.
// Custom validators are registered once at init.
var validate = newValidator()

// Validator returns the shared validator instance.
//
// Request schemas use it in their Validate() methods:
//
//	func (r *CreateGiftRequest) Validate() error {
//	    return validation.Validator().Struct(r)
//	}
func Validator() *validator.Validate {
	return validate
}

func newValidator() *validator.Validate {
	v := validator.New()

	// amount: decimal string, strictly positive, at most 2 fraction
	// digits. Used for gift amounts and pledge totals.
	_ = v.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
		return isMoney(fl.Field().String(), true)
	})

	// money: decimal string, non-negative, at most 2 fraction digits.
	// Used for capacity estimates and other amounts where zero is valid.
	_ = v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		return isMoney(fl.Field().String(), false)
	})

	// currency: three-letter uppercase ISO 4217 currency code.
	_ = v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		return currencyRegex.MatchString(fl.Field().String())
	})

	return v
}

var currencyRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// isMoney reports whether s is a well-formed currency amount: a decimal
// string with at most two fraction digits, non-negative, and strictly
// positive when requirePositive is set.
func isMoney(s string, requirePositive bool) bool {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}
	if d.Exponent() < -2 {
		return false
	}
	if requirePositive {
		return d.IsPositive()
	}
	return !d.IsNegative()
}

// uuidRegex matches standard UUID format: xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// IsValidUUID checks whether a string matches UUID format.
//
// It validates format only, not UUID version/variant semantics.
func IsValidUUID(uuid string) bool {
	return uuidRegex.MatchString(uuid)
}
