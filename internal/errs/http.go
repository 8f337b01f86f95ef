// Package errs defines the error types returned to API clients.
//
// Every error that leaves the service is shaped as an HTTPError so
// clients receive a consistent JSON structure: a machine-readable code,
// a human-readable message, optional field-level validation errors, and
// an optional action hint for the frontend.
package errs

import "strings"

// FieldError represents a field-level validation error.
//
// Example:
//
//	{ "field": "email", "error": "must be a valid email address" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ActionType is a string-based enum describing what the client should do.
type ActionType string

const (
	// ActionTypeRedirect tells the client to navigate somewhere;
	// Value holds the target URL or route.
	ActionTypeRedirect ActionType = "redirect"
)

// Action describes an optional follow-up instruction for the client,
// e.g. "redirect to login" after a session expires.
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// HTTPError is the error type serialized into API responses.
//
// Fields:
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST", "GIFT_NOT_FOUND")
//   - Message: human-friendly message
//   - Status: HTTP status code
//   - Override: when true, the client may show Message verbatim to the user
//   - Errors: per-field validation errors
//   - Action: optional client instruction
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors"`
	Action   *Action      `json:"action"`
}

// Error makes *HTTPError satisfy the built-in error interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also a *HTTPError. It matches on type
// only, not on Code or Status, so errors.Is can be used as a broad
// "is this one of ours" check.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of this HTTPError with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
		Action:   e.Action,
	}
}

// MakeUpperCaseWithUnderscores converts a string into
// UPPER_CASE_WITH_UNDERSCORES form, used to derive stable error codes
// from HTTP status text ("Bad Request" -> "BAD_REQUEST").
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
