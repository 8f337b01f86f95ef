// Package majorgifts defines the validated request and response shapes
// for the major gift development endpoints: donor records, gift
// records, and pledge schedules.
//
// Request types carry validator tags and implement
// validation.Validatable; handlers bind and validate them before any
// business logic runs. Amounts travel as decimal strings with at most
// two fraction digits, dates as YYYY-MM-DD strings, and timestamps as
// RFC 3339. Types here are stateless value objects with no I/O.
package majorgifts

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the wire format for calendar dates.
const DateFormat = "2006-01-02"

// parseDate converts a validated YYYY-MM-DD string into a time.Time.
// Callers run tag validation first, so a parse failure is a programmer
// error and yields the zero time.
func parseDate(s string) time.Time {
	t, _ := time.Parse(DateFormat, s)
	return t
}

// parseAmount converts a validated decimal string into a Decimal.
func parseAmount(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func formatDate(t time.Time) string {
	return t.Format(DateFormat)
}
