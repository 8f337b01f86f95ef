package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewPgxLogger builds the logger used for SQL query logging via the
// pgx tracelog adapter. It writes console output, which is only wired
// up in the local environment where the noise is wanted.
func NewPgxLogger(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Str("component", "pgx").
		Logger()
}

// Tracelog levels as defined by pgx/v5/tracelog. Mirrored here as
// plain ints so this package does not import the driver.
const (
	pgxLogLevelNone  = 1
	pgxLogLevelError = 2
	pgxLogLevelWarn  = 3
	pgxLogLevelInfo  = 4
	pgxLogLevelDebug = 5
	pgxLogLevelTrace = 6
)

// GetPgxTraceLogLevel maps a zerolog level to the equivalent pgx
// tracelog level.
func GetPgxTraceLogLevel(level zerolog.Level) int {
	switch level {
	case zerolog.TraceLevel:
		return pgxLogLevelTrace
	case zerolog.DebugLevel:
		return pgxLogLevelDebug
	case zerolog.InfoLevel:
		return pgxLogLevelInfo
	case zerolog.WarnLevel:
		return pgxLogLevelWarn
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		return pgxLogLevelError
	default:
		return pgxLogLevelNone
	}
}
