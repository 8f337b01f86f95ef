// Package logger configures the application's logging, monitoring,
// and observability.
//
// It uses zerolog for structured logging and integrates with New
// Relic to forward logs, metrics, and traces. When no New Relic
// license key is configured every integration point degrades to a
// no-op so local development needs no external services.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/donorops/backend/internal/config"
	"github.com/newrelic/go-agent/v3/integrations/logcontext-v2/zerologWriter"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

// LoggerService owns the New Relic application instance.
//
// It exists so the rest of the codebase can ask "is APM configured?"
// in one place: GetApplication returns nil when New Relic is disabled
// and callers are expected to check for that.
type LoggerService struct {
	app *newrelic.Application
}

// NewLoggerService initializes New Relic from config.
//
// Returns a service with a nil application (and no error) when the
// license key is empty: observability is optional, a bad key is not.
func NewLoggerService(cfg *config.Config) (*LoggerService, error) {
	nr := cfg.Observability.NewRelic
	if nr.LicenseKey == "" {
		return &LoggerService{}, nil
	}

	opts := []newrelic.ConfigOption{
		newrelic.ConfigAppName(cfg.Observability.ServiceName),
		newrelic.ConfigLicense(nr.LicenseKey),
		newrelic.ConfigDistributedTracerEnabled(nr.DistributedTracingEnabled),
		newrelic.ConfigAppLogForwardingEnabled(nr.AppLogForwardingEnabled),
	}
	if nr.DebugLogging {
		opts = append(opts, newrelic.ConfigDebugLogger(os.Stderr))
	}

	app, err := newrelic.NewApplication(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize New Relic: %w", err)
	}

	return &LoggerService{app: app}, nil
}

// GetApplication returns the New Relic application, or nil when APM is
// not configured.
func (s *LoggerService) GetApplication() *newrelic.Application {
	if s == nil {
		return nil
	}
	return s.app
}

// Shutdown flushes buffered telemetry before the process exits. Safe
// to call when APM is not configured.
func (s *LoggerService) Shutdown() {
	if s == nil || s.app == nil {
		return
	}
	s.app.Shutdown(10 * time.Second)
}

// New builds the application's main logger from config.
//
// Format "console" gives human-readable output for local development;
// anything else is JSON. When New Relic log forwarding is active the
// output writer is wrapped so log lines carry trace linking metadata.
func New(cfg *config.Config, service *LoggerService) *zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Observability.GetLogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stderr
	if cfg.Observability.Logging.Format == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}

	if app := service.GetApplication(); app != nil && cfg.Observability.NewRelic.AppLogForwardingEnabled {
		w := zerologWriter.New(out, app)
		out = &w
	}

	logger := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", cfg.Observability.ServiceName).
		Str("env", cfg.Observability.Environment).
		Logger()

	return &logger
}

// WithTraceContext returns a logger enriched with the transaction's
// trace and span IDs so log lines can be correlated with distributed
// traces.
func WithTraceContext(logger zerolog.Logger, txn *newrelic.Transaction) zerolog.Logger {
	if txn == nil {
		return logger
	}
	md := txn.GetTraceMetadata()
	builder := logger.With()
	if md.TraceID != "" {
		builder = builder.Str("trace.id", md.TraceID)
	}
	if md.SpanID != "" {
		builder = builder.Str("span.id", md.SpanID)
	}
	return builder.Logger()
}
