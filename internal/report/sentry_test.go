package report_test

import (
	"errors"
	"os"
	"testing"

	"github.com/getsentry/sentry-go"

	"geocalc.onebusaway.org/internal/report"
)

func TestSetupSentry(t *testing.T) {
	t.Run("Valid DSN", func(t *testing.T) {
		os.Setenv("SENTRY_DSN", "https://public@sentry.example.com/1")
		defer os.Unsetenv("SENTRY_DSN")

		report.SetupSentry("testing", "test-version")
		report.FlushSentry()
	})

	t.Run("Empty DSN", func(t *testing.T) {
		os.Unsetenv("SENTRY_DSN")

		report.SetupSentry("testing", "test-version")
		report.ReportError(errors.New("ignored"), sentry.LevelWarning)
		report.FlushSentry()
	})
}

func TestOperationReportOptions(t *testing.T) {
	opts := report.OperationReportOptions("order", 12)

	if opts.Tags["operation"] != "order" {
		t.Errorf("expected operation tag 'order', got %q", opts.Tags["operation"])
	}
	if opts.ExtraContext["points"] != "12" {
		t.Errorf("expected points context '12', got %v", opts.ExtraContext["points"])
	}
	if opts.Level != sentry.LevelError {
		t.Errorf("expected level error, got %v", opts.Level)
	}

	// nil errors are ignored rather than reported
	report.ReportErrorWithSentryOptions(nil, opts)
}
