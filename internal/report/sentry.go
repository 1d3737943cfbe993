package report

import (
	"log"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
)

// SetupSentry initialises the global Sentry client from SENTRY_DSN. An empty
// DSN leaves the client disabled, which is what tests and local runs get.
func SetupSentry(env, version string) {
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              os.Getenv("SENTRY_DSN"),
		Environment:      env,
		Release:          "geocalc@" + version,
		EnableTracing:    true,
		Debug:            env == "development",
		TracesSampleRate: 1.0,
	}); err != nil {
		log.Fatalf("sentry.Init: %s", err)
	}
	sentry.CaptureMessage("Geocalc started")
}

func FlushSentry() {
	sentry.Flush(2 * time.Second)
}
