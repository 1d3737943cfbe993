package app

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"

	"geocalc.onebusaway.org/internal/report"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// StartObaStatusChecks pings the configured OneBusAway server every
// interval until ctx is canceled. Nothing is checked while no server is
// configured.
func (app *Application) StartObaStatusChecks(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				app.checkObaStatus(ctx)
			}
		}
	}()
}

func (app *Application) checkObaStatus(ctx context.Context) {
	p, ok := app.stopResolver().(pinger)
	if !ok {
		return
	}

	if err := p.Ping(ctx); err != nil {
		settings := app.ConfigService.Config.GetSettings()
		app.Logger.Error("OneBusAway server is not responding", "oba_base_url", settings.ObaBaseURL, "error", err)
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags: map[string]string{
				"oba_base_url": settings.ObaBaseURL,
			},
			Level: sentry.LevelWarning,
		})
	}
}
