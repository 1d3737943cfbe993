package config

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/getsentry/sentry-go"

	"geocalc.onebusaway.org/internal/report"
	"geocalc.onebusaway.org/internal/utils"
)

// ValidateConfigFlags ensures that at most one configuration source is
// specified: either a config file "--config-file" or a remote config URL
// "--config-url". Running with neither uses the built-in settings.
//
// Returns an error if more than one input method is specified.
func ValidateConfigFlags(configFile, configURL *string) error {
	if (*configFile != "" && *configURL != "") || (*configFile != "" && len(flag.Args()) > 0) || (*configURL != "" && len(flag.Args()) > 0) {
		return fmt.Errorf("only one of --config-file or --config-url can be specified")
	}
	return nil
}

// parseSettings decodes and validates a settings document.
func parseSettings(data []byte) (Settings, error) {
	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("failed to unmarshal JSON: %v", err)
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// refreshConfig periodically fetches settings from a remote URL and swaps
// them into cfg. Errors are logged and reported, and the previous settings
// stay in effect until a fetch succeeds.
//
// The routine stops when the context is canceled.
func refreshConfig(ctx context.Context, client *http.Client, configURL, configAuthUser, configAuthPass string, cfg *Config, logger *slog.Logger, interval time.Duration, maxRetries int) {
	for {
		settings, err := loadConfigFromURL(ctx, client, configURL, configAuthUser, configAuthPass, maxRetries)
		if err != nil {
			if ctx.Err() == nil {
				report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
					Tags:  utils.MakeMap("config_url", configURL),
					Level: sentry.LevelError,
				})
				logger.Error("Failed to refresh remote config", "error", err)
			}
		} else {
			cfg.UpdateConfig(settings)
			logger.Info("Successfully refreshed configuration", "units", len(settings.UnitTable()))
		}

		select {
		case <-ctx.Done():
			logger.Info("Stopping config refresh routine")
			return
		case <-time.After(interval):
		}
	}
}

// loadConfigFromFile reads a JSON settings file from disk.
//
// This function is used when the application is configured with the
// --config-file flag.
func loadConfigFromFile(filePath string) (Settings, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  utils.MakeMap("file_path", filePath),
			Level: sentry.LevelError,
		})
		return Settings{}, fmt.Errorf("failed to read config file: %v", err)
	}

	settings, err := parseSettings(data)
	if err != nil {
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  utils.MakeMap("file_path", filePath),
			Level: sentry.LevelError,
		})
		return Settings{}, err
	}

	return settings, nil
}

// loadConfigFromURL fetches a JSON settings document from a remote HTTP(S)
// endpoint, using the provided client and optional basic authentication.
func loadConfigFromURL(ctx context.Context, client *http.Client, url, authUser, authPass string, maxRetries int) (Settings, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  utils.MakeMap("config_url", url),
			Level: sentry.LevelError,
		})
		return Settings{}, fmt.Errorf("failed to create request: %v", err)
	}

	if authUser != "" && authPass != "" {
		req.SetBasicAuth(authUser, authPass)
	}

	resp, err := DoWithBackoff(ctx, client, req, maxRetries)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to fetch remote config: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Settings{}, fmt.Errorf("remote config returned status: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read remote config: %v", err)
	}

	return parseSettings(data)
}
