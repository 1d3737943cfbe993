package config

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"

	"geocalc.onebusaway.org/internal/report"
	"geocalc.onebusaway.org/internal/utils"
)

// DefaultMaxRetries bounds remote config fetches.
const DefaultMaxRetries = 3

// ConfigService holds dependencies and provides config operations.
type ConfigService struct {
	Logger *slog.Logger
	Client *http.Client
	Config *Config
}

// NewConfigService creates a new ConfigService instance with the provided logger and HTTP client.
func NewConfigService(logger *slog.Logger, client *http.Client, config *Config) *ConfigService {
	return &ConfigService{
		Logger: logger,
		Client: client,
		Config: config,
	}
}

// RefreshConfig blocks, reloading settings from url every interval until
// ctx is canceled.
func (cs *ConfigService) RefreshConfig(ctx context.Context, url, authUser, authPass string, interval time.Duration) {
	refreshConfig(ctx, cs.Client, url, authUser, authPass, cs.Config, cs.Logger, interval, DefaultMaxRetries)
}

// LoadConfigFromFile reads settings from filePath.
func LoadConfigFromFile(filePath string) (Settings, error) {
	settings, err := loadConfigFromFile(filePath)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to load config from file %s: %w", filePath, err)
	}
	return settings, nil
}

// LoadConfigFromURL fetches settings from url.
func LoadConfigFromURL(ctx context.Context, client *http.Client, url, authUser, authPass string) (Settings, error) {
	settings, err := loadConfigFromURL(ctx, client, url, authUser, authPass, DefaultMaxRetries)
	if err != nil {
		err := fmt.Errorf("failed to load config from URL %s: %w", url, err)
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  utils.MakeMap("config_url", url),
			Level: sentry.LevelError,
		})
		return Settings{}, err
	}
	return settings, nil
}
