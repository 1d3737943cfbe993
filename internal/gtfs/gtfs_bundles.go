package gtfs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	remoteGtfs "github.com/jamespfennell/gtfs"

	"geocalc.onebusaway.org/internal/config"
	"geocalc.onebusaway.org/internal/metrics"
	"geocalc.onebusaway.org/internal/report"
	"geocalc.onebusaway.org/internal/utils"
)

// downloadGTFSBundle fetches the bundle at url and, when cacheDir is set,
// writes a timestamped copy there so a later start can fall back to it.
func downloadGTFSBundle(ctx context.Context, client *http.Client, url, cacheDir string, maxRetries int) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", url, err)
	}

	resp, err := config.DoWithBackoff(ctx, client, req, maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to make GET request to %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected response status %d when downloading GTFS bundle from %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read GTFS bundle response body from %s: %w", url, err)
	}

	if cacheDir != "" {
		path := utils.BundleCachePath(cacheDir, url, time.Now())
		if err := os.WriteFile(path, data, 0o644); err != nil {
			// A failed cache write only costs the fallback; the download is still good.
			report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
				Tags:  bundleReportTags(url, cacheDir),
				Level: sentry.LevelWarning,
				ExtraContext: map[string]interface{}{
					"cache_path": path,
				},
			})
		}
	}
	return data, nil
}

// readCachedBundle returns the newest cached copy of the bundle at url.
func readCachedBundle(cacheDir, url string) ([]byte, string, error) {
	if cacheDir == "" {
		return nil, "", errors.New("no cache directory configured")
	}
	path, err := utils.GetLastCachedFile(cacheDir, utils.BundleCachePrefix(url))
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	return data, path, nil
}

func parseGTFSBundle(data []byte) (*remoteGtfs.Static, error) {
	static, err := remoteGtfs.ParseStatic(data, remoteGtfs.ParseStaticOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to parse GTFS static data: %w", err)
	}
	return static, nil
}

// loadGTFSBundle downloads, parses and indexes the bundle at url. When the
// download fails the newest cached copy is used instead.
func loadGTFSBundle(ctx context.Context, client *http.Client, url, cacheDir string, index *StopIndex, logger *slog.Logger, maxRetries int) error {
	data, err := downloadGTFSBundle(ctx, client, url, cacheDir, maxRetries)
	if err != nil {
		logger.Warn("Failed to download GTFS bundle, trying cache", "gtfs_url", url, "error", err)

		cached, path, cacheErr := readCachedBundle(cacheDir, url)
		if cacheErr != nil {
			return fmt.Errorf("%w; no cached bundle: %v", err, cacheErr)
		}
		logger.Info("Using cached GTFS bundle", "path", path)
		data = cached
	}

	static, err := parseGTFSBundle(data)
	if err != nil {
		return err
	}

	n := index.Replace(static)
	metrics.GtfsStopsIndexed.Set(float64(n))
	logger.Info("Indexed GTFS stops", "gtfs_url", url, "stops", n)
	return nil
}

// refreshGTFSBundles reloads the bundle at url every interval until ctx is
// canceled. A failing feed is skipped until its backoff expires.
func refreshGTFSBundles(ctx context.Context, client *http.Client, url, cacheDir string, index *StopIndex, backoff *config.BackoffStore, logger *slog.Logger, interval time.Duration, maxRetries int) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping GTFS bundle refresh routine")
			return
		case <-ticker.C:
			if backoff.ShouldSkip(url, time.Now()) {
				continue
			}
			logger.Info("Refreshing GTFS bundle", "gtfs_url", url)
			if err := loadGTFSBundle(ctx, client, url, cacheDir, index, logger, maxRetries); err != nil {
				backoff.UpdateBackoff(url)
				report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
					Tags:  bundleReportTags(url, cacheDir),
					Level: sentry.LevelError,
				})
				logger.Error("Failed to refresh GTFS bundle", "gtfs_url", url, "error", err)
				continue
			}
			backoff.ResetBackoff(url)
		}
	}
}

// bundleReportTags are the Sentry tags attached to bundle failures.
func bundleReportTags(url, cacheDir string) map[string]string {
	return utils.MakeMapPairs("gtfs_url", url, "cache_dir", cacheDir)
}
