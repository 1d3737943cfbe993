package utils

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"

	"geocalc.onebusaway.org/internal/report"
)

// BundleCachePrefix returns the file name prefix used for cached copies of
// the bundle at url. The hash keeps bundles from different feeds apart.
func BundleCachePrefix(url string) string {
	hash := sha1.Sum([]byte(url))
	return fmt.Sprintf("gtfs_%s_", hex.EncodeToString(hash[:]))
}

// BundleCachePath returns a new timestamped cache path for the bundle at url.
func BundleCachePath(cacheDir, url string, now time.Time) string {
	return filepath.Join(cacheDir, fmt.Sprintf("%s%d.zip", BundleCachePrefix(url), now.Unix()))
}

// GetLastCachedFile returns the most recently modified file in cacheDir
// whose name starts with prefix.
func GetLastCachedFile(cacheDir, prefix string) (string, error) {
	files, err := os.ReadDir(cacheDir)
	if err != nil {
		return "", err
	}

	var lastModTime time.Time
	var lastModFile string

	for _, file := range files {
		if !file.IsDir() && strings.HasPrefix(file.Name(), prefix) {
			fileInfo, err := file.Info()
			if err != nil {
				return "", err
			}
			if fileInfo.ModTime().After(lastModTime) {
				lastModTime = fileInfo.ModTime()
				lastModFile = file.Name()
			}
		}
	}

	if lastModFile == "" {
		return "", fmt.Errorf("no cached files found with prefix %s", prefix)
	}

	return filepath.Join(cacheDir, lastModFile), nil
}

// CreateCacheDirectory ensures the cache directory exists, creating it if necessary.
func CreateCacheDirectory(cacheDir string, logger *slog.Logger) error {
	stat, err := os.Stat(cacheDir)

	if err != nil {
		if os.IsNotExist(err) {
			if err := os.MkdirAll(cacheDir, os.ModePerm); err != nil {
				report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
					Level: sentry.LevelError,
					ExtraContext: map[string]interface{}{
						"cache_dir": cacheDir,
					},
				})
				return err
			}
			logger.Info("Created cache directory", "cache_dir", cacheDir)
			return nil
		}
		return err
	}
	if !stat.IsDir() {
		err := fmt.Errorf("%s is not a directory", cacheDir)
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Level: sentry.LevelError,
			ExtraContext: map[string]interface{}{
				"cache_dir": cacheDir,
			},
		})
		return err
	}
	return nil
}
