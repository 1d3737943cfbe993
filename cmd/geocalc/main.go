package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"

	"geocalc.onebusaway.org/internal/app"
	"geocalc.onebusaway.org/internal/config"
	"geocalc.onebusaway.org/internal/report"
	"geocalc.onebusaway.org/internal/utils"
)

const version = "1.0.0"

func main() {
	var (
		port     int
		env      string
		cacheDir string
	)
	flag.IntVar(&port, "port", 4000, "API server port")
	flag.StringVar(&env, "env", "development", "Environment (development|staging|production)")
	flag.StringVar(&cacheDir, "cache-dir", "cache", "Directory for downloaded GTFS bundles")

	var (
		configFile = flag.String("config-file", "", "Path to a local JSON configuration file")
		configURL  = flag.String("config-url", "", "URL to a remote JSON configuration file")
	)

	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using environment variables")
	}

	configAuthUser := os.Getenv("CONFIG_AUTH_USER")
	configAuthPass := os.Getenv("CONFIG_AUTH_PASS")

	if err := config.ValidateConfigFlags(configFile, configURL); err != nil {
		fmt.Println("Error:", err)
		flag.Usage()
		os.Exit(1)
	}

	report.SetupSentry(env, version)
	defer report.FlushSentry()
	report.ConfigureScope(env, version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := app.NewPooledClient()

	var (
		settings config.Settings
		err      error
	)
	switch {
	case *configFile != "":
		settings, err = config.LoadConfigFromFile(*configFile)
	case *configURL != "":
		settings, err = config.LoadConfigFromURL(ctx, client, *configURL, configAuthUser, configAuthPass)
	default:
		logger.Info("No configuration provided, using built-in units")
	}
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		report.FlushSentry()
		os.Exit(1)
	}

	cfg := config.NewConfig(port, env, settings)
	application := app.New(cfg, logger, client, cacheDir, version)

	if settings.GtfsURL != "" {
		if err := utils.CreateCacheDirectory(cacheDir, logger); err != nil {
			logger.Error("Failed to create cache directory", "error", err)
			report.FlushSentry()
			os.Exit(1)
		}

		// Stop ID input stays unavailable until a bundle loads; the server
		// still starts so coordinate input keeps working.
		if err := application.GtfsService.LoadBundle(ctx, settings.GtfsURL); err != nil {
			logger.Error("Failed to load GTFS bundle", "gtfs_url", settings.GtfsURL, "error", err)
			report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
				Tags:  utils.MakeMap("gtfs_url", settings.GtfsURL),
				Level: sentry.LevelError,
			})
		}
		go application.GtfsService.RefreshBundles(ctx, settings.GtfsURL, 24*time.Hour)
	}

	if *configURL != "" {
		go application.ConfigService.RefreshConfig(ctx, *configURL, configAuthUser, configAuthPass, time.Minute)
	}

	application.StartObaStatusChecks(ctx, 30*time.Second)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      application.Routes(ctx),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shut down server", "error", err)
		}
	}()

	logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env)
	err = srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		logger.Info("server stopped")
		return
	}

	report.ReportError(err, sentry.LevelFatal)
	report.FlushSentry()
	logger.Error(err.Error())
	os.Exit(1)
}
