// Package app provides the core application initialization and lifecycle management.
package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/curbside-tools/lexington/internal/cache"
	"github.com/curbside-tools/lexington/internal/config"
	"github.com/curbside-tools/lexington/internal/directory"
	"github.com/curbside-tools/lexington/internal/fetch"
	"github.com/curbside-tools/lexington/internal/ratelimit"
	"github.com/curbside-tools/lexington/internal/source"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Application holds all application dependencies and manages their lifecycle.
//
// It is created once at startup and shared across all CLI commands.
// Use Close() to ensure proper resource cleanup on shutdown.
type Application struct {
	Config      *config.Config
	Logger      *zerolog.Logger
	Cache       cache.Cache
	RateLimiter ratelimit.RateLimiter
	HTTPClient  *http.Client
	Fetcher     *fetch.Fetcher
	startTime   time.Time
}

// New creates and initializes a new Application with all dependencies.
//
// It performs the following initialization steps:
//   - Configures logging based on the provided config
//   - Creates the in-memory page cache
//   - Creates the rate limiter for per-host request throttling
//   - Initializes the HTTP client with proper timeouts
//   - Creates the page fetcher with all dependencies
//
// If any step fails, an error is returned and no resources are allocated.
func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	// Initialize logger based on config
	logLevel := zerolog.ErrorLevel // default: suppress non-verbose info logs
	switch cfg.LogLevel {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	// Treat "info" as non-verbose (don't display info logs unless -v is used)
	default:
		logLevel = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	var logWriter io.Writer
	if cfg.JSONLog {
		logWriter = os.Stderr
	} else {
		logWriter = zerolog.NewConsoleWriter()
	}

	logger := log.Output(logWriter).With().Timestamp().Logger()

	logger.Debug().
		Str("level", cfg.LogLevel).
		Bool("json", cfg.JSONLog).
		Msg("Logger initialized")

	memCache := cache.NewMemoryCache(cfg.CacheMaxSizeBytes)

	rateLimiter := ratelimit.NewDomainLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	logger.Debug().
		Float64("rps", cfg.RateLimitRPS).
		Int("burst", cfg.RateLimitBurst).
		Msg("Rate limiter initialized")

	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 4,
			IdleConnTimeout:     90 * time.Second,
		},
	}
	logger.Debug().
		Dur("timeout", cfg.HTTPTimeout).
		Msg("HTTP client initialized")

	fetcher := fetch.New(
		memCache,
		rateLimiter,
		httpClient,
		cfg.UserAgent,
		cfg.CacheTTL,
	)

	app := &Application{
		Config:      cfg,
		Logger:      &logger,
		Cache:       memCache,
		RateLimiter: rateLimiter,
		HTTPClient:  httpClient,
		Fetcher:     fetcher,
		startTime:   time.Now(),
	}

	logger.Debug().Msg("Application initialized")
	return app, nil
}

// NewSource builds a Source for the given street using the application's
// fetcher and configuration. URL overrides from config apply here.
func (a *Application) NewSource(ctx context.Context, street string) (*source.Source, error) {
	matcher := directory.NewMatcher(a.Config.MatchCutoff, a.Config.MaxCandidates)
	return source.New(ctx, street, a.Fetcher,
		source.WithMatcher(matcher),
		source.WithURLs(a.Config.ScheduleURL, a.Config.HolidayURL),
	)
}

// ScheduleURL returns the effective street schedule page URL.
func (a *Application) ScheduleURL() string {
	if a.Config.ScheduleURL != "" {
		return a.Config.ScheduleURL
	}
	return source.StreetScheduleURL
}

// HolidayURL returns the effective holiday page URL.
func (a *Application) HolidayURL() string {
	if a.Config.HolidayURL != "" {
		return a.Config.HolidayURL
	}
	return source.HolidayURL
}

// Close gracefully shuts down the application and all its resources.
//
// Any errors during shutdown are logged but do not prevent other shutdown steps.
func (a *Application) Close(ctx context.Context) error {
	// Close cache
	if a.Cache != nil {
		a.Cache.Close()
	}

	// Close HTTP client (connection pooling cleanup)
	if a.HTTPClient != nil {
		a.HTTPClient.CloseIdleConnections()
	}

	a.Logger.Debug().Dur("uptime", time.Since(a.startTime)).Msg("Application shutdown complete")
	return nil
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}
