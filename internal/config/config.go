package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// HTTP
	HTTPTimeout time.Duration
	UserAgent   string

	// Rate Limiting
	RateLimitRPS   float64
	RateLimitBurst int

	// Page cache (interactive CLI use only; the source always fetches fresh)
	CacheTTL          time.Duration
	CacheMaxSizeBytes int64

	// Street matching
	MatchCutoff   float64
	MaxCandidates int

	// Page URL overrides (defaults point at the town site)
	ScheduleURL string
	HolidayURL  string
}

// Load builds a Config by combining defaults, environment variables, and CLI flags.
// Caller should pass the root *cobra.Command so flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := &Config{
		LogLevel:          DefaultLogLevel,
		JSONLog:           DefaultJSONLog,
		HTTPTimeout:       DefaultHTTPTimeout,
		UserAgent:         DefaultUserAgent,
		RateLimitRPS:      DefaultRateLimitRPS,
		RateLimitBurst:    DefaultRateLimitBurst,
		CacheTTL:          DefaultCacheTTL,
		CacheMaxSizeBytes: DefaultCacheMaxSizeBytes,
		MatchCutoff:       DefaultMatchCutoff,
		MaxCandidates:     DefaultMaxCandidates,
	}

	// Override from environment variables (simple helpers)
	if v := os.Getenv("CURBSIDE_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("CURBSIDE_SCHEDULE_URL"); v != "" {
		cfg.ScheduleURL = v
	}
	if v := os.Getenv("CURBSIDE_HOLIDAY_URL"); v != "" {
		cfg.HolidayURL = v
	}

	// Read CLI flags if provided
	if cmd != nil {
		if f := cmd.Flags().Lookup("user-agent"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.UserAgent = s
			}
		}
		if f := cmd.Flags().Lookup("timeout"); f != nil {
			if s := f.Value.String(); s != "" {
				if d, err := time.ParseDuration(s); err == nil {
					cfg.HTTPTimeout = d
				}
			}
		}
		if f := cmd.Flags().Lookup("cache-ttl"); f != nil {
			if s := f.Value.String(); s != "" {
				if d, err := time.ParseDuration(s); err == nil {
					cfg.CacheTTL = d
				}
			}
		}
		if f := cmd.Flags().Lookup("cutoff"); f != nil {
			if s := f.Value.String(); s != "" {
				var c float64
				if _, err := fmt.Sscanf(s, "%g", &c); err == nil {
					cfg.MatchCutoff = c
				}
			}
		}
		if f := cmd.Flags().Lookup("json"); f != nil {
			if f.Value.String() == "true" {
				cfg.JSONLog = true
			}
		}
		if f := cmd.Flags().Lookup("verbose"); f != nil {
			if f.Value.String() == "true" {
				cfg.LogLevel = "debug"
			}
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
