package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel          = "info"
	DefaultJSONLog           = false
	DefaultUserAgent         = "Curbside/1.0 (https://github.com/curbside-tools/lexington)"
	DefaultHTTPTimeout       = 30 * time.Second
	DefaultRateLimitRPS      = 2.0
	DefaultRateLimitBurst    = 4
	DefaultCacheTTL          = 0 * time.Second // page cache disabled unless requested
	DefaultCacheMaxSizeBytes = 10 * 1024 * 1024
	DefaultMatchCutoff       = 0.6
	DefaultMaxCandidates     = 5
)
