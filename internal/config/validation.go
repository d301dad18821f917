package config

import "fmt"

func validate(c *Config) error {
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be > 0")
	}
	if c.CacheMaxSizeBytes <= 0 {
		return fmt.Errorf("cache max size must be > 0")
	}
	if c.MatchCutoff < 0 || c.MatchCutoff > 1 {
		return fmt.Errorf("match cutoff must be between 0 and 1")
	}
	if c.MaxCandidates <= 0 {
		return fmt.Errorf("max candidates must be > 0")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit rps and burst must be > 0")
	}
	return nil
}
