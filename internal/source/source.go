// Package source implements the Lexington, MA curbside collection data
// source: it resolves a street to its collection weekday and produces a
// holiday-adjusted schedule of upcoming pickup dates.
package source

import (
	"context"
	"time"

	"github.com/curbside-tools/lexington/internal/directory"
	"github.com/curbside-tools/lexington/internal/fetch"
	"github.com/curbside-tools/lexington/internal/holiday"
	"github.com/curbside-tools/lexington/pkg/models"
	"github.com/rs/zerolog/log"
)

// Town page URLs and fixed output labels.
const (
	Title       = "Lexington, MA"
	Description = "Town of Lexington, MA curbside single-stream trash/recycling/compost collection."
	InfoURL     = "https://lexingtonma.gov/239/Curbside-Collection"

	StreetScheduleURL = "https://lexingtonma.gov/248/Trash-Recycling-Collection-Schedule-by-S"
	HolidayURL        = "https://lexingtonma.gov/317/Official-Town-Holidays-Other-Closing-Day"

	CollectionLabel = "Trash, recycling, & compost"
	CollectionIcon  = "mdi:recycle"
)

// maxSuggestions caps the directory keys attached to a not-found error.
const maxSuggestions = 10

// Source produces the holiday-adjusted collection schedule for one street.
// Each Fetch call is self-contained: both pages are re-fetched and
// re-parsed, and nothing is cached across calls.
type Source struct {
	street   string // normalized user input
	fetcher  *fetch.Fetcher
	loader   *directory.Loader
	matcher  *directory.Matcher
	holidays *holiday.Schedule
	now      func() time.Time
}

// Option configures a Source
type Option func(*Source)

// WithNow overrides the clock, mainly for tests.
func WithNow(now func() time.Time) Option {
	return func(s *Source) { s.now = now }
}

// WithMatcher overrides the street matcher (cutoff / candidate cap).
func WithMatcher(m *directory.Matcher) Option {
	return func(s *Source) { s.matcher = m }
}

// WithURLs overrides the schedule and holiday page URLs. Empty strings keep
// the town defaults.
func WithURLs(scheduleURL, holidayURL string) Option {
	return func(s *Source) {
		if scheduleURL != "" {
			s.loader = directory.NewLoader(s.fetcher, scheduleURL)
		}
		if holidayURL != "" {
			s.holidays = holiday.NewSchedule(s.fetcher, holidayURL)
		}
	}
}

// New creates a Source for the given street.
//
// The street argument is validated here: an empty or blank street fails
// immediately with a required-argument condition, carrying directory
// suggestions when the directory is loadable.
func New(ctx context.Context, street string, f *fetch.Fetcher, opts ...Option) (*Source, error) {
	s := &Source{
		street:   directory.Normalize(street),
		fetcher:  f,
		loader:   directory.NewLoader(f, StreetScheduleURL),
		matcher:  directory.NewMatcher(0.6, 5),
		holidays: holiday.NewSchedule(f, HolidayURL),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.street == "" {
		serr := NewSourceError(ErrCodeStreetRequired, "no street supplied", ErrStreetRequired)
		if dir, err := s.loader.Load(ctx, true); err == nil && len(dir) > 0 {
			serr = serr.WithSuggestions(truncate(dir.Keys(), maxSuggestions))
		}
		return nil, serr
	}

	return s, nil
}

// Fetch runs the full pipeline: load the directory, resolve the street,
// load the holidays, and generate the schedule.
func (s *Source) Fetch(ctx context.Context) ([]models.Collection, error) {
	day, err := s.resolveWeekday(ctx)
	if err != nil {
		return nil, err
	}

	holidays, err := s.holidays.Load(ctx, true)
	if err != nil {
		return nil, NewSourceError(ErrCodeFetchError, "failed to load holiday page", err)
	}

	today := atMidnight(s.now())
	future := holiday.Future(holidays, today)
	if len(future) == 0 {
		// Without a future holiday there is no end-of-schedule boundary.
		return nil, NewSourceError(ErrCodeNoFutureHoliday, "cannot bound the schedule horizon", ErrNoFutureHoliday)
	}

	collections := buildSchedule(today, day, future)

	log.Debug().
		Str("street", s.street).
		Int("weekday", day).
		Int("collections", len(collections)).
		Msg("Schedule generated")

	return collections, nil
}

// resolveWeekday loads the directory once and resolves the configured
// street to a collection weekday: exact match first, then approximate
// matching with distinct zero/one/many outcomes.
func (s *Source) resolveWeekday(ctx context.Context) (int, error) {
	dir, err := s.loader.Load(ctx, true)
	if err != nil || len(dir) == 0 {
		// Directory unavailable: no suggestions are possible.
		return 0, NewSourceError(ErrCodeStreetNotFound, "street directory unavailable", ErrStreetNotFound)
	}

	if day, ok := s.matcher.Exact(dir, s.street); ok {
		log.Debug().Str("street", s.street).Int("weekday", day).Msg("Exact street match")
		return day, nil
	}

	candidates := s.matcher.Candidates(dir, s.street)
	switch len(candidates) {
	case 1:
		key := candidates[0].Key
		log.Debug().
			Str("street", s.street).
			Str("matched", key).
			Float64("score", candidates[0].Score).
			Msg("Approximate street match")
		return dir[key], nil
	case 0:
		return 0, NewSourceError(ErrCodeStreetNotFound, "no matching street", ErrStreetNotFound).
			WithSuggestions(truncate(dir.Keys(), maxSuggestions))
	default:
		keys := make([]string, len(candidates))
		for i, c := range candidates {
			keys[i] = c.Key
		}
		return 0, NewSourceError(ErrCodeStreetAmbiguous, "street matches multiple entries", ErrStreetAmbiguous).
			WithSuggestions(keys)
	}
}

// Street returns the normalized street this source was built for.
func (s *Source) Street() string {
	return s.street
}

func truncate(keys []string, n int) []string {
	if len(keys) > n {
		return keys[:n]
	}
	return keys
}
