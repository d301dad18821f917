// Package holiday loads the town's official holiday and closing-day page.
package holiday

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/curbside-tools/lexington/internal/fetch"
	"github.com/curbside-tools/lexington/pkg/models"
	"github.com/rs/zerolog/log"
)

// dateLayout matches the holiday table's date column, e.g.
// "Thursday, July 4, 2024".
const dateLayout = "Monday, January 2, 2006"

// Schedule fetches and parses the holiday page.
type Schedule struct {
	fetcher *fetch.Fetcher
	url     string
}

// NewSchedule creates a Schedule for the given holiday page URL
func NewSchedule(f *fetch.Fetcher, url string) *Schedule {
	return &Schedule{fetcher: f, url: url}
}

// Load fetches the holiday page and returns all parseable holidays in
// chronological order. Transport failures propagate to the caller.
func (s *Schedule) Load(ctx context.Context, fresh bool) ([]models.Holiday, error) {
	doc, err := s.fetcher.Document(ctx, models.FetchOptions{URL: s.url, Fresh: fresh})
	if err != nil {
		return nil, fmt.Errorf("holiday page: %w", err)
	}

	return Parse(doc), nil
}

// Parse extracts holidays from the alternating-row tables on the holiday
// page. The second cell of each body row holds the date; rows that don't
// parse are dropped silently.
func Parse(doc *goquery.Document) []models.Holiday {
	var holidays []models.Holiday

	doc.Find("table.fr-alternate-rows").Each(func(_ int, table *goquery.Selection) {
		table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td")
			if cells.Length() < 2 {
				return
			}

			dateText := strings.TrimSpace(strings.ReplaceAll(cells.Eq(1).Text(), "\n", ""))
			parsed, err := time.Parse(dateLayout, dateText)
			if err != nil {
				return
			}

			holidays = append(holidays, models.Holiday{
				Date: time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC),
				Name: strings.TrimSpace(cells.Eq(0).Text()),
			})
		})
	})

	sort.Slice(holidays, func(i, j int) bool { return holidays[i].Date.Before(holidays[j].Date) })

	log.Debug().Int("holidays", len(holidays)).Msg("Holiday page parsed")
	return holidays
}

// Future filters to holidays on or after today.
func Future(holidays []models.Holiday, today time.Time) []models.Holiday {
	var out []models.Holiday
	for _, h := range holidays {
		if !h.Date.Before(today) {
			out = append(out, h)
		}
	}
	return out
}
