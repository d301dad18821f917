// Package directory loads and matches the street-to-weekday listing
// published on the town's collection schedule page.
package directory

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/curbside-tools/lexington/internal/fetch"
	"github.com/curbside-tools/lexington/pkg/models"
	"github.com/rs/zerolog/log"
)

// ErrUnavailable indicates the street directory could not be loaded:
// transport failure, missing rich-text container, or no list markup.
var ErrUnavailable = errors.New("street directory unavailable")

// Directory maps a normalized street key to its collection weekday
// (Monday=0..Sunday=6, the town's published convention). Multi-segment
// streets use composite keys of the form "<street> (<segment>)".
type Directory map[string]int

// weekdayNames maps the English weekday names found on the schedule page.
var weekdayNames = map[string]int{
	"monday":    0,
	"tuesday":   1,
	"wednesday": 2,
	"thursday":  3,
	"friday":    4,
	"saturday":  5,
	"sunday":    6,
}

var spaceSquasher = regexp.MustCompile(`\s+`)

// Normalize lowercases, trims, and collapses inner whitespace so user input
// and page text compare under the same key space.
func Normalize(s string) string {
	return spaceSquasher.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
}

// Loader fetches and parses the street schedule page.
type Loader struct {
	fetcher *fetch.Fetcher
	url     string
}

// NewLoader creates a Loader for the given schedule page URL
func NewLoader(f *fetch.Fetcher, url string) *Loader {
	return &Loader{fetcher: f, url: url}
}

// Load fetches the schedule page and extracts the street directory.
// The directory is rebuilt on every call; nothing is reused across calls.
func (l *Loader) Load(ctx context.Context, fresh bool) (Directory, error) {
	doc, err := l.fetcher.Document(ctx, models.FetchOptions{URL: l.url, Fresh: fresh})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return Parse(doc)
}

// Parse extracts the street directory from a schedule page document.
// Only top-level list items inside the rich-text containers are street
// records; an item holding a nested list is a multi-segment street.
// Malformed items are skipped, never escalated.
func Parse(doc *goquery.Document) (Directory, error) {
	containers := doc.Find("div.fr-view")
	if containers.Length() == 0 {
		return nil, fmt.Errorf("%w: no rich-text container found", ErrUnavailable)
	}

	lists := containers.Find("ul")
	if lists.Length() == 0 {
		return nil, fmt.Errorf("%w: no street lists found", ErrUnavailable)
	}

	dir := make(Directory)
	lists.Each(func(_ int, ul *goquery.Selection) {
		// Nested lists are consumed through their parent item
		if ul.ParentsFiltered("li").Length() > 0 {
			return
		}
		ul.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
			for key, day := range parseItem(li) {
				dir[key] = day
			}
		})
	})

	log.Debug().Int("streets", len(dir)).Msg("Street directory parsed")
	return dir, nil
}

// parseItem parses one top-level list item into zero or more directory
// entries. Best-effort: items without a recognizable separator or weekday
// token yield nothing.
func parseItem(li *goquery.Selection) map[string]int {
	entries := make(map[string]int)

	nested := li.ChildrenFiltered("ul, ol")
	if nested.Length() == 0 {
		if name, day, ok := splitStreetDay(li.Text()); ok {
			entries[Normalize(name)] = day
		}
		return entries
	}

	// Multi-segment street: the item's own text before the colon names the
	// street, each nested item maps one segment to its weekday.
	own := li.Clone()
	own.Find("ul, ol").Remove()
	main, _, _ := strings.Cut(own.Text(), ":")
	main = Normalize(main)
	if main == "" {
		return entries
	}

	nested.Find("li").Each(func(_ int, seg *goquery.Selection) {
		if segment, day, ok := splitStreetDay(seg.Text()); ok {
			key := fmt.Sprintf("%s (%s)", main, Normalize(segment))
			entries[key] = day
		}
	})
	return entries
}

// splitStreetDay splits "<name> - <WEEKDAY>" on its last " - " separator
// and resolves the weekday token case-insensitively.
func splitStreetDay(text string) (name string, day int, ok bool) {
	text = strings.TrimSpace(text)
	idx := strings.LastIndex(text, " - ")
	if idx < 0 {
		return "", 0, false
	}

	day, ok = weekdayNames[Normalize(text[idx+len(" - "):])]
	if !ok {
		return "", 0, false
	}
	name = strings.TrimSpace(text[:idx])
	if name == "" {
		return "", 0, false
	}
	return name, day, true
}

// Keys returns the directory keys in sorted order so suggestion lists and
// log output stay deterministic.
func (d Directory) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
