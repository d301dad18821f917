package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/curbside-tools/lexington/internal/fetch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const streetsHTML = `<html><body>
<div class="fr-view">
  <ul>
    <li>Aaron Road - WEDNESDAY</li>
    <li>Abbott Rd - MONDAY</li>
    <li>Asbury Court - TUESDAY</li>
    <li>Bedford Street:
      <ul>
        <li>Battlegreen to Revere St - MONDAY</li>
        <li>Revere St to Burlington line - TUESDAY</li>
      </ul>
    </li>
  </ul>
</div>
</body></html>`

// holidayHTML builds a holiday page with the given dates.
func holidayHTML(dates ...time.Time) string {
	rows := ""
	for i, d := range dates {
		rows += fmt.Sprintf("<tr><td>Holiday %d</td><td>%s</td></tr>", i, d.Format("Monday, January 2, 2006"))
	}
	return fmt.Sprintf(`<html><body>
<table class="fr-alternate-rows"><tbody>%s</tbody></table>
</body></html>`, rows)
}

func newTestFetcher() *fetch.Fetcher {
	return fetch.New(nil, nil, &http.Client{Timeout: 5 * time.Second}, "curbside-test", 0)
}

// futureSaturday returns a Saturday at least a month out. Saturdays never
// fall inside a Monday-to-collection-day window, so schedules built around
// this holiday stay unshifted.
func futureSaturday() time.Time {
	d := time.Now().UTC().AddDate(0, 1, 0)
	for d.Weekday() != time.Saturday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

func servePages(t *testing.T, streets, holidays string) (streetsURL, holidaysURL string) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/streets", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, streets)
	})
	mux.HandleFunc("/holidays", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, holidays)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server.URL + "/streets", server.URL + "/holidays"
}

func TestSource_FetchExactMatch(t *testing.T) {
	holidayDate := futureSaturday()
	streetsURL, holidaysURL := servePages(t, streetsHTML, holidayHTML(holidayDate))

	src, err := New(context.Background(), "Aaron Road", newTestFetcher(), WithURLs(streetsURL, holidaysURL))
	require.NoError(t, err)

	collections, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, collections)

	for _, c := range collections {
		assert.Equal(t, time.Wednesday, c.Date.Weekday(), "unshifted collections fall on Wednesday unless a holiday intervenes")
		assert.Equal(t, CollectionLabel, c.Category)
		assert.Equal(t, CollectionIcon, c.Icon)
	}
}

func TestSource_FetchApproximateMatch(t *testing.T) {
	holidayDate := futureSaturday()
	streetsURL, holidaysURL := servePages(t, streetsHTML, holidayHTML(holidayDate))

	src, err := New(context.Background(), "Aron Road", newTestFetcher(), WithURLs(streetsURL, holidaysURL))
	require.NoError(t, err)

	collections, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, collections)
}

func TestSource_FetchMultiSegmentStreet(t *testing.T) {
	holidayDate := futureSaturday()
	streetsURL, holidaysURL := servePages(t, streetsHTML, holidayHTML(holidayDate))

	src, err := New(context.Background(), "Bedford Street (Battlegreen to Revere St)", newTestFetcher(), WithURLs(streetsURL, holidaysURL))
	require.NoError(t, err)

	collections, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, collections)
	assert.Equal(t, time.Monday, collections[len(collections)-1].Date.Weekday())
}

func TestSource_EmptyStreetWithSuggestions(t *testing.T) {
	streetsURL, holidaysURL := servePages(t, streetsHTML, holidayHTML())

	_, err := New(context.Background(), "   ", newTestFetcher(), WithURLs(streetsURL, holidaysURL))
	require.Error(t, err)

	var serr *SourceError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, ErrCodeStreetRequired, serr.Code)
	assert.NotEmpty(t, serr.Suggestions)
	assert.ErrorIs(t, err, ErrStreetRequired)
}

func TestSource_EmptyStreetDirectoryUnavailable(t *testing.T) {
	streetsURL, holidaysURL := servePages(t, streetsHTML, holidayHTML())

	// Unknown paths on the test server return 404
	_, err := New(context.Background(), "", newTestFetcher(), WithURLs(streetsURL+"-missing", holidaysURL))
	require.Error(t, err)

	var serr *SourceError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, ErrCodeStreetRequired, serr.Code)
	assert.Empty(t, serr.Suggestions)
}

func TestSource_StreetNotFoundCarriesDirectory(t *testing.T) {
	streetsURL, holidaysURL := servePages(t, streetsHTML, holidayHTML())

	src, err := New(context.Background(), "zzzqqq", newTestFetcher(), WithURLs(streetsURL, holidaysURL))
	require.NoError(t, err)

	_, err = src.Fetch(context.Background())
	require.Error(t, err)

	var serr *SourceError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, ErrCodeStreetNotFound, serr.Code)
	assert.NotEmpty(t, serr.Suggestions)
	assert.LessOrEqual(t, len(serr.Suggestions), 10)
}

func TestSource_AmbiguousStreet(t *testing.T) {
	ambiguous := `<html><body><div class="fr-view"><ul>
<li>Aaron Road - WEDNESDAY</li>
<li>Aaron Court - TUESDAY</li>
</ul></div></body></html>`
	streetsURL, holidaysURL := servePages(t, ambiguous, holidayHTML())

	src, err := New(context.Background(), "Aaron", newTestFetcher(), WithURLs(streetsURL, holidaysURL))
	require.NoError(t, err)

	_, err = src.Fetch(context.Background())
	require.Error(t, err)

	var serr *SourceError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, ErrCodeStreetAmbiguous, serr.Code)
	assert.Len(t, serr.Suggestions, 2)
	assert.Contains(t, serr.Suggestions, "aaron road")
	assert.Contains(t, serr.Suggestions, "aaron court")
}

func TestSource_DirectoryUnavailableDuringFetch(t *testing.T) {
	_, holidaysURL := servePages(t, streetsHTML, holidayHTML())

	src, err := New(context.Background(), "Aaron Road", newTestFetcher(), WithURLs(holidaysURL+"-missing", holidaysURL))
	require.NoError(t, err)

	_, err = src.Fetch(context.Background())
	require.Error(t, err)

	var serr *SourceError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, ErrCodeStreetNotFound, serr.Code)
	assert.Empty(t, serr.Suggestions)
}

func TestSource_NoFutureHolidayIsFatal(t *testing.T) {
	past := time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)
	streetsURL, holidaysURL := servePages(t, streetsHTML, holidayHTML(past))

	src, err := New(context.Background(), "Aaron Road", newTestFetcher(), WithURLs(streetsURL, holidaysURL))
	require.NoError(t, err)

	collections, err := src.Fetch(context.Background())
	require.Error(t, err)
	assert.Empty(t, collections)
	assert.ErrorIs(t, err, ErrNoFutureHoliday)
}

func TestDescribe(t *testing.T) {
	meta := Describe()
	assert.Equal(t, Title, meta.Title)
	require.Len(t, meta.Arguments, 1)
	assert.Equal(t, "street", meta.Arguments[0].Name)
	assert.True(t, meta.Arguments[0].Required)
}
