package source

import (
	"time"

	"github.com/curbside-tools/lexington/pkg/models"
)

// buildSchedule walks week by week from today through December 31 of the
// latest future holiday's year and emits one collection per week.
//
// The walk advances in fixed 7-day steps from today, not on calendar week
// boundaries. For each step the next occurrence of the target weekday is
// the normal collection date; if any future holiday falls between the
// Monday of that date's week and the date itself, collection slips by
// exactly one day. The shift is applied once, regardless of how many
// holidays land in the week.
func buildSchedule(today time.Time, weekday int, future []models.Holiday) []models.Collection {
	endDate := time.Date(future[len(future)-1].Date.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)

	var collections []models.Collection
	for anchor := today; !anchor.After(endDate); anchor = anchor.AddDate(0, 0, 7) {
		date := nextWeekday(anchor, weekday)

		if holidayInWeek(future, date) {
			date = date.AddDate(0, 0, 1)
		}

		if !date.Before(today) && !date.After(endDate) {
			collections = append(collections, models.Collection{
				Date:     date,
				Category: CollectionLabel,
				Icon:     CollectionIcon,
			})
		}
	}

	return collections
}

// holidayInWeek reports whether any holiday falls in the span from the
// Monday of the collection date's week through the collection date itself.
func holidayInWeek(holidays []models.Holiday, collectionDate time.Time) bool {
	weekStart := collectionDate.AddDate(0, 0, -mondayIndex(collectionDate))
	for _, h := range holidays {
		if !h.Date.After(collectionDate) && !h.Date.Before(weekStart) {
			return true
		}
	}
	return false
}

// nextWeekday returns the next occurrence of the target weekday
// (Monday=0..Sunday=6) on or after start. A start already on the target
// weekday is returned unchanged.
func nextWeekday(start time.Time, weekday int) time.Time {
	daysAhead := weekday - mondayIndex(start)
	if daysAhead < 0 {
		daysAhead += 7
	}
	return start.AddDate(0, 0, daysAhead)
}

// mondayIndex converts Go's Sunday-based weekday to the Monday=0 indexing
// used by the town's schedule.
func mondayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// atMidnight truncates a time to its calendar date in UTC so all schedule
// arithmetic happens on whole days.
func atMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
