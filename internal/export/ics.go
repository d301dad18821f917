package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/curbside-tools/lexington/pkg/models"
)

const icsProductID = "-//curbside-tools//lexington//EN"

// SaveICS writes the schedule as an iCalendar file of all-day events.
func SaveICS(collections []models.Collection, street, filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteICS(file, collections, street)
}

// WriteICS renders the schedule as an iCalendar feed. UIDs are stable per
// date and street so re-imports update events instead of duplicating them.
func WriteICS(w io.Writer, collections []models.Collection, street string) error {
	var b strings.Builder

	b.WriteString("BEGIN:VCALENDAR\r\n")
	b.WriteString("VERSION:2.0\r\n")
	fmt.Fprintf(&b, "PRODID:%s\r\n", icsProductID)
	fmt.Fprintf(&b, "X-WR-CALNAME:Curbside Collection - %s\r\n", street)
	b.WriteString("CALSCALE:GREGORIAN\r\n")

	stamp := time.Now().UTC().Format("20060102T150405Z")
	for _, c := range collections {
		uid := fmt.Sprintf("%s-%s@lexington.curbside-tools", c.Date.Format("20060102"), slug(street))

		b.WriteString("BEGIN:VEVENT\r\n")
		fmt.Fprintf(&b, "UID:%s\r\n", uid)
		fmt.Fprintf(&b, "DTSTAMP:%s\r\n", stamp)
		fmt.Fprintf(&b, "DTSTART;VALUE=DATE:%s\r\n", c.Date.Format("20060102"))
		fmt.Fprintf(&b, "DTEND;VALUE=DATE:%s\r\n", c.Date.AddDate(0, 0, 1).Format("20060102"))
		fmt.Fprintf(&b, "SUMMARY:%s\r\n", c.Category)
		fmt.Fprintf(&b, "DESCRIPTION:Curbside pickup for %s\r\n", street)
		b.WriteString("END:VEVENT\r\n")
	}

	b.WriteString("END:VCALENDAR\r\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
}
