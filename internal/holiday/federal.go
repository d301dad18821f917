package holiday

import (
	"time"

	"github.com/curbside-tools/lexington/pkg/models"
	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

// federalCalendar holds the US federal holidays used to annotate the town's
// closing days. Annotation is display-only; scheduling always follows the
// town's published table.
var federalCalendar = newFederalCalendar()

func newFederalCalendar() *cal.BusinessCalendar {
	c := cal.NewBusinessCalendar()
	c.AddHoliday(
		us.NewYear,
		us.MlkDay,
		us.PresidentsDay,
		us.MemorialDay,
		us.Juneteenth,
		us.IndependenceDay,
		us.LaborDay,
		us.ColumbusDay,
		us.VeteransDay,
		us.ThanksgivingDay,
		us.ChristmasDay,
	)
	return c
}

// AnnotateFederal fills in the Federal field of each holiday that falls on
// a US federal holiday (actual or observed date).
func AnnotateFederal(holidays []models.Holiday) {
	for i := range holidays {
		if name := federalName(holidays[i].Date); name != "" {
			holidays[i].Federal = name
		}
	}
}

func federalName(at time.Time) string {
	actual, observed, h := federalCalendar.IsHoliday(at)
	if (actual || observed) && h != nil {
		return h.Name
	}
	return ""
}
