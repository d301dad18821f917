package cli

import (
	"fmt"
	"time"

	"github.com/curbside-tools/lexington/internal/holiday"
	"github.com/curbside-tools/lexington/internal/ui"
	"github.com/spf13/cobra"
)

var showAllHolidays bool

// holidaysCmd represents the holidays command
var holidaysCmd = &cobra.Command{
	Use:   "holidays",
	Short: "List the town's published holidays and closing days",
	Long: `Fetches the town's official holiday page and lists the closing days that
can delay collection. Holidays coinciding with US federal holidays are
annotated with the federal name.`,
	Args: cobra.NoArgs,
	RunE: runHolidays,
}

func init() {
	rootCmd.AddCommand(holidaysCmd)

	holidaysCmd.Flags().BoolVar(&showAllHolidays, "all", false, "Include holidays that have already passed")
}

func runHolidays(cmd *cobra.Command, args []string) error {
	a := GetApp()

	schedule := holiday.NewSchedule(a.Fetcher, a.HolidayURL())
	holidays, err := schedule.Load(cmd.Context(), false)
	if err != nil {
		return err
	}

	if !showAllHolidays {
		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		holidays = holiday.Future(holidays, today)
	}

	if len(holidays) == 0 {
		fmt.Println("No holidays found on the town page.")
		return nil
	}

	holiday.AnnotateFederal(holidays)

	fmt.Printf("%s\n", ui.Bold(fmt.Sprintf("%d town holidays", len(holidays))))
	for _, h := range holidays {
		line := fmt.Sprintf("  %s  %s", ui.Success(h.Date.Format("Mon, Jan 2 2006")), h.Name)
		if h.Federal != "" {
			line += "  " + ui.Info(fmt.Sprintf("(federal: %s)", h.Federal))
		}
		fmt.Println(line)
	}
	return nil
}
