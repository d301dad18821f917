package cli

import (
	"fmt"

	"github.com/curbside-tools/lexington/internal/export"
	"github.com/curbside-tools/lexington/internal/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	street string
	output string
)

// scheduleCmd represents the schedule command
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Show upcoming collection dates for a street",
	Long: `Fetches the town's street schedule and holiday pages, resolves the street
to its collection weekday, and prints the holiday-adjusted pickup dates
through the end of the year of the last published holiday.`,
	Example: `  # Upcoming pickups for a street
  curbside schedule --street "Aaron Road"

  # Export as an importable calendar
  curbside schedule --street "Aaron Rd" --output pickups.ics

  # Export as JSON or CSV
  curbside schedule --street "Aaron Rd" --output pickups.json`,
	Args: cobra.NoArgs,
	RunE: runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.Flags().StringVarP(&street, "street", "s", "", "Street name to look up (required)")
	scheduleCmd.Flags().StringVarP(&output, "output", "o", "", "File path to save output (supports .json, .csv, .ics)")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	a := GetApp()

	src, err := a.NewSource(cmd.Context(), street)
	if err != nil {
		return err
	}

	log.Debug().Str("street", src.Street()).Msg("Fetching collection schedule")
	collections, err := src.Fetch(cmd.Context())
	if err != nil {
		return err
	}

	if output != "" {
		if err := export.Save(collections, src.Street(), output); err != nil {
			return fmt.Errorf("failed to save output: %w", err)
		}
		fmt.Printf("%s wrote %d collections to %s\n", ui.Success("ok:"), len(collections), output)
		return nil
	}

	fmt.Printf("%s\n", ui.Bold(fmt.Sprintf("Upcoming collections for %s", src.Street())))
	for _, c := range collections {
		fmt.Printf("  %s  %s\n", ui.Success(c.Date.Format("Mon, Jan 2 2006")), ui.Info(c.Category))
	}
	return nil
}
