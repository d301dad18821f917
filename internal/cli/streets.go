package cli

import (
	"fmt"

	"github.com/curbside-tools/lexington/internal/directory"
	"github.com/curbside-tools/lexington/internal/ui"
	"github.com/spf13/cobra"
)

// Weekday display names indexed by the town's Monday-first convention.
var dayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// streetsCmd represents the streets command
var streetsCmd = &cobra.Command{
	Use:   "streets [query]",
	Short: "List known streets or show match candidates for a query",
	Example: `  # Full street directory with collection weekdays
  curbside streets

  # Candidates for a misspelled street
  curbside streets "Aron Rd"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStreets,
}

func init() {
	rootCmd.AddCommand(streetsCmd)
}

func runStreets(cmd *cobra.Command, args []string) error {
	a := GetApp()

	loader := directory.NewLoader(a.Fetcher, a.ScheduleURL())
	dir, err := loader.Load(cmd.Context(), false)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		fmt.Printf("%s\n", ui.Bold(fmt.Sprintf("%d streets on the schedule page", len(dir))))
		for _, key := range dir.Keys() {
			fmt.Printf("  %-50s %s\n", key, ui.Info(dayNames[dir[key]]))
		}
		return nil
	}

	query := args[0]
	matcher := directory.NewMatcher(a.Config.MatchCutoff, a.Config.MaxCandidates)

	if day, ok := matcher.Exact(dir, query); ok {
		fmt.Printf("%s collects on %s\n", ui.Success(directory.Normalize(query)), ui.Bold(dayNames[day]))
		return nil
	}

	candidates := matcher.Candidates(dir, query)
	if len(candidates) == 0 {
		return fmt.Errorf("no streets match %q", query)
	}

	fmt.Printf("%s\n", ui.Bold(fmt.Sprintf("Candidates for %q", query)))
	for _, c := range candidates {
		fmt.Printf("  %-50s %s  %s\n", c.Key, ui.Info(dayNames[dir[c.Key]]), ui.Info(fmt.Sprintf("(%.0f%%)", c.Score*100)))
	}
	return nil
}
