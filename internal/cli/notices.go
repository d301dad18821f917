package cli

import (
	"fmt"

	"github.com/curbside-tools/lexington/internal/notices"
	"github.com/curbside-tools/lexington/internal/source"
	urlutil "github.com/curbside-tools/lexington/internal/utils/url"
	"github.com/spf13/cobra"
)

var noticesURL string

// noticesCmd represents the notices command
var noticesCmd = &cobra.Command{
	Use:   "notices",
	Short: "Show the town's curbside collection notices as Markdown",
	Long: `Fetches the town's curbside collection page and renders its rich-text
content as Markdown, with links resolved to absolute URLs.`,
	Args: cobra.NoArgs,
	RunE: runNotices,
}

func init() {
	rootCmd.AddCommand(noticesCmd)

	noticesCmd.Flags().StringVar(&noticesURL, "url", source.InfoURL, "Town page to render")
}

func runNotices(cmd *cobra.Command, args []string) error {
	if err := urlutil.ValidateURL(noticesURL); err != nil {
		return err
	}

	a := GetApp()
	markdown, err := notices.Render(cmd.Context(), a.Fetcher, noticesURL)
	if err != nil {
		return err
	}

	fmt.Println(markdown)
	return nil
}
