package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/curbside-tools/lexington/internal/app"
	"github.com/curbside-tools/lexington/internal/config"
	"github.com/curbside-tools/lexington/internal/source"
	"github.com/curbside-tools/lexington/internal/ui"
)

var (
	verbose    bool
	quiet      bool
	jsonOutput bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "curbside",
	Short: "Lexington, MA curbside collection schedules from the command line",
	Long: `Curbside fetches the Town of Lexington's published street schedule and
holiday pages, resolves your street to its collection weekday, and prints
the upcoming holiday-adjusted pickup dates.`,
	Version: "1.0.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		var serr *source.SourceError
		if errors.As(err, &serr) {
			printSourceError(serr)
		}
		os.Exit(1)
	}
}

func init() {
	// Lazily initialize the application before running commands (avoid starting app for -h/help)
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if GetApp() != nil {
			return nil
		}

		cfg, err := config.Load(rootCmd)
		if err != nil {
			log.Warn().Err(err).Msg("failed to load configuration, using defaults")
			cfg = &config.Config{}
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPTimeout*10)
		defer cancel()
		appCtx, err := app.New(ctx, cfg)
		if err != nil {
			return err
		}

		SetApp(cmd, appCtx)
		return nil
	}

	// Ensure app is closed after command runs
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		appCtx := GetApp()
		if appCtx == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), appCtx.Config.HTTPTimeout*10)
		defer cancel()
		_ = appCtx.Close(ctx)
		SetApp(cmd, nil)
	}
}

func init() {
	// Register centralized flags
	config.RegisterFlags(rootCmd)
	cobra.OnInitialize(initConfig)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceUsage = true
}

// initConfig reads flags and env and configures the global logger.
func initConfig() {
	cfg, err := config.Load(rootCmd)
	if err != nil {
		// Fall back to defaults but log the issue
		log.Warn().Err(err).Msg("failed to load configuration, using defaults")
		cfg = &config.Config{}
	}
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		verbose = true
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
		quiet = true
	default:
		// Default to suppressing info logs unless verbose is explicitly requested
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	}

	if cfg.JSONLog {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		jsonOutput = true
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// printSourceError renders a source failure with its suggestion payload.
func printSourceError(serr *source.SourceError) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ui.Error("error:"), serr.Message)
	if len(serr.Suggestions) == 0 {
		return
	}

	switch serr.Code {
	case source.ErrCodeStreetAmbiguous:
		fmt.Fprintln(os.Stderr, "Did you mean one of these?")
	default:
		fmt.Fprintln(os.Stderr, "Known streets include:")
	}
	for _, s := range serr.Suggestions {
		fmt.Fprintf(os.Stderr, "  %s\n", ui.Info(s))
	}
}
