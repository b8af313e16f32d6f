// internal/cli/root.go
package cli

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ratepulse/loanrates/internal/app"
	"github.com/ratepulse/loanrates/internal/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "loanrates",
	Short:   "Scrape mortgage rate listings and merge them into a CSV ledger",
	Long:    `Loanrates extracts loan-rate listings from the Bankrate mortgage rates page, normalizes them into records, and appends only the records not yet captured for the same product and day.`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	config.RegisterFlags(rootCmd)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceUsage = true

	// Initialize the application before running commands (avoid starting
	// it for -h/help)
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if GetApp() != nil {
			return nil
		}

		cfg, err := config.Load(rootCmd)
		if err != nil {
			log.Warn().Err(err).Msg("failed to load configuration, using defaults")
			cfg, err = config.Load(nil)
			if err != nil {
				return err
			}
		}

		appCtx, err := app.New(cfg)
		if err != nil {
			return err
		}

		SetApp(appCtx)
		return nil
	}

	// Ensure app is closed after command runs
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		appCtx := GetApp()
		if appCtx == nil {
			return
		}
		_ = appCtx.Close()
		SetApp(nil)
	}
}
