package cli

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/spf13/cobra"

	"github.com/ratepulse/loanrates/internal/ui"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Scrape the rates page and merge today's records into the ledger",
	Example: `  # One full ETL pass
  loanrates run

  # Full pass against custom files
  loanrates run --artifact /tmp/bankrate.json --ledger /tmp/bankrates.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := GetApp()

		report, err := a.Pipeline.Run(a.Config.RatesURL, civil.DateOf(time.Now()))
		if err != nil {
			fmt.Println(ui.Error("Run failed: " + err.Error()))
			return err
		}

		printReport(report)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
