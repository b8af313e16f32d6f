package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ratepulse/loanrates/internal/ui"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Fetch the rates page and record extracted rates in the artifact",
	Example: `  # Scrape the default rates page
  loanrates scrape

  # Scrape into a custom artifact file
  loanrates scrape --artifact /tmp/bankrate.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := GetApp()

		count, err := a.Pipeline.Scrape(a.Config.RatesURL)
		if err != nil {
			fmt.Println(ui.Error("Scrape failed: " + err.Error()))
			return err
		}

		if count == 0 {
			fmt.Println(ui.Info("No rate rows found on page"))
			return nil
		}
		fmt.Println(ui.Success(fmt.Sprintf("Captured %d record(s) to %s", count, a.Artifact.Path())))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
}
