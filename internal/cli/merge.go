package cli

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/spf13/cobra"

	"github.com/ratepulse/loanrates/internal/ui"
	"github.com/ratepulse/loanrates/pkg/models"
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Append today's new records from the artifact to the CSV ledger",
	Long:  `Merge reads the intermediate JSON artifact, keeps records dated today with all fields populated, and appends those whose (product, date) key is not yet in the ledger. Existing ledger content is never rewritten.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := GetApp()

		report, err := a.Pipeline.Merge(civil.DateOf(time.Now()))
		if err != nil {
			fmt.Println(ui.Error("Merge failed: " + err.Error()))
			return err
		}

		printReport(report)
		return nil
	},
}

func printReport(report models.Report) {
	if report.Status == models.StatusAppended {
		fmt.Println(ui.Success(report.Summary()))
	} else {
		fmt.Println(ui.Info(report.Summary()))
	}
	fmt.Printf("  considered: %d  valid today: %d  appended: %d\n",
		report.Considered, report.ValidToday, report.Appended)
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}
