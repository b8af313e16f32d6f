package config

import "github.com/spf13/cobra"

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all output except errors")
	cmd.PersistentFlags().Bool("json", false, "Log in JSON format to stderr")
	cmd.PersistentFlags().String("timeout", "30s", "Hard timeout for the page fetch")
	cmd.PersistentFlags().String("user-agent", "", "Custom user agent string")
	cmd.PersistentFlags().String("url", "", "Rates page URL to scrape")
	cmd.PersistentFlags().String("artifact", "", "Path to the intermediate JSON artifact")
	cmd.PersistentFlags().String("ledger", "", "Path to the CSV ledger")
}
