package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel    = "info"
	DefaultJSONLog     = false
	DefaultHTTPTimeout = 30 * time.Second
	DefaultUserAgent   = "loanrates/0.1 (+https://github.com/ratepulse/loanrates)"

	// DefaultRatesURL is the public mortgage purchase-rates page.
	DefaultRatesURL = "https://www.bankrate.com/mortgages/mortgage-rates/"

	DefaultArtifactPath = "data/bankrate.json"
	DefaultLedgerPath   = "data/bankrates.csv"
)
