package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// HTTP
	HTTPTimeout time.Duration
	UserAgent   string

	// ETL
	RatesURL     string
	ArtifactPath string
	LedgerPath   string
}

// Load builds a Config by combining defaults, environment variables, and
// CLI flags. Caller should pass the root *cobra.Command so flags can be
// read.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := &Config{
		LogLevel:     DefaultLogLevel,
		JSONLog:      DefaultJSONLog,
		HTTPTimeout:  DefaultHTTPTimeout,
		UserAgent:    DefaultUserAgent,
		RatesURL:     DefaultRatesURL,
		ArtifactPath: DefaultArtifactPath,
		LedgerPath:   DefaultLedgerPath,
	}

	// Override from environment variables
	if v := os.Getenv("LOANRATES_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("LOANRATES_URL"); v != "" {
		cfg.RatesURL = v
	}
	if v := os.Getenv("LOANRATES_ARTIFACT"); v != "" {
		cfg.ArtifactPath = v
	}
	if v := os.Getenv("LOANRATES_LEDGER"); v != "" {
		cfg.LedgerPath = v
	}

	// Read CLI flags if provided
	if cmd != nil {
		if f := cmd.Flags().Lookup("user-agent"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.UserAgent = s
			}
		}
		if f := cmd.Flags().Lookup("url"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.RatesURL = s
			}
		}
		if f := cmd.Flags().Lookup("artifact"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.ArtifactPath = s
			}
		}
		if f := cmd.Flags().Lookup("ledger"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.LedgerPath = s
			}
		}
		if f := cmd.Flags().Lookup("timeout"); f != nil {
			if s := f.Value.String(); s != "" {
				if d, err := time.ParseDuration(s); err == nil {
					cfg.HTTPTimeout = d
				}
			}
		}
		if f := cmd.Flags().Lookup("json"); f != nil {
			if f.Value.String() == "true" {
				cfg.JSONLog = true
			}
		}
		if f := cmd.Flags().Lookup("verbose"); f != nil {
			if f.Value.String() == "true" {
				cfg.LogLevel = "debug"
			}
		}
		if f := cmd.Flags().Lookup("quiet"); f != nil {
			if f.Value.String() == "true" {
				cfg.LogLevel = "error"
			}
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
