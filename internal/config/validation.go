package config

import "fmt"

func validate(c *Config) error {
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be > 0")
	}
	if c.RatesURL == "" {
		return fmt.Errorf("rates URL must not be empty")
	}
	if c.ArtifactPath == "" {
		return fmt.Errorf("artifact path must not be empty")
	}
	if c.LedgerPath == "" {
		return fmt.Errorf("ledger path must not be empty")
	}
	return nil
}
