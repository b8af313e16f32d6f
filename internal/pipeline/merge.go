package pipeline

import "github.com/ratepulse/loanrates/pkg/models"

// NewAgainst returns the validated records whose natural key is not yet
// in the ledger, preserving input order. Only collisions with previously
// stored rows are guarded; duplicate keys within the batch itself are
// kept as-is.
func NewAgainst(validated []models.LoanRateRecord, existing map[models.RecordKey]struct{}) []models.LoanRateRecord {
	var fresh []models.LoanRateRecord
	for _, r := range validated {
		if _, ok := existing[r.Key()]; ok {
			continue
		}
		fresh = append(fresh, r)
	}
	return fresh
}
