package pipeline

import (
	"cloud.google.com/go/civil"

	"github.com/ratepulse/loanrates/pkg/models"
)

// FilterValid keeps records observed on runDate with every schema field
// populated, preserving input order. Records dated any other day are
// discarded, never held for a later merge. Products without a numeric
// term (empty loan_term_years) fail the completeness check and are
// dropped too; that strictness is deliberate.
func FilterValid(records []models.LoanRateRecord, runDate civil.Date) []models.LoanRateRecord {
	today := runDate.String()

	var valid []models.LoanRateRecord
	for _, r := range records {
		if r.UpdatedDate != today || !r.Complete() {
			continue
		}
		valid = append(valid, r)
	}
	return valid
}
