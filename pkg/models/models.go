// Package models defines the record schema shared by the scrape, artifact
// and ledger layers.
package models

import "fmt"

// LoanRateRecord is one observed mortgage rate quote. All values are kept
// as displayed on the source page; rates are not parsed to numbers.
type LoanRateRecord struct {
	LoanProduct   string `json:"loan_product"`
	InterestRate  string `json:"interest_rate"`
	APRPercent    string `json:"apr_percent"`
	LoanTermYears string `json:"loan_term_years"`
	LenderName    string `json:"lender_name"`
	UpdatedDate   string `json:"updated_date"`
}

// FieldNames is the fixed ledger column order. The CSV header and every
// appended row follow this order exactly.
var FieldNames = []string{
	"loan_product",
	"interest_rate",
	"apr_percent",
	"loan_term_years",
	"lender_name",
	"updated_date",
}

// RecordKey identifies a unique observation: one product on one calendar
// day. The ledger holds at most one row per key.
type RecordKey struct {
	LoanProduct string
	UpdatedDate string
}

// Key returns the record's natural key.
func (r LoanRateRecord) Key() RecordKey {
	return RecordKey{LoanProduct: r.LoanProduct, UpdatedDate: r.UpdatedDate}
}

// Row returns the record's values in FieldNames order.
func (r LoanRateRecord) Row() []string {
	return []string{
		r.LoanProduct,
		r.InterestRate,
		r.APRPercent,
		r.LoanTermYears,
		r.LenderName,
		r.UpdatedDate,
	}
}

// Complete reports whether every schema field is non-empty. The term field
// counts as required even though some products carry no numeric term; such
// records fail validation.
func (r LoanRateRecord) Complete() bool {
	for _, v := range r.Row() {
		if v == "" {
			return false
		}
	}
	return true
}

// Status is the terminal outcome of one merge run.
type Status string

const (
	// StatusAppended means new rows were written to the ledger.
	StatusAppended Status = "appended"
	// StatusSourceUnavailable means the artifact file is absent or unreadable.
	StatusSourceUnavailable Status = "source_unavailable"
	// StatusMalformedInput means the artifact exists but is not valid JSON.
	StatusMalformedInput Status = "malformed_input"
	// StatusEmptyInput means the artifact holds zero records.
	StatusEmptyInput Status = "empty_input"
	// StatusNoValidToday means no record passed the date/field filter.
	StatusNoValidToday Status = "no_valid_today"
	// StatusNoNewRecords means every valid record is already in the ledger.
	StatusNoNewRecords Status = "no_new_records"
	// StatusWriteFailure means the ledger append could not complete.
	StatusWriteFailure Status = "write_failure"
)

// NoOp reports whether the status is a benign nothing-to-do outcome.
func (s Status) NoOp() bool {
	switch s {
	case StatusSourceUnavailable, StatusMalformedInput, StatusEmptyInput,
		StatusNoValidToday, StatusNoNewRecords:
		return true
	}
	return false
}

// Report summarizes one merge run for the invocation harness.
type Report struct {
	Considered int    `json:"considered"`
	ValidToday int    `json:"valid_today"`
	Appended   int    `json:"appended"`
	Status     Status `json:"status"`
}

// Summary returns a distinct human-readable line per outcome, so operators
// can tell "nothing to do" apart from "broken".
func (r Report) Summary() string {
	switch r.Status {
	case StatusSourceUnavailable:
		return "Artifact file missing; nothing to merge"
	case StatusMalformedInput:
		return "Artifact is not valid JSON; nothing merged"
	case StatusEmptyInput:
		return "Artifact holds no records"
	case StatusNoValidToday:
		return "No valid records for today to append"
	case StatusNoNewRecords:
		return "No new (non-duplicate) records to append"
	case StatusAppended:
		return fmt.Sprintf("Appended %d new record(s) to the ledger", r.Appended)
	case StatusWriteFailure:
		return "Ledger append failed"
	}
	return string(r.Status)
}
