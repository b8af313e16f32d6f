// Package pipeline wires the scrape and merge stages of one run:
// fetch → parse → normalize → filter → diff against the ledger → append.
package pipeline

import (
	"errors"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"

	"github.com/ratepulse/loanrates/internal/artifact"
	"github.com/ratepulse/loanrates/pkg/models"
)

// Scraper produces the raw records of one page fetch.
type Scraper interface {
	Scrape(url string) ([]models.LoanRateRecord, error)
}

// ArtifactStore is the intermediate JSON store between scrape and merge.
type ArtifactStore interface {
	Load() ([]models.LoanRateRecord, error)
	Append(records []models.LoanRateRecord) error
}

// LedgerStore is the durable CSV ledger.
type LedgerStore interface {
	EnsureInitialized() error
	ExistingKeys() (map[models.RecordKey]struct{}, error)
	AppendRows(records []models.LoanRateRecord) error
}

// Pipeline runs the ETL stages against injected collaborators.
type Pipeline struct {
	scraper  Scraper
	artifact ArtifactStore
	ledger   LedgerStore
	logger   zerolog.Logger
}

// New creates a Pipeline.
func New(scraper Scraper, artifact ArtifactStore, ledger LedgerStore, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		scraper:  scraper,
		artifact: artifact,
		ledger:   ledger,
		logger:   logger,
	}
}

// Scrape fetches the rates page and appends the extracted records to the
// artifact. Zero extracted rows is not an error; only the fetch itself
// failing is.
func (p *Pipeline) Scrape(url string) (int, error) {
	records, err := p.scraper.Scrape(url)
	if err != nil {
		return 0, fmt.Errorf("scrape failed: %w", err)
	}

	if len(records) == 0 {
		p.logger.Warn().Str("url", url).Msg("No rate rows extracted from page")
		return 0, nil
	}

	if err := p.artifact.Append(records); err != nil {
		return 0, err
	}

	p.logger.Info().
		Int("records", len(records)).
		Str("updated_date", records[0].UpdatedDate).
		Msg("Scrape complete")
	return len(records), nil
}

// Merge loads the artifact, keeps records valid for runDate, diffs them
// against the ledger's keys and appends only the difference. Every no-op
// path returns a nil error with a distinct status; only a ledger write
// failure is fatal.
func (p *Pipeline) Merge(runDate civil.Date) (models.Report, error) {
	var report models.Report

	records, err := p.artifact.Load()
	if errors.Is(err, artifact.ErrMissing) {
		report.Status = models.StatusSourceUnavailable
		p.logger.Info().Msg("Artifact missing, nothing to merge")
		return report, nil
	}

	// The artifact exists, so make sure the ledger does too, header
	// included, even if this run ends up appending nothing.
	if lerr := p.ledger.EnsureInitialized(); lerr != nil {
		report.Status = models.StatusWriteFailure
		return report, lerr
	}

	if err != nil {
		report.Status = models.StatusMalformedInput
		p.logger.Warn().Err(err).Msg("Artifact unparseable, nothing merged")
		return report, nil
	}

	report.Considered = len(records)
	if len(records) == 0 {
		report.Status = models.StatusEmptyInput
		p.logger.Info().Msg("Artifact holds no records")
		return report, nil
	}

	valid := FilterValid(records, runDate)
	report.ValidToday = len(valid)
	if len(valid) == 0 {
		report.Status = models.StatusNoValidToday
		p.logger.Info().
			Int("considered", report.Considered).
			Str("run_date", runDate.String()).
			Msg("No records valid for today")
		return report, nil
	}

	existing, err := p.ledger.ExistingKeys()
	if err != nil {
		report.Status = models.StatusWriteFailure
		return report, err
	}

	fresh := NewAgainst(valid, existing)
	if len(fresh) == 0 {
		report.Status = models.StatusNoNewRecords
		p.logger.Info().
			Int("valid", report.ValidToday).
			Msg("All of today's records already in ledger")
		return report, nil
	}

	if err := p.ledger.AppendRows(fresh); err != nil {
		report.Status = models.StatusWriteFailure
		return report, fmt.Errorf("ledger append failed: %w", err)
	}

	report.Appended = len(fresh)
	report.Status = models.StatusAppended
	p.logger.Info().
		Int("considered", report.Considered).
		Int("valid", report.ValidToday).
		Int("appended", report.Appended).
		Msg("Merge complete")
	return report, nil
}

// Run executes scrape followed by merge, mirroring the scheduled job.
func (p *Pipeline) Run(url string, runDate civil.Date) (models.Report, error) {
	if _, err := p.Scrape(url); err != nil {
		return models.Report{}, err
	}
	return p.Merge(runDate)
}
