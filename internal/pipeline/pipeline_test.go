package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"

	"github.com/ratepulse/loanrates/internal/artifact"
	"github.com/ratepulse/loanrates/internal/ledger"
	"github.com/ratepulse/loanrates/pkg/models"
)

var mayFirst = civil.Date{Year: 2024, Month: time.May, Day: 1}

func record(product, term, date string) models.LoanRateRecord {
	return models.LoanRateRecord{
		LoanProduct:   product,
		InterestRate:  "6.5%",
		APRPercent:    "6.62%",
		LoanTermYears: term,
		LenderName:    "Bankrate",
		UpdatedDate:   date,
	}
}

func newTestPipeline(t *testing.T, scraper Scraper) (*Pipeline, *artifact.Store, *ledger.CSV) {
	t.Helper()
	dir := t.TempDir()
	art := artifact.NewStore(filepath.Join(dir, "bankrate.json"))
	led := ledger.NewCSV(filepath.Join(dir, "bankrates.csv"))
	return New(scraper, art, led, zerolog.Nop()), art, led
}

type stubScraper struct {
	records []models.LoanRateRecord
	err     error
}

func (s *stubScraper) Scrape(url string) ([]models.LoanRateRecord, error) {
	return s.records, s.err
}

func TestFilterValid_DateGating(t *testing.T) {
	records := []models.LoanRateRecord{
		record("30-Year Fixed Rate", "30", "2024-05-01"),
		record("15-Year Fixed Rate", "15", "2024-04-30"),
		record("20-Year Fixed Rate", "20", "Tuesday, some raw text"),
	}

	valid := FilterValid(records, mayFirst)
	if len(valid) != 1 {
		t.Fatalf("expected 1 valid record, got %d", len(valid))
	}
	if valid[0].LoanProduct != "30-Year Fixed Rate" {
		t.Errorf("wrong record survived: %+v", valid[0])
	}
}

func TestFilterValid_RejectsEmptyTerm(t *testing.T) {
	records := []models.LoanRateRecord{
		record("Adjustable Rate Mortgage", "", "2024-05-01"),
	}

	if valid := FilterValid(records, mayFirst); len(valid) != 0 {
		t.Fatalf("expected termless record to be rejected, got %d", len(valid))
	}
}

func TestFilterValid_PreservesOrder(t *testing.T) {
	records := []models.LoanRateRecord{
		record("30-Year Fixed Rate", "30", "2024-05-01"),
		record("15-Year Fixed Rate", "15", "2024-05-01"),
		record("10-Year Fixed Rate", "10", "2024-05-01"),
	}

	valid := FilterValid(records, mayFirst)
	if len(valid) != 3 {
		t.Fatalf("expected 3 valid records, got %d", len(valid))
	}
	for i, r := range valid {
		if r.LoanProduct != records[i].LoanProduct {
			t.Errorf("order not preserved at %d: %q", i, r.LoanProduct)
		}
	}
}

func TestNewAgainst_SkipsStoredKeysOnly(t *testing.T) {
	existing := map[models.RecordKey]struct{}{
		{LoanProduct: "30-Year Fixed Rate", UpdatedDate: "2024-05-01"}: {},
	}
	batch := []models.LoanRateRecord{
		record("30-Year Fixed Rate", "30", "2024-05-01"),
		record("15-Year Fixed Rate", "15", "2024-05-01"),
		record("15-Year Fixed Rate", "15", "2024-05-01"), // intra-batch duplicate
	}

	fresh := NewAgainst(batch, existing)
	if len(fresh) != 2 {
		t.Fatalf("expected 2 fresh records (intra-batch duplicates kept), got %d", len(fresh))
	}
	for _, r := range fresh {
		if r.LoanProduct != "15-Year Fixed Rate" {
			t.Errorf("stored key leaked through: %+v", r)
		}
	}
}

func TestMerge_Idempotent(t *testing.T) {
	p, art, led := newTestPipeline(t, nil)

	if err := art.Append([]models.LoanRateRecord{record("30-Year Fixed Rate", "30", "2024-05-01")}); err != nil {
		t.Fatalf("failed to seed artifact: %v", err)
	}

	report, err := p.Merge(mayFirst)
	if err != nil {
		t.Fatalf("first merge failed: %v", err)
	}
	if report.Status != models.StatusAppended || report.Appended != 1 {
		t.Fatalf("expected one appended row, got %+v", report)
	}

	report, err = p.Merge(mayFirst)
	if err != nil {
		t.Fatalf("second merge failed: %v", err)
	}
	if report.Status != models.StatusNoNewRecords || report.Appended != 0 {
		t.Fatalf("expected no-new-records on rerun, got %+v", report)
	}

	data, err := os.ReadFile(led.Path())
	if err != nil {
		t.Fatalf("failed to read ledger: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 { // header + one data row
		t.Fatalf("expected exactly header + 1 row, got %d lines", len(lines))
	}
}

func TestMerge_SourceUnavailable(t *testing.T) {
	p, _, _ := newTestPipeline(t, nil)

	report, err := p.Merge(mayFirst)
	if err != nil {
		t.Fatalf("missing artifact must be benign, got %v", err)
	}
	if report.Status != models.StatusSourceUnavailable {
		t.Errorf("expected source_unavailable, got %s", report.Status)
	}
}

func TestMerge_MalformedInput(t *testing.T) {
	p, art, _ := newTestPipeline(t, nil)
	if err := os.WriteFile(art.Path(), []byte("{oops"), 0o644); err != nil {
		t.Fatal(err)
	}

	report, err := p.Merge(mayFirst)
	if err != nil {
		t.Fatalf("malformed artifact must be benign, got %v", err)
	}
	if report.Status != models.StatusMalformedInput {
		t.Errorf("expected malformed_input, got %s", report.Status)
	}
}

func TestMerge_EmptyInput(t *testing.T) {
	p, art, _ := newTestPipeline(t, nil)
	if err := os.WriteFile(art.Path(), []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}

	report, err := p.Merge(mayFirst)
	if err != nil {
		t.Fatalf("empty artifact must be benign, got %v", err)
	}
	if report.Status != models.StatusEmptyInput {
		t.Errorf("expected empty_input, got %s", report.Status)
	}
}

func TestMerge_NoValidToday(t *testing.T) {
	p, art, led := newTestPipeline(t, nil)
	if err := art.Append([]models.LoanRateRecord{record("30-Year Fixed Rate", "30", "2024-04-30")}); err != nil {
		t.Fatal(err)
	}

	report, err := p.Merge(mayFirst)
	if err != nil {
		t.Fatalf("stale records must be benign, got %v", err)
	}
	if report.Status != models.StatusNoValidToday {
		t.Errorf("expected no_valid_today, got %s", report.Status)
	}
	if report.Considered != 1 || report.ValidToday != 0 {
		t.Errorf("unexpected counts: %+v", report)
	}

	// The ledger is still bootstrapped with its header, just no rows.
	data, err := os.ReadFile(led.Path())
	if err != nil {
		t.Fatalf("expected ledger to exist with header: %v", err)
	}
	if got := strings.TrimSpace(string(data)); got != strings.Join(models.FieldNames, ",") {
		t.Errorf("expected header-only ledger, got %q", got)
	}
}

func TestMerge_AppendFailureIsFatal(t *testing.T) {
	p, art, led := newTestPipeline(t, nil)
	if err := art.Append([]models.LoanRateRecord{record("30-Year Fixed Rate", "30", "2024-05-01")}); err != nil {
		t.Fatalf("failed to seed artifact: %v", err)
	}

	// A directory at the ledger path makes the append impossible.
	if err := os.MkdirAll(led.Path(), 0o755); err != nil {
		t.Fatal(err)
	}

	report, err := p.Merge(mayFirst)
	if err == nil {
		t.Fatal("expected append failure to surface, got nil error")
	}
	if report.Status != models.StatusWriteFailure {
		t.Errorf("expected write_failure, got %s", report.Status)
	}
}

func TestRun_EndToEnd(t *testing.T) {
	scraped := []models.LoanRateRecord{
		record("30-Year Fixed Rate", "30", "2024-05-01"),
		record("Adjustable Rate Mortgage", "", "2024-05-01"), // rejected by filter
	}
	p, _, led := newTestPipeline(t, &stubScraper{records: scraped})

	report, err := p.Run("http://example.test/rates", mayFirst)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if report.Considered != 2 || report.ValidToday != 1 || report.Appended != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}

	keys, err := led.ExistingKeys()
	if err != nil {
		t.Fatalf("ExistingKeys failed: %v", err)
	}
	if _, ok := keys[models.RecordKey{LoanProduct: "30-Year Fixed Rate", UpdatedDate: "2024-05-01"}]; !ok {
		t.Error("appended key missing from ledger")
	}
}

func TestRun_ScrapeFailureIsFatal(t *testing.T) {
	p, _, _ := newTestPipeline(t, &stubScraper{err: fmt.Errorf("connection refused")})

	if _, err := p.Run("http://example.test/rates", mayFirst); err == nil {
		t.Fatal("expected scrape failure to surface")
	}
}
