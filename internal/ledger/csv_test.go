package ledger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ratepulse/loanrates/pkg/models"
)

func tempLedger(t *testing.T) *CSV {
	t.Helper()
	return NewCSV(filepath.Join(t.TempDir(), "bankrates.csv"))
}

func record(product, date string) models.LoanRateRecord {
	return models.LoanRateRecord{
		LoanProduct:   product,
		InterestRate:  "6.50%",
		APRPercent:    "6.62%",
		LoanTermYears: "30",
		LenderName:    "Bankrate",
		UpdatedDate:   date,
	}
}

func TestEnsureInitialized_CreatesHeaderOnly(t *testing.T) {
	l := tempLedger(t)

	if err := l.EnsureInitialized(); err != nil {
		t.Fatalf("EnsureInitialized failed: %v", err)
	}

	data, err := os.ReadFile(l.Path())
	if err != nil {
		t.Fatalf("failed to read ledger: %v", err)
	}
	want := strings.Join(models.FieldNames, ",") + "\n"
	if string(data) != want {
		t.Errorf("unexpected ledger content: %q", string(data))
	}

	keys, err := l.ExistingKeys()
	if err != nil {
		t.Fatalf("ExistingKeys failed: %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("expected empty key set, got %d keys", len(keys))
	}
}

func TestEnsureInitialized_Idempotent(t *testing.T) {
	l := tempLedger(t)

	if err := l.EnsureInitialized(); err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	if err := l.AppendRows([]models.LoanRateRecord{record("30-Year Fixed Rate", "2024-05-01")}); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := l.EnsureInitialized(); err != nil {
		t.Fatalf("second call failed: %v", err)
	}

	data, _ := os.ReadFile(l.Path())
	if got := strings.Count(string(data), "loan_product"); got != 1 {
		t.Errorf("expected exactly one header, found %d", got)
	}
	if !strings.Contains(string(data), "30-Year Fixed Rate") {
		t.Error("existing data row lost after re-initialization")
	}
}

func TestExistingKeys_MissingFile(t *testing.T) {
	l := tempLedger(t)

	keys, err := l.ExistingKeys()
	if err != nil {
		t.Fatalf("ExistingKeys failed: %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("expected empty set for missing file, got %d", len(keys))
	}
}

func TestAppendRows_ThenKeys(t *testing.T) {
	l := tempLedger(t)
	if err := l.EnsureInitialized(); err != nil {
		t.Fatalf("EnsureInitialized failed: %v", err)
	}

	rows := []models.LoanRateRecord{
		record("30-Year Fixed Rate", "2024-05-01"),
		record("15-Year Fixed Rate", "2024-05-01"),
	}
	if err := l.AppendRows(rows); err != nil {
		t.Fatalf("AppendRows failed: %v", err)
	}

	keys, err := l.ExistingKeys()
	if err != nil {
		t.Fatalf("ExistingKeys failed: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(keys))
	}
	if _, ok := keys[models.RecordKey{LoanProduct: "30-Year Fixed Rate", UpdatedDate: "2024-05-01"}]; !ok {
		t.Error("expected 30-year key in set")
	}
}

func TestExistingKeys_SkipsShortRows(t *testing.T) {
	l := tempLedger(t)

	content := strings.Join(models.FieldNames, ",") + "\n" +
		"truncated,row\n" +
		"30-Year Fixed Rate,6.50%,6.62%,30,Bankrate,2024-05-01\n"
	if err := os.WriteFile(l.Path(), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to seed ledger: %v", err)
	}

	keys, err := l.ExistingKeys()
	if err != nil {
		t.Fatalf("ExistingKeys failed: %v", err)
	}
	if len(keys) != 1 {
		t.Fatalf("expected short row to be skipped, got %d keys", len(keys))
	}
}

func TestAppendRows_UnwritablePath(t *testing.T) {
	// A directory at the ledger path cannot be opened for append.
	l := NewCSV(t.TempDir())

	err := l.AppendRows([]models.LoanRateRecord{record("30-Year Fixed Rate", "2024-05-01")})
	if err == nil {
		t.Fatal("expected append to an unwritable path to fail")
	}
}

func TestAppendRows_Empty(t *testing.T) {
	l := tempLedger(t)

	if err := l.AppendRows(nil); err != nil {
		t.Fatalf("empty append should be a no-op, got %v", err)
	}
	if _, err := os.Stat(l.Path()); !os.IsNotExist(err) {
		t.Error("empty append must not create the ledger file")
	}
}
