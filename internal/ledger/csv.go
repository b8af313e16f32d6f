// Package ledger implements the durable rate ledger: a flat append-only
// CSV file with a fixed six-column schema, at most one row per
// (loan_product, updated_date) key.
package ledger

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/ratepulse/loanrates/pkg/models"
)

// CSV is a ledger backed by a single CSV file. Existing content is never
// rewritten or deleted; the only mutation is a batched append.
type CSV struct {
	path string
}

// NewCSV creates a ledger handle for the given file path.
func NewCSV(path string) *CSV {
	return &CSV{path: path}
}

// Path returns the ledger file path.
func (l *CSV) Path() string {
	return l.path
}

// EnsureInitialized creates the ledger file with its header row when it
// does not exist yet. Safe to call on every run.
func (l *CSV) EnsureInitialized() error {
	if _, err := os.Stat(l.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat ledger: %w", err)
	}

	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create ledger directory: %w", err)
		}
	}

	file, err := os.Create(l.path)
	if err != nil {
		return fmt.Errorf("failed to create ledger: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(models.FieldNames); err != nil {
		return fmt.Errorf("failed to write ledger header: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write ledger header: %w", err)
	}

	log.Info().Str("path", l.path).Msg("Ledger created with header")
	return nil
}

// ExistingKeys reads the whole ledger and returns the set of natural keys
// already recorded. A missing file yields an empty set, as does a
// header-only file. Rows too short to carry both key columns are skipped;
// structurally unreadable content is treated as a fresh ledger.
func (l *CSV) ExistingKeys() (map[models.RecordKey]struct{}, error) {
	keys := make(map[models.RecordKey]struct{})

	file, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return keys, nil
		}
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		log.Warn().Err(err).Str("path", l.path).Msg("Ledger unreadable, treating as empty")
		return keys, nil
	}
	if len(rows) == 0 {
		return keys, nil
	}

	productIdx := columnIndex(rows[0], "loan_product")
	dateIdx := columnIndex(rows[0], "updated_date")
	if productIdx < 0 || dateIdx < 0 {
		return keys, nil
	}

	for _, row := range rows[1:] {
		if len(row) <= productIdx || len(row) <= dateIdx {
			continue
		}
		keys[models.RecordKey{LoanProduct: row[productIdx], UpdatedDate: row[dateIdx]}] = struct{}{}
	}

	return keys, nil
}

// AppendRows appends the records to the end of the ledger as one batched
// write. No header is written here; only the six schema columns, in fixed
// order.
func (l *CSV) AppendRows(records []models.LoanRateRecord) error {
	if len(records) == 0 {
		return nil
	}

	file, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open ledger for append: %w", err)
	}
	defer file.Close()

	// Rows are buffered and flushed together so a crash mid-run cannot
	// leave a half-written batch behind.
	writer := csv.NewWriter(file)
	for _, rec := range records {
		if err := writer.Write(rec.Row()); err != nil {
			return fmt.Errorf("failed to append ledger row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush ledger append: %w", err)
	}

	log.Debug().Str("path", l.path).Int("rows", len(records)).Msg("Ledger rows appended")
	return nil
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}
