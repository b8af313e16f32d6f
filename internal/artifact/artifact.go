// Package artifact persists scraped records between the scrape and merge
// steps as a JSON file. The file accumulates records across runs; the
// merge step only ever reads it.
package artifact

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/ratepulse/loanrates/pkg/models"
)

var (
	// ErrMissing means the artifact file is absent or unreadable.
	ErrMissing = errors.New("artifact file missing")
	// ErrMalformed means the artifact exists but is not valid JSON.
	ErrMalformed = errors.New("artifact is not valid JSON")
)

// Store reads and appends the JSON artifact at a fixed path.
type Store struct {
	path string
}

// NewStore creates a Store for the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the artifact file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads all records from the artifact. A degenerate single-object
// file is accepted as a one-element sequence. An empty file yields zero
// records without error.
func (s *Store) Load() ([]models.LoanRateRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrMissing
		}
		return nil, fmt.Errorf("%w: %v", ErrMissing, err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var records []models.LoanRateRecord
	if err := json.Unmarshal(data, &records); err == nil {
		return records, nil
	}

	var one models.LoanRateRecord
	if err := json.Unmarshal(data, &one); err == nil {
		return []models.LoanRateRecord{one}, nil
	}

	return nil, ErrMalformed
}

// Append adds records to the artifact, keeping what earlier runs wrote. A
// malformed existing file is replaced rather than failing the scrape.
func (s *Store) Append(records []models.LoanRateRecord) error {
	existing, err := s.Load()
	if err != nil {
		if errors.Is(err, ErrMalformed) {
			log.Warn().Str("path", s.path).Msg("Replacing malformed artifact")
			existing = nil
		} else if !errors.Is(err, ErrMissing) {
			return err
		}
	}

	merged := append(existing, records...)

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create artifact directory: %w", err)
		}
	}

	content, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode artifact: %w", err)
	}
	if err := os.WriteFile(s.path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write artifact: %w", err)
	}

	log.Debug().
		Str("path", s.path).
		Int("added", len(records)).
		Int("total", len(merged)).
		Msg("Artifact updated")
	return nil
}
