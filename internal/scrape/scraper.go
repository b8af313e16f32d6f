// internal/scrape/scraper.go
package scrape

import (
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/ratepulse/loanrates/pkg/models"
)

// Scraper fetches the rates page with a plain HTTP GET and parses it with
// goquery. The page is static HTML, so no browser is involved.
type Scraper struct {
	client    *http.Client
	userAgent string
}

// New creates a Scraper with dependency injection.
func New(client *http.Client, userAgent string) *Scraper {
	return &Scraper{
		client:    client,
		userAgent: userAgent,
	}
}

// FetchDocument retrieves url and returns the parsed document.
func (s *Scraper) FetchDocument(url string) (*goquery.Document, error) {
	start := time.Now()

	log.Debug().Str("url", url).Msg("Starting fetch")

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	log.Debug().
		Str("url", url).
		Int("status", resp.StatusCode).
		Int64("response_time_ms", time.Since(start).Milliseconds()).
		Msg("Fetch completed")

	return doc, nil
}

// Scrape fetches url and extracts its rate records in one call.
func (s *Scraper) Scrape(url string) ([]models.LoanRateRecord, error) {
	doc, err := s.FetchDocument(url)
	if err != nil {
		return nil, err
	}
	return ExtractRecords(doc), nil
}
