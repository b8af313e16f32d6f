// internal/scrape/bankrate.go
package scrape

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ratepulse/loanrates/pkg/models"
)

// LenderName labels every record produced by this extractor.
const LenderName = "Bankrate"

// Selectors for the rates page. If the site changes its markup, this is
// the first place to look.
const (
	purchaseSection = `div[aria-labelledby="purchase-0"]`
	asOfParagraph   = "p.mb-0"
)

var termRe = regexp.MustCompile(`(\d+)[- ]?Year`)

// ExtractRecords walks the Purchase tab of the rates page and returns one
// record per table row carrying both a product label and an APR value.
// Rows missing either are treated as separators and skipped. All records
// share the page's as-of date; a page without one yields records with an
// empty date, which the validator rejects later.
func ExtractRecords(doc *goquery.Document) []models.LoanRateRecord {
	updated := PageAsOfDate(doc).String()

	var records []models.LoanRateRecord
	doc.Find(purchaseSection).Find("table tbody tr").Each(func(_ int, row *goquery.Selection) {
		product := strings.TrimSpace(row.Find("th a").First().Text())
		cells := row.Find("td")
		rate := strings.TrimSpace(cells.Eq(0).Text())
		apr := strings.TrimSpace(cells.Eq(1).Text())

		if product == "" || apr == "" {
			return
		}

		records = append(records, models.LoanRateRecord{
			LoanProduct:   product,
			InterestRate:  rate,
			APRPercent:    apr,
			LoanTermYears: TermYears(product),
			LenderName:    LenderName,
			UpdatedDate:   updated,
		})
	})

	return records
}

// PageAsOfDate locates the "Rates as of ..." paragraph and normalizes its
// timestamp. A page without the paragraph yields the zero value.
func PageAsOfDate(doc *goquery.Document) AsOfDate {
	var out AsOfDate
	doc.Find(asOfParagraph).EachWithBreak(func(_ int, p *goquery.Selection) bool {
		d := NormalizeAsOf(p.Text())
		if d.Parsed || d.Raw != "" {
			out = d
			return false
		}
		return true
	})
	return out
}

// TermYears extracts the numeric loan term from a product label, e.g.
// "30-Year Fixed Rate" yields "30". Labels without a digit-Year pattern
// yield the empty string.
func TermYears(product string) string {
	if m := termRe.FindStringSubmatch(product); m != nil {
		return m[1]
	}
	return ""
}
