package scrape

import (
	"regexp"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// asOfLayout matches phrases like "Tuesday, May 7, 2024 at 7:30 AM".
const asOfLayout = "Monday, January 2, 2006 at 3:04 PM"

var asOfRe = regexp.MustCompile(`Rates as of (.+)`)

// AsOfDate is the page-wide observation date. When the source phrase does
// not parse, Raw carries the trimmed captured text and Parsed is false;
// String then returns that raw text, which the date filter downstream
// rejects. Normalization never aborts a run.
type AsOfDate struct {
	Date   civil.Date
	Raw    string
	Parsed bool
}

// String renders the ISO date on success, the raw fallback text otherwise.
func (d AsOfDate) String() string {
	if d.Parsed {
		return d.Date.String()
	}
	return d.Raw
}

// NormalizeAsOf extracts the timestamp phrase from a "Rates as of ..."
// text and parses it into a calendar date. Text without the phrase yields
// the zero value; an unparseable phrase degrades to its raw text.
func NormalizeAsOf(text string) AsOfDate {
	m := asOfRe.FindStringSubmatch(text)
	if m == nil {
		return AsOfDate{}
	}

	raw := strings.TrimSpace(m[1])
	t, err := time.Parse(asOfLayout, raw)
	if err != nil {
		return AsOfDate{Raw: raw}
	}
	return AsOfDate{Date: civil.DateOf(t), Parsed: true}
}
