package harvest

import (
	"context"
	"net/url"
)

// Mode selects which record shape a scrape produces.
type Mode string

// Supported scrape modes.
const (
	ModeGeneral  Mode = "general"
	ModeProducts Mode = "products"
)

// Validate returns an error if the mode is unknown.
func (m Mode) Validate() error {
	switch m {
	case ModeGeneral, ModeProducts:
		return nil
	}
	return Errorf(EINVALID, "unknown mode %q", m)
}

// ValidateURL returns an error unless raw is an absolute http(s) URL.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return Errorf(EINVALID, "invalid URL %q: %v", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Errorf(EINVALID, "URL %q must use http or https", raw)
	}
	if u.Host == "" {
		return Errorf(EINVALID, "URL %q must include a host", raw)
	}
	return nil
}

// ScrapeResult is the outcome of a successful scrape.
// Exactly one of Record and Products is set, depending on the mode.
type ScrapeResult struct {
	Mode     Mode
	Status   UpsertStatus
	Record   *GeneralRecord
	Products *ProductRecord
}

// ScrapeService runs a complete scrape: fetch, extract, persist and log.
type ScrapeService interface {
	// Scrape fetches the URL, extracts a record for the mode and upserts
	// it. Every call appends exactly one attempt, whether it succeeds or
	// fails. Fetch failures and storage write failures are returned.
	Scrape(ctx context.Context, url string, mode Mode) (*ScrapeResult, error)
}

// PriceCheck reports the current price of a tracked product.
type PriceCheck struct {
	URL    string
	Title  string
	Price  *float64
	Target float64
}

// Dropped reports whether the price is at or below the target.
func (c *PriceCheck) Dropped() bool {
	return c.Price != nil && *c.Price <= c.Target
}

// PriceQuote is the price found for one URL during a comparison.
type PriceQuote struct {
	URL   string
	Title string
	Price *float64
	Err   error
}

// PriceService checks product prices without persisting anything.
type PriceService interface {
	// TrackPrice extracts the first product on the page at url and compares
	// its price against target. Returns ENOTFOUND when no product is found.
	TrackPrice(ctx context.Context, url string, target float64) (*PriceCheck, error)

	// ComparePrices fetches each url in turn and quotes its first product.
	// Per-url failures are reported in the quote's Err field.
	ComparePrices(ctx context.Context, urls []string) ([]PriceQuote, error)
}
