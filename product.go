package harvest

import (
	"context"
	"strings"
	"time"
)

// Product is a single product listing extracted from a page.
type Product struct {
	Title          string            `json:"title"`
	Price          *float64          `json:"price"`
	Currency       string            `json:"currency,omitempty"`
	Rating         *float64          `json:"rating"`
	ReviewsCount   int               `json:"reviewsCount"`
	Availability   string            `json:"availability"`
	ImageURL       string            `json:"imageUrl,omitempty"`
	Seller         string            `json:"seller"`
	Specifications map[string]string `json:"specifications"`
}

// Viable reports whether the product has both a title and a price.
// Products that are not viable are never recorded.
func (p *Product) Viable() bool {
	return p != nil && strings.TrimSpace(p.Title) != "" && p.Price != nil
}

// ProductRecord is the persisted result of a products-mode scrape of a URL.
type ProductRecord struct {
	URL         string     `json:"url"`
	Products    []*Product `json:"products"`
	ScrapeDate  time.Time  `json:"scrapeDate"`
	LastUpdated time.Time  `json:"lastUpdated"`
}

// Validate returns an error if the record contains invalid fields.
func (r *ProductRecord) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "product record URL required")
	}
	for _, p := range r.Products {
		if !p.Viable() {
			return Errorf(EINVALID, "product record contains product without title or price")
		}
	}
	return nil
}

// ProductRecordService persists product listings keyed by URL. Each
// accepted product is stored as its own row; a URL may own many rows.
type ProductRecordService interface {
	// UpsertProductRecord replaces the products stored for the record's URL.
	// The earliest ScrapeDate for the URL is kept and LastUpdated refreshed.
	UpsertProductRecord(ctx context.Context, record *ProductRecord) (UpsertStatus, error)

	// FindProductRecordByURL retrieves the products stored for a URL.
	// Returns ENOTFOUND if the URL was never recorded.
	FindProductRecordByURL(ctx context.Context, url string) (*ProductRecord, error)

	// FindProductRecords returns all product records, most recently
	// updated first.
	FindProductRecords(ctx context.Context) ([]*ProductRecord, error)
}
