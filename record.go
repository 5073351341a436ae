package harvest

import (
	"context"
	"time"
)

// HeaderLevels lists the heading keys present in GeneralRecord.Headers.
var HeaderLevels = []string{"h1", "h2", "h3", "h4", "h5", "h6"}

// SocialPlatforms is the fixed platform vocabulary for social links.
var SocialPlatforms = []string{"facebook", "twitter", "instagram", "linkedin", "youtube"}

// GeneralRecord is the persisted result of a general-mode scrape of a URL.
type GeneralRecord struct {
	URL          string              `json:"url"`
	Title        string              `json:"title"`
	Excerpt      string              `json:"excerpt"`
	Emails       []string            `json:"emails"`
	PhoneNumbers []string            `json:"phoneNumbers"`
	SocialLinks  map[string][]string `json:"socialLinks"`
	MetaInfo     map[string]string   `json:"metaInfo"`
	Headers      map[string][]string `json:"headers"`
	MainContent  []string            `json:"mainContent"`
	ContactInfo  ContactInfo         `json:"contactInfo"`
	Images       []Image             `json:"images"`
	Links        []Link              `json:"links"`
	ContentHash  string              `json:"contentHash"`
	ScrapeDate   time.Time           `json:"scrapeDate"`
	LastUpdated  time.Time           `json:"lastUpdated"`
}

// Validate returns an error if the record contains invalid fields.
func (r *GeneralRecord) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "record URL required")
	}
	if r.LastUpdated.Before(r.ScrapeDate) {
		return Errorf(EINVALID, "record last updated before scrape date")
	}
	return nil
}

// ContactInfo groups the contact details found on a page.
type ContactInfo struct {
	Emails    []string `json:"emails"`
	Phones    []string `json:"phones"`
	Addresses []string `json:"addresses"`
}

// Image is an <img> element with an absolute source URL.
type Image struct {
	Src   string `json:"src"`
	Alt   string `json:"alt"`
	Title string `json:"title"`
}

// Link is an anchor with an absolute URL and its visible text.
type Link struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

// UpsertStatus reports whether an upsert created or replaced a record.
type UpsertStatus string

// UpsertStatus values.
const (
	StatusInserted UpsertStatus = "inserted"
	StatusUpdated  UpsertStatus = "updated"
)

// RecordService persists general records keyed by URL.
type RecordService interface {
	// UpsertRecord inserts the record if its URL is new. Otherwise all
	// fields are overwritten, the stored ScrapeDate is kept and
	// LastUpdated is refreshed. The record is updated in place with the
	// stored timestamps.
	UpsertRecord(ctx context.Context, record *GeneralRecord) (UpsertStatus, error)

	// FindRecordByURL retrieves a record by URL.
	// Returns ENOTFOUND if no record exists.
	FindRecordByURL(ctx context.Context, url string) (*GeneralRecord, error)

	// FindRecords returns all records, most recently updated first.
	FindRecords(ctx context.Context) ([]*GeneralRecord, error)
}
