package harvest

// PageExtractor extracts general-page fields from HTML.
//
// Extraction never fails: a field that cannot be extracted for any reason
// takes its empty value, so a missing field is indistinguishable from one
// that is absent on the page.
type PageExtractor interface {
	// ExtractPage returns the general fields of the page. The pageURL is
	// used to resolve relative image and link URLs. URL and timestamps on
	// the returned record are left for the caller to stamp.
	ExtractPage(html string, pageURL string) *GeneralRecord
}

// ProductExtractor extracts product listings from HTML.
type ProductExtractor interface {
	// ExtractProducts returns the viable products found on the page.
	// Products lacking a title or a parseable price are discarded.
	ExtractProducts(html string, pageURL string) []*Product
}

// Article is a readability summary of a page.
type Article struct {
	Title   string
	Excerpt string
}

// ArticleExtractor summarizes the readable article on a page.
type ArticleExtractor interface {
	Extract(html string, pageURL string) (*Article, error)
}
