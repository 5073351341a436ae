package mock

import "github.com/fwojciec/harvest"

var (
	_ harvest.PageExtractor    = (*PageExtractor)(nil)
	_ harvest.ProductExtractor = (*ProductExtractor)(nil)
	_ harvest.ArticleExtractor = (*ArticleExtractor)(nil)
)

// PageExtractor is a mock implementation of harvest.PageExtractor.
type PageExtractor struct {
	ExtractPageFn func(html, pageURL string) *harvest.GeneralRecord
}

func (e *PageExtractor) ExtractPage(html, pageURL string) *harvest.GeneralRecord {
	return e.ExtractPageFn(html, pageURL)
}

// ProductExtractor is a mock implementation of harvest.ProductExtractor.
type ProductExtractor struct {
	ExtractProductsFn func(html, pageURL string) []*harvest.Product
}

func (e *ProductExtractor) ExtractProducts(html, pageURL string) []*harvest.Product {
	return e.ExtractProductsFn(html, pageURL)
}

// ArticleExtractor is a mock implementation of harvest.ArticleExtractor.
type ArticleExtractor struct {
	ExtractFn func(html, pageURL string) (*harvest.Article, error)
}

func (e *ArticleExtractor) Extract(html, pageURL string) (*harvest.Article, error) {
	return e.ExtractFn(html, pageURL)
}
