// Package readability summarizes pages using go-readability.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/harvest"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements harvest.ArticleExtractor at compile time.
var _ harvest.ArticleExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract an article summary from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the title, byline and excerpt of the page's main article.
func (e *Extractor) Extract(rawHTML string, pageURL string) (*harvest.Article, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, harvest.Errorf(harvest.EINVALID, "empty HTML input")
	}

	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, harvest.Errorf(harvest.EINVALID, "invalid page URL: %v", err)
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), u)
	if err != nil {
		return nil, err
	}

	return &harvest.Article{
		Title:   strings.TrimSpace(article.Title),
		Excerpt: strings.TrimSpace(article.Excerpt),
	}, nil
}
