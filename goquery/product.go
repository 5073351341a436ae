package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/harvest"
)

// Ensure ProductExtractor implements harvest.ProductExtractor at compile time.
var _ harvest.ProductExtractor = (*ProductExtractor)(nil)

// Elements with one of these in their class attribute are product
// candidates on pages of unknown sites.
var candidateClassPattern = regexp.MustCompile(`product|item|listing`)

// ProductExtractor extracts product listings, dispatching on the page URL
// to a site profile or to the generic candidate scan.
type ProductExtractor struct {
	profiles *harvest.SiteProfiles
}

// NewProductExtractor creates a ProductExtractor using the given profiles.
// A nil profile set sends every page through the generic scan.
func NewProductExtractor(profiles *harvest.SiteProfiles) *ProductExtractor {
	return &ProductExtractor{profiles: profiles}
}

// ExtractProducts returns the viable products on the page.
//
// For a known site the whole document is one candidate read with the
// site's selectors only; fields without a selector stay empty. Otherwise each element whose class matches
// product|item|listing is a candidate read with GenericSelectors.
// Candidates without a title or price are dropped; duplicates are kept.
func (e *ProductExtractor) ExtractProducts(rawHTML string, pageURL string) []*harvest.Product {
	doc := Parse(rawHTML, pageURL)
	products := []*harvest.Product{}

	if profile, ok := e.profiles.Detect(pageURL); ok {
		if p := ExtractProduct(doc, doc.Root(), profile.Selectors); p.Viable() {
			products = append(products, p)
		}
		return products
	}

	doc.SelectAll("[class]").Each(func(_ int, sel *goquery.Selection) {
		class, _ := sel.Attr("class")
		if !candidateClassPattern.MatchString(class) {
			return
		}
		if p := ExtractProduct(doc, sel, GenericSelectors); p.Viable() {
			products = append(products, p)
		}
	})
	return products
}

// ExtractProduct reads every product field from within scope. It does not
// check viability.
func ExtractProduct(doc *Document, scope *goquery.Selection, s harvest.ProductSelectors) *harvest.Product {
	priceText := selectText(scope, s.Price)

	p := &harvest.Product{
		Title:          selectText(scope, s.Title),
		Currency:       DetectCurrency(priceText),
		ReviewsCount:   ParseCount(selectText(scope, s.Reviews)),
		Availability:   selectText(scope, s.Availability),
		ImageURL:       selectImage(doc, scope, s.Image),
		Seller:         selectText(scope, s.Seller),
		Specifications: selectSpecifications(scope, s.Specifications),
	}
	if v, ok := ParsePrice(priceText); ok {
		p.Price = &v
	}
	if v, ok := ParseRating(selectText(scope, s.Rating)); ok {
		p.Rating = &v
	}
	return p
}

func selectText(scope *goquery.Selection, selector string) string {
	sel, ok := selectOne(scope, selector)
	if !ok {
		return ""
	}
	return text(sel)
}

func selectImage(doc *Document, scope *goquery.Selection, selector string) string {
	sel, ok := selectOne(scope, selector)
	if !ok {
		return ""
	}
	src, ok := sel.Attr("src")
	if !ok {
		inner, found := selectOne(sel, "img[src]")
		if !found {
			return ""
		}
		src, _ = inner.Attr("src")
	}
	return doc.Resolve(src)
}

// selectSpecifications parses "key: value" items. Items without a colon
// are skipped.
func selectSpecifications(scope *goquery.Selection, selector string) map[string]string {
	specs := make(map[string]string)
	if scope == nil || selector == "" {
		return specs
	}
	scope.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		key, value, ok := strings.Cut(text(sel), ":")
		if !ok {
			return
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return
		}
		specs[key] = strings.TrimSpace(value)
	})
	return specs
}
