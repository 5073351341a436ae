// Package goquery implements the HTML document model and the field and
// product extractors on top of github.com/PuerkitoBio/goquery.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Document is a parsed HTML page bound to the URL it was fetched from.
// Lookups that match nothing return an empty selection or false rather
// than failing.
type Document struct {
	doc  *goquery.Document
	base *url.URL
}

// Parse builds a Document from raw HTML. It never returns nil: input that
// cannot be parsed, or an unparseable page URL, yields a document that
// matches nothing and resolves nothing.
func Parse(rawHTML string, pageURL string) *Document {
	base, err := url.Parse(pageURL)
	if err != nil || base.Host == "" {
		base = nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		doc = goquery.NewDocumentFromNode(&html.Node{Type: html.DocumentNode})
	}

	return &Document{doc: doc, base: base}
}

// Root returns the selection holding the document node.
func (d *Document) Root() *goquery.Selection {
	return d.doc.Selection
}

// SelectOne returns the first element matching the selector.
func (d *Document) SelectOne(selector string) (*goquery.Selection, bool) {
	return selectOne(d.doc.Selection, selector)
}

// SelectAll returns every element matching the selector, in document order.
func (d *Document) SelectAll(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// Text returns the whitespace-trimmed text content of the selection.
func (d *Document) Text(sel *goquery.Selection) string {
	return text(sel)
}

// Attr returns the named attribute of the first element in the selection.
func (d *Document) Attr(sel *goquery.Selection, name string) (string, bool) {
	if sel == nil || sel.Length() == 0 {
		return "", false
	}
	return sel.Attr(name)
}

// Resolve returns href as an absolute URL relative to the page URL.
// Returns an empty string if href cannot be resolved.
func (d *Document) Resolve(href string) string {
	return resolve(d.base, href)
}

// VisibleText returns the text of the page outside script, style and
// noscript elements, with text nodes joined by single spaces.
func (d *Document) VisibleText() string {
	return visibleText(d.doc.Selection)
}

func selectOne(scope *goquery.Selection, selector string) (*goquery.Selection, bool) {
	if scope == nil || selector == "" {
		return nil, false
	}
	sel := scope.Find(selector).First()
	if sel.Length() == 0 {
		return nil, false
	}
	return sel, true
}

func text(sel *goquery.Selection) string {
	if sel == nil || sel.Length() == 0 {
		return ""
	}
	return strings.TrimSpace(sel.Text())
}

func resolve(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base == nil {
		if ref.IsAbs() {
			return ref.String()
		}
		return ""
	}
	return base.ResolveReference(ref).String()
}

func visibleText(sel *goquery.Selection) string {
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "template":
				return
			}
		}
		if n.Type == html.TextNode {
			if s := strings.TrimSpace(n.Data); s != "" {
				parts = append(parts, s)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(parts, " ")
}
