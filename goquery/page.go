package goquery

import (
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/harvest"
)

// Ensure PageExtractor implements harvest.PageExtractor at compile time.
var _ harvest.PageExtractor = (*PageExtractor)(nil)

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?\d[\d -]{8,12}\d`)

	// Street number, street name, suffix, city, two-letter region, ZIP.
	addressPattern = regexp.MustCompile(`\b\d{1,6}\s+(?:[A-Za-z0-9.'-]+\s+){1,5}(?i:street|st|avenue|ave|road|rd|boulevard|blvd|lane|ln|drive|dr|court|ct|way|place|pl|terrace|parkway|pkwy)\.?,?\s+(?:[A-Za-z.'-]+ ?){1,4},\s*[A-Z]{2}\s+\d{5}(?:-\d{4})?\b`)

	contentClassPattern = regexp.MustCompile(`(?i)content|article|post|main`)
)

// PageExtractor extracts general-page fields.
type PageExtractor struct {
	// Articles, when set, supplies the page title and excerpt.
	Articles harvest.ArticleExtractor
}

// NewPageExtractor creates a new PageExtractor.
func NewPageExtractor(articles harvest.ArticleExtractor) *PageExtractor {
	return &PageExtractor{Articles: articles}
}

// ExtractPage runs every field extractor over the page.
func (e *PageExtractor) ExtractPage(rawHTML string, pageURL string) *harvest.GeneralRecord {
	doc := Parse(rawHTML, pageURL)

	rec := &harvest.GeneralRecord{
		Emails:       Emails(doc),
		PhoneNumbers: PhoneNumbers(doc),
		SocialLinks:  SocialLinks(doc),
		MetaInfo:     MetaInfo(doc),
		Headers:      Headers(doc),
		MainContent:  MainContent(doc),
		ContactInfo:  ContactInfo(doc),
		Images:       Images(doc),
		Links:        Links(doc),
	}

	if e.Articles != nil {
		if article, err := e.Articles.Extract(rawHTML, pageURL); err == nil && article != nil {
			rec.Title = article.Title
			rec.Excerpt = article.Excerpt
		}
	}
	if rec.Title == "" {
		if sel, ok := doc.SelectOne("title"); ok {
			rec.Title = doc.Text(sel)
		}
	}

	return rec
}

// Emails returns the distinct email addresses in the visible text.
func Emails(doc *Document) []string {
	return uniqueSorted(emailPattern.FindAllString(doc.VisibleText(), -1))
}

// PhoneNumbers returns the distinct phone-number-shaped tokens in the
// visible text.
func PhoneNumbers(doc *Document) []string {
	matches := phonePattern.FindAllString(doc.VisibleText(), -1)
	for i, m := range matches {
		matches[i] = strings.TrimSpace(m)
	}
	return uniqueSorted(matches)
}

// Addresses returns the distinct US-style postal addresses in the visible
// text.
func Addresses(doc *Document) []string {
	matches := addressPattern.FindAllString(doc.VisibleText(), -1)
	for i, m := range matches {
		matches[i] = strings.Join(strings.Fields(m), " ")
	}
	return uniqueSorted(matches)
}

// ContactInfo groups emails, phones and postal addresses.
func ContactInfo(doc *Document) harvest.ContactInfo {
	return harvest.ContactInfo{
		Emails:    Emails(doc),
		Phones:    PhoneNumbers(doc),
		Addresses: Addresses(doc),
	}
}

// SocialLinks groups anchor hrefs by the social platform they mention.
// Platforms without any link are omitted.
func SocialLinks(doc *Document) map[string][]string {
	links := make(map[string][]string)
	doc.SelectAll("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		lower := strings.ToLower(href)
		for _, platform := range harvest.SocialPlatforms {
			if strings.Contains(lower, platform) {
				links[platform] = append(links[platform], href)
			}
		}
	})
	return links
}

// MetaInfo maps each meta tag's name (or, failing that, property) to its
// content. Later tags overwrite earlier ones with the same key.
func MetaInfo(doc *Document) map[string]string {
	meta := make(map[string]string)
	doc.SelectAll("meta").Each(func(_ int, sel *goquery.Selection) {
		key, ok := sel.Attr("name")
		if !ok {
			key, ok = sel.Attr("property")
		}
		if !ok {
			return
		}
		content, _ := sel.Attr("content")
		meta[key] = content
	})
	return meta
}

// Headers collects heading text for levels h1 through h6 in document order.
// Every level is present in the result, empty when the page has none.
func Headers(doc *Document) map[string][]string {
	headers := make(map[string][]string, len(harvest.HeaderLevels))
	for _, level := range harvest.HeaderLevels {
		texts := []string{}
		doc.SelectAll(level).Each(func(_ int, sel *goquery.Selection) {
			texts = append(texts, text(sel))
		})
		headers[level] = texts
	}
	return headers
}

// MainContent returns the text of article, main and div elements whose
// class looks like a content container.
func MainContent(doc *Document) []string {
	content := []string{}
	doc.SelectAll("article[class], main[class], div[class]").Each(func(_ int, sel *goquery.Selection) {
		class, _ := sel.Attr("class")
		if !contentClassPattern.MatchString(class) {
			return
		}
		if t := visibleText(sel); t != "" {
			content = append(content, t)
		}
	})
	return content
}

// Images returns every image with a source, resolved to an absolute URL.
func Images(doc *Document) []harvest.Image {
	images := []harvest.Image{}
	doc.SelectAll("img[src]").Each(func(_ int, sel *goquery.Selection) {
		src, _ := sel.Attr("src")
		resolved := doc.Resolve(src)
		if resolved == "" {
			return
		}
		alt, _ := sel.Attr("alt")
		title, _ := sel.Attr("title")
		images = append(images, harvest.Image{
			Src:   resolved,
			Alt:   strings.TrimSpace(alt),
			Title: strings.TrimSpace(title),
		})
	})
	return images
}

// Links returns anchors pointing at http(s) URLs or site-relative paths,
// resolved to absolute URLs and paired with their text.
func Links(doc *Document) []harvest.Link {
	links := []harvest.Link{}
	doc.SelectAll("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		lower := strings.ToLower(href)
		if !strings.HasPrefix(lower, "http") && !strings.HasPrefix(href, "/") {
			return
		}
		resolved := doc.Resolve(href)
		if resolved == "" {
			return
		}
		links = append(links, harvest.Link{
			URL:  resolved,
			Text: strings.Join(strings.Fields(sel.Text()), " "),
		})
	})
	return links
}

func uniqueSorted(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := []string{}
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
