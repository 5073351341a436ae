// Package scrape orchestrates a single page scrape: fetch, extract,
// assemble, persist, and record the attempt.
package scrape

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/harvest"
	"golang.org/x/sync/errgroup"
)

// Compile-time interface verification.
var (
	_ harvest.ScrapeService = (*Scraper)(nil)
	_ harvest.PriceService  = (*Scraper)(nil)
)

// Scraper implements harvest.ScrapeService and harvest.PriceService.
type Scraper struct {
	Fetcher        harvest.Fetcher
	Pages          harvest.PageExtractor
	Products       harvest.ProductExtractor
	Records        harvest.RecordService
	ProductRecords harvest.ProductRecordService
	Attempts       harvest.AttemptService

	// Concurrency bounds parallel fetches in ComparePrices. Values below 1
	// mean one fetch at a time.
	Concurrency int

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Scrape fetches url, extracts the fields for mode and upserts the result.
// Exactly one attempt is logged per call, whatever the outcome.
func (s *Scraper) Scrape(ctx context.Context, url string, mode harvest.Mode) (*harvest.ScrapeResult, error) {
	res, err := s.scrape(ctx, url, mode)

	attempt := &harvest.Attempt{
		URL:       url,
		Mode:      mode,
		Timestamp: s.now(),
	}
	if err != nil {
		attempt.Status = harvest.AttemptError
		attempt.ErrorMessage = err.Error()
	} else {
		attempt.Status = harvest.AttemptStatus(res.Status)
	}

	// The attempt is recorded even when the caller's context is done.
	if logErr := s.Attempts.LogAttempt(context.WithoutCancel(ctx), attempt); logErr != nil {
		logErr = fmt.Errorf("log attempt: %w", logErr)
		if err != nil {
			return nil, errors.Join(err, logErr)
		}
		return nil, logErr
	}

	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Scraper) scrape(ctx context.Context, url string, mode harvest.Mode) (*harvest.ScrapeResult, error) {
	if err := harvest.ValidateURL(url); err != nil {
		return nil, err
	}
	if err := mode.Validate(); err != nil {
		return nil, err
	}

	html, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	now := s.now()
	switch mode {
	case harvest.ModeProducts:
		rec := s.assembleProducts(html, url, now)
		status, err := s.ProductRecords.UpsertProductRecord(ctx, rec)
		if err != nil {
			return nil, fmt.Errorf("save products: %w", err)
		}
		return &harvest.ScrapeResult{Mode: mode, Status: status, Products: rec}, nil
	default:
		rec := s.assembleRecord(html, url, now)
		status, err := s.Records.UpsertRecord(ctx, rec)
		if err != nil {
			return nil, fmt.Errorf("save record: %w", err)
		}
		return &harvest.ScrapeResult{Mode: mode, Status: status, Record: rec}, nil
	}
}

// assembleRecord stamps the extracted page with its URL and scrape time.
func (s *Scraper) assembleRecord(html, url string, now time.Time) *harvest.GeneralRecord {
	rec := s.Pages.ExtractPage(html, url)
	if rec == nil {
		rec = &harvest.GeneralRecord{}
	}
	rec.URL = url
	rec.ScrapeDate = now
	rec.LastUpdated = now
	return rec
}

// assembleProducts keeps only viable products and stamps the record.
func (s *Scraper) assembleProducts(html, url string, now time.Time) *harvest.ProductRecord {
	return &harvest.ProductRecord{
		URL:         url,
		Products:    s.viableProducts(html, url),
		ScrapeDate:  now,
		LastUpdated: now,
	}
}

func (s *Scraper) viableProducts(html, url string) []*harvest.Product {
	products := []*harvest.Product{}
	for _, p := range s.Products.ExtractProducts(html, url) {
		if p.Viable() {
			products = append(products, p)
		}
	}
	return products
}

// TrackPrice reports the price of the first product found at url.
// Nothing is persisted.
func (s *Scraper) TrackPrice(ctx context.Context, url string, target float64) (*harvest.PriceCheck, error) {
	if target < 0 {
		return nil, harvest.Errorf(harvest.EINVALID, "target price must not be negative")
	}
	p, err := s.firstProduct(ctx, url)
	if err != nil {
		return nil, err
	}
	return &harvest.PriceCheck{
		URL:    url,
		Title:  p.Title,
		Price:  p.Price,
		Target: target,
	}, nil
}

// ComparePrices quotes the first product at each url. Quotes are returned
// in the order of urls; a failed url carries its error in the quote.
func (s *Scraper) ComparePrices(ctx context.Context, urls []string) ([]harvest.PriceQuote, error) {
	if len(urls) == 0 {
		return nil, harvest.Errorf(harvest.EINVALID, "at least one URL required")
	}

	limit := s.Concurrency
	if limit < 1 {
		limit = 1
	}

	quotes := make([]harvest.PriceQuote, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, url := range urls {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			quotes[i] = harvest.PriceQuote{URL: url}
			p, err := s.firstProduct(gctx, url)
			if err != nil {
				quotes[i].Err = err
				return nil
			}
			quotes[i].Title = p.Title
			quotes[i].Price = p.Price
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return quotes, nil
}

func (s *Scraper) firstProduct(ctx context.Context, url string) (*harvest.Product, error) {
	if err := harvest.ValidateURL(url); err != nil {
		return nil, err
	}
	html, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	products := s.viableProducts(html, url)
	if len(products) == 0 {
		return nil, harvest.Errorf(harvest.ENOTFOUND, "no product found at %s", url)
	}
	return products[0], nil
}

func (s *Scraper) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}
