package mock

import (
	"context"

	"github.com/fwojciec/harvest"
)

var (
	_ harvest.ScrapeService = (*ScrapeService)(nil)
	_ harvest.PriceService  = (*PriceService)(nil)
)

// ScrapeService is a mock implementation of harvest.ScrapeService.
type ScrapeService struct {
	ScrapeFn func(ctx context.Context, url string, mode harvest.Mode) (*harvest.ScrapeResult, error)
}

func (s *ScrapeService) Scrape(ctx context.Context, url string, mode harvest.Mode) (*harvest.ScrapeResult, error) {
	return s.ScrapeFn(ctx, url, mode)
}

// PriceService is a mock implementation of harvest.PriceService.
type PriceService struct {
	TrackPriceFn    func(ctx context.Context, url string, target float64) (*harvest.PriceCheck, error)
	ComparePricesFn func(ctx context.Context, urls []string) ([]harvest.PriceQuote, error)
}

func (s *PriceService) TrackPrice(ctx context.Context, url string, target float64) (*harvest.PriceCheck, error) {
	return s.TrackPriceFn(ctx, url, target)
}

func (s *PriceService) ComparePrices(ctx context.Context, urls []string) ([]harvest.PriceQuote, error) {
	return s.ComparePricesFn(ctx, urls)
}
