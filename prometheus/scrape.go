package prometheus

import (
	"context"
	"time"

	"github.com/fwojciec/harvest"
)

var _ harvest.ScrapeService = (*ScrapeService)(nil)

// ScrapeService wraps a ScrapeService and records metrics for each call.
type ScrapeService struct {
	next    harvest.ScrapeService
	metrics *Metrics
}

// NewScrapeService creates a new ScrapeService.
func NewScrapeService(next harvest.ScrapeService, metrics *Metrics) *ScrapeService {
	return &ScrapeService{next: next, metrics: metrics}
}

// Scrape delegates to the wrapped service and records its outcome.
func (s *ScrapeService) Scrape(ctx context.Context, url string, mode harvest.Mode) (res *harvest.ScrapeResult, err error) {
	defer func(begin time.Time) {
		s.metrics.ObserveScrape(mode, res, err, time.Since(begin))
	}(time.Now())
	return s.next.Scrape(ctx, url, mode)
}
