package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/harvest"
)

var (
	_ harvest.ScrapeService = (*LoggingScrapeService)(nil)
	_ harvest.PriceService  = (*LoggingPriceService)(nil)
)

// LoggingScrapeService wraps a ScrapeService with logging.
// Failed scrapes are logged at warn level.
type LoggingScrapeService struct {
	next   harvest.ScrapeService
	logger *slog.Logger
}

// NewLoggingScrapeService creates a new LoggingScrapeService.
func NewLoggingScrapeService(next harvest.ScrapeService, logger *slog.Logger) *LoggingScrapeService {
	return &LoggingScrapeService{next: next, logger: logger}
}

// Scrape delegates to the wrapped service and logs the outcome.
func (s *LoggingScrapeService) Scrape(ctx context.Context, url string, mode harvest.Mode) (res *harvest.ScrapeResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", url,
			"mode", mode,
			"duration", time.Since(begin),
		}
		if err != nil {
			s.logger.Warn("scrape", append(attrs, "code", harvest.ErrorCode(err), "err", err)...)
			return
		}
		attrs = append(attrs, "status", res.Status)
		if res.Products != nil {
			attrs = append(attrs, "products", len(res.Products.Products))
		}
		s.logger.Info("scrape", attrs...)
	}(time.Now())
	return s.next.Scrape(ctx, url, mode)
}

// LoggingPriceService wraps a PriceService with logging.
type LoggingPriceService struct {
	next   harvest.PriceService
	logger *slog.Logger
}

// NewLoggingPriceService creates a new LoggingPriceService.
func NewLoggingPriceService(next harvest.PriceService, logger *slog.Logger) *LoggingPriceService {
	return &LoggingPriceService{next: next, logger: logger}
}

// TrackPrice delegates to the wrapped service and logs the outcome.
func (s *LoggingPriceService) TrackPrice(ctx context.Context, url string, target float64) (check *harvest.PriceCheck, err error) {
	defer func(begin time.Time) {
		dropped := check != nil && check.Dropped()
		s.logger.Info("track price",
			"url", url,
			"target", target,
			"dropped", dropped,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.TrackPrice(ctx, url, target)
}

// ComparePrices delegates to the wrapped service and logs each failed quote.
func (s *LoggingPriceService) ComparePrices(ctx context.Context, urls []string) (quotes []harvest.PriceQuote, err error) {
	defer func(begin time.Time) {
		failed := 0
		for _, q := range quotes {
			if q.Err != nil {
				failed++
				s.logger.Warn("price quote", "url", q.URL, "err", q.Err)
			}
		}
		s.logger.Info("compare prices",
			"urls", len(urls),
			"failed", failed,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ComparePrices(ctx, urls)
}
