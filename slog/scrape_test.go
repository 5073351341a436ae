package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/mock"
	harvestslog "github.com/fwojciec/harvest/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingScrapeService_Scrape(t *testing.T) {
	t.Parallel()

	t.Run("logs url, mode and status on success", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ScrapeService{
			ScrapeFn: func(_ context.Context, _ string, mode harvest.Mode) (*harvest.ScrapeResult, error) {
				p := 1.0
				return &harvest.ScrapeResult{
					Mode:   mode,
					Status: harvest.StatusInserted,
					Products: &harvest.ProductRecord{
						Products: []*harvest.Product{{Title: "Widget", Price: &p}},
					},
				}, nil
			},
		}

		svc := harvestslog.NewLoggingScrapeService(inner, logger)
		res, err := svc.Scrape(context.Background(), "https://shop.example.com", harvest.ModeProducts)

		require.NoError(t, err)
		assert.Equal(t, harvest.StatusInserted, res.Status)
		output := buf.String()
		assert.Contains(t, output, "level=INFO")
		assert.Contains(t, output, "msg=scrape")
		assert.Contains(t, output, "url=https://shop.example.com")
		assert.Contains(t, output, "mode=products")
		assert.Contains(t, output, "status=inserted")
		assert.Contains(t, output, "products=1")
	})

	t.Run("logs warning with error code on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ScrapeService{
			ScrapeFn: func(context.Context, string, harvest.Mode) (*harvest.ScrapeResult, error) {
				return nil, harvest.Errorf(harvest.EINVALID, "bad url")
			},
		}

		svc := harvestslog.NewLoggingScrapeService(inner, logger)
		_, err := svc.Scrape(context.Background(), "nope", harvest.ModeGeneral)

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "code=invalid")
		assert.Contains(t, output, "bad url")
		assert.NotContains(t, output, "status=")
	})
}

func TestLoggingPriceService(t *testing.T) {
	t.Parallel()

	t.Run("logs tracked price", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.PriceService{
			TrackPriceFn: func(_ context.Context, url string, target float64) (*harvest.PriceCheck, error) {
				p := 9.5
				return &harvest.PriceCheck{URL: url, Price: &p, Target: target}, nil
			},
		}

		check, err := harvestslog.NewLoggingPriceService(inner, logger).TrackPrice(context.Background(), "https://shop.example.com", 10)
		require.NoError(t, err)
		assert.True(t, check.Dropped())
		output := buf.String()
		assert.Contains(t, output, "msg=\"track price\"")
		assert.Contains(t, output, "dropped=true")
		assert.Contains(t, output, "target=10")
	})

	t.Run("logs failed quotes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.PriceService{
			ComparePricesFn: func(_ context.Context, urls []string) ([]harvest.PriceQuote, error) {
				return []harvest.PriceQuote{
					{URL: urls[0]},
					{URL: urls[1], Err: errors.New("timeout")},
				}, nil
			},
		}

		quotes, err := harvestslog.NewLoggingPriceService(inner, logger).ComparePrices(context.Background(),
			[]string{"https://a.example.com", "https://b.example.com"})
		require.NoError(t, err)
		assert.Len(t, quotes, 2)
		output := buf.String()
		assert.Contains(t, output, "level=WARN msg=\"price quote\" url=https://b.example.com err=timeout")
		assert.Contains(t, output, "failed=1")
		assert.Contains(t, output, "urls=2")
	})
}
