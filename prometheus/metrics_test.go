package prometheus_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/mock"
	harvestprom "github.com/fwojciec/harvest/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrapeService_Scrape(t *testing.T) {
	t.Parallel()

	t.Run("counts successful scrapes by mode and status", func(t *testing.T) {
		t.Parallel()

		metrics := harvestprom.NewMetrics()
		p := 19.99
		inner := &mock.ScrapeService{
			ScrapeFn: func(_ context.Context, _ string, mode harvest.Mode) (*harvest.ScrapeResult, error) {
				return &harvest.ScrapeResult{
					Mode:   mode,
					Status: harvest.StatusInserted,
					Products: &harvest.ProductRecord{Products: []*harvest.Product{
						{Title: "A", Price: &p},
						{Title: "B", Price: &p},
					}},
				}, nil
			},
		}
		svc := harvestprom.NewScrapeService(inner, metrics)

		_, err := svc.Scrape(context.Background(), "https://shop.example.com", harvest.ModeProducts)
		require.NoError(t, err)
		_, err = svc.Scrape(context.Background(), "https://shop.example.com", harvest.ModeProducts)
		require.NoError(t, err)

		assert.Equal(t, 2.0, testutil.ToFloat64(metrics.ScrapesTotal.WithLabelValues("products", "inserted")))
		assert.Equal(t, 4.0, testutil.ToFloat64(metrics.ProductsExtracted))
		assert.Equal(t, 1, testutil.CollectAndCount(metrics.ScrapeDuration))
		assert.Equal(t, 0, testutil.CollectAndCount(metrics.ErrorsTotal))
	})

	t.Run("counts failures by error code", func(t *testing.T) {
		t.Parallel()

		metrics := harvestprom.NewMetrics()
		inner := &mock.ScrapeService{
			ScrapeFn: func(_ context.Context, url string, _ harvest.Mode) (*harvest.ScrapeResult, error) {
				return nil, &harvest.FetchError{URL: url, StatusCode: 500}
			},
		}
		svc := harvestprom.NewScrapeService(inner, metrics)

		_, err := svc.Scrape(context.Background(), "https://example.com", harvest.ModeGeneral)
		require.Error(t, err)

		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ScrapesTotal.WithLabelValues("general", "error")))
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ErrorsTotal.WithLabelValues(harvest.EFETCH)))
		assert.Equal(t, 0.0, testutil.ToFloat64(metrics.ProductsExtracted))
	})
}

func TestMetrics_WriteTextfile(t *testing.T) {
	t.Parallel()

	metrics := harvestprom.NewMetrics()
	metrics.ObserveScrape(harvest.ModeGeneral, &harvest.ScrapeResult{Status: harvest.StatusUpdated}, nil, 0)

	path := filepath.Join(t.TempDir(), "harvest.prom")
	require.NoError(t, metrics.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `harvest_scrapes_total{mode="general",status="updated"} 1`)
	assert.Contains(t, string(data), "# HELP harvest_scrape_duration_seconds")
}

func TestMetrics_NilIsNoop(t *testing.T) {
	t.Parallel()

	var metrics *harvestprom.Metrics
	assert.NotPanics(t, func() {
		metrics.ObserveScrape(harvest.ModeGeneral, nil, nil, 0)
	})
}
