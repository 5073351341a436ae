package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/harvest"
	main "github.com/fwojciec/harvest/cmd/harvest"
	"github.com/fwojciec/harvest/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(v float64) *float64 { return &v }

func TestScrapeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints record summary in general mode", func(t *testing.T) {
		t.Parallel()

		var gotMode harvest.Mode
		scraper := &mock.ScrapeService{
			ScrapeFn: func(_ context.Context, url string, mode harvest.Mode) (*harvest.ScrapeResult, error) {
				gotMode = mode
				return &harvest.ScrapeResult{
					Mode:   mode,
					Status: harvest.StatusInserted,
					Record: &harvest.GeneralRecord{
						URL:    url,
						Title:  "Example",
						Emails: []string{"a@example.com"},
					},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: stderr, Scraper: scraper}

		cmd := &main.ScrapeCmd{URL: "https://example.com", Mode: "general"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, harvest.ModeGeneral, gotMode)
		output := stdout.String()
		assert.Contains(t, output, "Scraped https://example.com (general, inserted)")
		assert.Contains(t, output, "title:    Example")
		assert.Contains(t, output, "emails:   1")
		assert.Empty(t, stderr.String())
	})

	t.Run("prints products in products mode", func(t *testing.T) {
		t.Parallel()

		scraper := &mock.ScrapeService{
			ScrapeFn: func(_ context.Context, url string, mode harvest.Mode) (*harvest.ScrapeResult, error) {
				return &harvest.ScrapeResult{
					Mode:   mode,
					Status: harvest.StatusUpdated,
					Products: &harvest.ProductRecord{URL: url, Products: []*harvest.Product{
						{Title: "Widget", Price: price(19.99), Currency: "$", Rating: price(4.5), ReviewsCount: 12},
					}},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Scraper: scraper}

		err := (&main.ScrapeCmd{URL: "https://shop.example.com", Mode: "products"}).Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "(products, updated)")
		assert.Contains(t, output, "Widget  $19.99  rating 4.5  (12 reviews)")
	})

	t.Run("reports errors on stderr", func(t *testing.T) {
		t.Parallel()

		scraper := &mock.ScrapeService{
			ScrapeFn: func(_ context.Context, url string, _ harvest.Mode) (*harvest.ScrapeResult, error) {
				return nil, &harvest.FetchError{URL: url, StatusCode: 404}
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: stderr, Scraper: scraper}

		err := (&main.ScrapeCmd{URL: "https://example.com/missing", Mode: "general"}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error: fetch https://example.com/missing: HTTP 404")
		assert.Empty(t, stdout.String())
	})
}
