package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/harvest"
	harvesthttp "github.com/fwojciec/harvest/http"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns HTML body from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<html><body>Hello World</body></html>"))
		}))
		defer server.Close()

		fetcher := harvesthttp.NewFetcher()
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "<html><body>Hello World</body></html>", html)
	})

	t.Run("sends browser user agent and accept headers", func(t *testing.T) {
		t.Parallel()

		var gotUA, gotAccept string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			gotAccept = r.Header.Get("Accept")
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		fetcher := harvesthttp.NewFetcher()
		_, err := fetcher.Fetch(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, harvest.DefaultUserAgent, gotUA)
		assert.Equal(t, harvest.DefaultAccept, gotAccept)
	})

	t.Run("uses custom user agent option", func(t *testing.T) {
		t.Parallel()

		var gotUA string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
		}))
		defer server.Close()

		fetcher := harvesthttp.NewFetcher(harvesthttp.WithUserAgent("harvest-test/1.0"))
		_, err := fetcher.Fetch(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, "harvest-test/1.0", gotUA)
	})

	t.Run("decodes declared charset to UTF-8", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
			_, _ = w.Write([]byte("<p>caf\xe9</p>"))
		}))
		defer server.Close()

		fetcher := harvesthttp.NewFetcher()
		html, err := fetcher.Fetch(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, "<p>café</p>", html)
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		// Use a very short timeout that will expire before server responds
		fetcher := harvesthttp.NewFetcher(harvesthttp.WithTimeout(10 * time.Millisecond))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)

		var fetchErr *harvest.FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.True(t, fetchErr.Timeout())
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := harvesthttp.NewFetcher()
		defer fetcher.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel() // Cancel immediately

		_, err := fetcher.Fetch(ctx, server.URL)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("returns error for non-existent host", func(t *testing.T) {
		t.Parallel()

		fetcher := harvesthttp.NewFetcher(harvesthttp.WithTimeout(100 * time.Millisecond))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), "http://non-existent-host.invalid/page")
		require.Error(t, err)
		assert.Equal(t, harvest.EFETCH, harvest.ErrorCode(err))
	})

	t.Run("returns error for non-2xx status codes", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("404 Not Found"))
		}))
		defer server.Close()

		fetcher := harvesthttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")

		var fetchErr *harvest.FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	})

	t.Run("accepts any 2xx status", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusAccepted)
			_, _ = w.Write([]byte("accepted"))
		}))
		defer server.Close()

		html, err := harvesthttp.NewFetcher().Fetch(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, "accepted", html)
	})

	t.Run("returns error for malformed URL", func(t *testing.T) {
		t.Parallel()

		_, err := harvesthttp.NewFetcher().Fetch(context.Background(), "http://bad host/")

		var fetchErr *harvest.FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, 0, fetchErr.StatusCode)
	})
}

func TestFetcher_Transport(t *testing.T) {
	t.Parallel()

	t.Run("wraps transport errors", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("connection refused")
		transport := httpmock.NewMockTransport()
		transport.RegisterResponder(http.MethodGet, "https://shop.example/item",
			httpmock.NewErrorResponder(cause))

		fetcher := harvesthttp.NewFetcher(harvesthttp.WithHTTPClient(&http.Client{Transport: transport}))
		_, err := fetcher.Fetch(context.Background(), "https://shop.example/item")

		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, harvest.EFETCH, harvest.ErrorCode(err))
		assert.Equal(t, 1, transport.GetTotalCallCount())
	})

	t.Run("does not retry server errors", func(t *testing.T) {
		t.Parallel()

		transport := httpmock.NewMockTransport()
		transport.RegisterResponder(http.MethodGet, "https://shop.example/item",
			httpmock.NewStringResponder(http.StatusServiceUnavailable, "busy"))

		fetcher := harvesthttp.NewFetcher(harvesthttp.WithHTTPClient(&http.Client{Transport: transport}))
		_, err := fetcher.Fetch(context.Background(), "https://shop.example/item")

		var fetchErr *harvest.FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, http.StatusServiceUnavailable, fetchErr.StatusCode)
		assert.Equal(t, 1, transport.GetTotalCallCount())
	})

	t.Run("returns body from mocked transport", func(t *testing.T) {
		t.Parallel()

		transport := httpmock.NewMockTransport()
		transport.RegisterResponder(http.MethodGet, "https://shop.example/item",
			httpmock.NewStringResponder(http.StatusOK, `<h1>Widget</h1>`))

		fetcher := harvesthttp.NewFetcher(harvesthttp.WithHTTPClient(&http.Client{Transport: transport}))
		html, err := fetcher.Fetch(context.Background(), "https://shop.example/item")

		require.NoError(t, err)
		assert.Equal(t, `<h1>Widget</h1>`, html)
	})
}

// Compile-time verification that Fetcher implements harvest.Fetcher
var _ harvest.Fetcher = (*harvesthttp.Fetcher)(nil)
