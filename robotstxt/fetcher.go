// Package robotstxt provides a Fetcher that honours robots.txt rules.
package robotstxt

import (
	"context"
	"errors"
	"net/url"

	"github.com/fwojciec/harvest"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/temoto/robotstxt"
)

// DefaultCacheSize is the number of hosts whose rules are kept in memory.
const DefaultCacheSize = 128

// ErrDisallowed is wrapped in the FetchError returned for a disallowed URL.
var ErrDisallowed = errors.New("disallowed by robots.txt")

var _ harvest.Fetcher = (*Fetcher)(nil)

// Fetcher wraps a Fetcher and refuses URLs that the host's robots.txt
// disallows for the configured user agent. Rules are fetched once per host
// through the wrapped Fetcher.
type Fetcher struct {
	next      harvest.Fetcher
	userAgent string
	rules     *lru.Cache[string, *robotstxt.RobotsData]
}

// NewFetcher creates a new Fetcher.
func NewFetcher(next harvest.Fetcher, userAgent string) *Fetcher {
	rules, err := lru.New[string, *robotstxt.RobotsData](DefaultCacheSize)
	if err != nil {
		// Only returned for a non-positive size.
		panic(err)
	}
	return &Fetcher{next: next, userAgent: userAgent, rules: rules}
}

// Fetch retrieves rawURL when robots.txt allows it.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return f.next.Fetch(ctx, rawURL)
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	if !f.robots(ctx, u).TestAgent(path, f.userAgent) {
		return "", &harvest.FetchError{URL: rawURL, Err: ErrDisallowed}
	}
	return f.next.Fetch(ctx, rawURL)
}

// Close delegates to the wrapped fetcher.
func (f *Fetcher) Close() error {
	return f.next.Close()
}

// robots returns the rules for u's host, fetching robots.txt on a cache
// miss. A missing robots.txt allows everything and a 5xx response
// disallows everything.
func (f *Fetcher) robots(ctx context.Context, u *url.URL) *robotstxt.RobotsData {
	key := u.Scheme + "://" + u.Host
	if data, ok := f.rules.Get(key); ok {
		return data
	}

	status := 200
	body, err := f.next.Fetch(ctx, key+"/robots.txt")
	if err != nil {
		var fe *harvest.FetchError
		if !errors.As(err, &fe) || fe.StatusCode == 0 {
			// Unreachable hosts are not cached so a later call asks again.
			return allowAll()
		}
		status, body = fe.StatusCode, ""
	}

	data, err := robotstxt.FromStatusAndBytes(status, []byte(body))
	if err != nil {
		data = allowAll()
	}
	f.rules.Add(key, data)
	return data
}

func allowAll() *robotstxt.RobotsData {
	data, _ := robotstxt.FromStatusAndBytes(404, nil)
	return data
}
