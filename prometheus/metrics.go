// Package prometheus records scrape metrics with the Prometheus client.
package prometheus

import (
	"time"

	"github.com/fwojciec/harvest"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for scrapes.
type Metrics struct {
	Registry          *prometheus.Registry
	ScrapesTotal      *prometheus.CounterVec
	ScrapeDuration    *prometheus.HistogramVec
	ProductsExtracted prometheus.Counter
	ErrorsTotal       *prometheus.CounterVec
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	scrapes := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "harvest_scrapes_total",
			Help: "Total scrape invocations by mode and outcome.",
		},
		[]string{"mode", "status"},
	)
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "harvest_scrape_duration_seconds",
			Help:    "Time spent on a scrape, including fetch and persistence.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"mode"},
	)
	products := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "harvest_products_extracted_total",
			Help: "Total viable products stored by product scrapes.",
		},
	)
	errorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "harvest_errors_total",
			Help: "Total failed scrapes by error code.",
		},
		[]string{"code"},
	)

	registry.MustRegister(scrapes, duration, products, errorsTotal)

	return &Metrics{
		Registry:          registry,
		ScrapesTotal:      scrapes,
		ScrapeDuration:    duration,
		ProductsExtracted: products,
		ErrorsTotal:       errorsTotal,
	}
}

// ObserveScrape records the outcome of one scrape.
func (m *Metrics) ObserveScrape(mode harvest.Mode, res *harvest.ScrapeResult, err error, d time.Duration) {
	if m == nil {
		return
	}
	m.ScrapeDuration.WithLabelValues(string(mode)).Observe(d.Seconds())
	if err != nil {
		m.ScrapesTotal.WithLabelValues(string(mode), string(harvest.AttemptError)).Inc()
		m.ErrorsTotal.WithLabelValues(harvest.ErrorCode(err)).Inc()
		return
	}
	m.ScrapesTotal.WithLabelValues(string(mode), string(res.Status)).Inc()
	if res.Products != nil {
		m.ProductsExtracted.Add(float64(len(res.Products.Products)))
	}
}

// WriteTextfile writes the current metrics in the text exposition format,
// suitable for the node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
