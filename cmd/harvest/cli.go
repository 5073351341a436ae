package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx            context.Context
	Stdout         io.Writer
	Stderr         io.Writer
	DB             *sqlite.DB
	Scraper        harvest.ScrapeService
	Prices         harvest.PriceService
	Records        harvest.RecordService
	ProductRecords harvest.ProductRecordService
	Attempts       harvest.AttemptService
	Sites          *harvest.SiteProfiles
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config      string        `short:"c" type:"path" env:"HARVEST_CONFIG" help:"YAML config file"`
	DB          string        `name:"db" env:"HARVEST_DB" help:"SQLite database path"`
	Timeout     time.Duration `short:"t" help:"Fetch timeout (default from config, 10s)"`
	Verbose     bool          `short:"v" help:"Enable debug logging"`
	Robots      bool          `name:"respect-robots" help:"Skip URLs disallowed by robots.txt"`
	MetricsFile string        `name:"metrics-file" type:"path" help:"Write Prometheus metrics to this file after the run"`

	Scrape   ScrapeCmd   `cmd:"" help:"Scrape a URL and store the result"`
	List     ListCmd     `cmd:"" help:"List stored page records"`
	Products ProductsCmd `cmd:"" help:"Show stored products"`
	History  HistoryCmd  `cmd:"" help:"Show the scrape attempt log"`
	Track    TrackCmd    `cmd:"" help:"Check a product price against a target"`
	Compare  CompareCmd  `cmd:"" help:"Compare product prices across URLs"`
	Sites    SitesCmd    `cmd:"" help:"List site profiles used for product extraction"`
	Migrate  MigrateCmd  `cmd:"" help:"Create or reset the database schema"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL  string `arg:"" help:"Page URL"`
	Mode string `short:"m" enum:"general,products" default:"general" help:"Extraction mode (general, products)"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// ProductsCmd is the "products" subcommand.
type ProductsCmd struct {
	URL string `arg:"" optional:"" help:"Only show products scraped from this URL"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	URL   string `help:"Only show attempts for this URL"`
	Limit int    `short:"n" default:"0" help:"Maximum number of attempts to show (0 for all)"`
}

// TrackCmd is the "track" subcommand.
type TrackCmd struct {
	URL    string  `arg:"" help:"Product page URL"`
	Target float64 `arg:"" help:"Target price"`
}

// CompareCmd is the "compare" subcommand.
type CompareCmd struct {
	URLs []string `arg:"" name:"url" help:"Product page URLs"`
}

// SitesCmd is the "sites" subcommand.
type SitesCmd struct{}

// MigrateCmd is the "migrate" subcommand.
type MigrateCmd struct {
	Reset bool `help:"Drop all stored data and recreate the schema"`
	Force bool `help:"Confirm reset"`
}
