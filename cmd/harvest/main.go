package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/goquery"
	harvesthttp "github.com/fwojciec/harvest/http"
	"github.com/fwojciec/harvest/prometheus"
	"github.com/fwojciec/harvest/readability"
	"github.com/fwojciec/harvest/robotstxt"
	"github.com/fwojciec/harvest/scrape"
	harvestslog "github.com/fwojciec/harvest/slog"
	"github.com/fwojciec/harvest/sqlite"
	"github.com/fwojciec/harvest/yaml"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Overrides the flag, environment and config file when set.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Fetcher overrides the HTTP fetcher when set.
	Fetcher harvest.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("harvest"),
		kong.Description("Scrape web pages into a local SQLite store"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'harvest --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := m.loadConfig(cli)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Set HARVEST_CONFIG or --config to a valid YAML file")
		return fmt.Errorf("failed to load config: %w", err)
	}

	profiles := goquery.DefaultSiteProfiles()
	if len(cfg.Sites) > 0 {
		if err := goquery.ValidateProfiles(cfg.Sites); err != nil {
			return fmt.Errorf("invalid site profiles: %w", err)
		}
		profiles = harvest.NewSiteProfiles(cfg.Sites...)
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	m.DB = sqlite.NewDB(cfg.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintln(stderr, "Hint: Set HARVEST_DB to use a different database path")
		return fmt.Errorf("failed to open database at %q: %w", cfg.DBPath, err)
	}
	defer m.Close()

	var fetcher harvest.Fetcher = m.Fetcher
	if fetcher == nil {
		fetcher = harvesthttp.NewFetcher(
			harvesthttp.WithTimeout(cfg.Timeout),
			harvesthttp.WithUserAgent(cfg.UserAgent),
		)
	}
	if cfg.RespectRobots {
		fetcher = robotstxt.NewFetcher(fetcher, cfg.UserAgent)
	}
	fetcher = harvestslog.NewLoggingFetcher(fetcher, logger)
	defer fetcher.Close()

	deps.DB = m.DB
	deps.Records = sqlite.NewRecordService(m.DB)
	deps.ProductRecords = sqlite.NewProductRecordService(m.DB)
	deps.Attempts = sqlite.NewAttemptService(m.DB)
	deps.Sites = profiles

	scraper := &scrape.Scraper{
		Fetcher:        fetcher,
		Pages:          goquery.NewPageExtractor(readability.NewExtractor()),
		Products:       goquery.NewProductExtractor(profiles),
		Records:        deps.Records,
		ProductRecords: deps.ProductRecords,
		Attempts:       deps.Attempts,
		Concurrency:    cfg.Concurrency,
	}

	metrics := prometheus.NewMetrics()
	deps.Scraper = harvestslog.NewLoggingScrapeService(prometheus.NewScrapeService(scraper, metrics), logger)
	deps.Prices = harvestslog.NewLoggingPriceService(scraper, logger)

	runErr := kongCtx.Run(deps)

	if cli.MetricsFile != "" {
		if err := metrics.WriteTextfile(cli.MetricsFile); err != nil {
			logger.Error("write metrics", "path", cli.MetricsFile, "err", err)
		}
	}

	return runErr
}

// loadConfig resolves configuration from the config file, flags and Main.
func (m *Main) loadConfig(cli *CLI) (*harvest.Config, error) {
	cfg := harvest.DefaultConfig()
	if cli.Config != "" {
		var err error
		if cfg, err = yaml.LoadConfig(cli.Config); err != nil {
			return nil, err
		}
	}
	if cli.DB != "" {
		cfg.DBPath = cli.DB
	}
	if m.DBPath != "" {
		cfg.DBPath = m.DBPath
	}
	if cli.Timeout > 0 {
		cfg.Timeout = cli.Timeout
	}
	if cli.Robots {
		cfg.RespectRobots = true
	}
	return cfg, cfg.Validate()
}
