package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/harvest"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	res, err := deps.Scraper.Scrape(deps.Ctx, c.URL, harvest.Mode(c.Mode))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Scraped %s (%s, %s)\n", c.URL, res.Mode, res.Status)

	switch {
	case res.Record != nil:
		printRecordSummary(deps.Stdout, res.Record)
	case res.Products != nil:
		if len(res.Products.Products) == 0 {
			fmt.Fprintln(deps.Stdout, "No products found.")
		}
		for _, p := range res.Products.Products {
			printProduct(deps.Stdout, p)
		}
	}
	return nil
}

func printRecordSummary(w io.Writer, rec *harvest.GeneralRecord) {
	if rec.Title != "" {
		fmt.Fprintf(w, "  title:    %s\n", rec.Title)
	}
	fmt.Fprintf(w, "  emails:   %d\n", len(rec.Emails))
	fmt.Fprintf(w, "  phones:   %d\n", len(rec.PhoneNumbers))
	fmt.Fprintf(w, "  social:   %d\n", len(rec.SocialLinks))
	fmt.Fprintf(w, "  images:   %d\n", len(rec.Images))
	fmt.Fprintf(w, "  links:    %d\n", len(rec.Links))
}

func printProduct(w io.Writer, p *harvest.Product) {
	fmt.Fprintf(w, "  %s  %s", p.Title, formatPrice(p.Price, p.Currency))
	if p.Rating != nil {
		fmt.Fprintf(w, "  rating %.1f", *p.Rating)
	}
	if p.ReviewsCount > 0 {
		fmt.Fprintf(w, "  (%d reviews)", p.ReviewsCount)
	}
	if p.Availability != "" {
		fmt.Fprintf(w, "  %s", p.Availability)
	}
	fmt.Fprintln(w)
}

func formatPrice(price *float64, currency string) string {
	if price == nil {
		return "-"
	}
	return fmt.Sprintf("%s%.2f", currency, *price)
}
