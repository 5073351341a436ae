package main

import (
	"fmt"

	"github.com/fwojciec/harvest"
)

// Run executes the compare command.
func (c *CompareCmd) Run(deps *Dependencies) error {
	quotes, err := deps.Prices.ComparePrices(deps.Ctx, c.URLs)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	var best *harvest.PriceQuote
	for i := range quotes {
		q := &quotes[i]
		if q.Err != nil {
			fmt.Fprintf(deps.Stdout, "%s  error: %s\n", q.URL, harvest.ErrorMessage(q.Err))
			continue
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", q.URL, q.Title, formatPrice(q.Price, ""))
		if q.Price != nil && (best == nil || *q.Price < *best.Price) {
			best = q
		}
	}

	if best == nil {
		fmt.Fprintln(deps.Stderr, "error: no prices found")
		return harvest.Errorf(harvest.ENOTFOUND, "no prices found")
	}
	fmt.Fprintf(deps.Stdout, "Lowest: %s at %s\n", formatPrice(best.Price, ""), best.URL)
	return nil
}
