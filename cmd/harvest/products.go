package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/harvest"
)

// Run executes the products command.
func (c *ProductsCmd) Run(deps *Dependencies) error {
	var recs []*harvest.ProductRecord
	if c.URL != "" {
		rec, err := deps.ProductRecords.FindProductRecordByURL(deps.Ctx, c.URL)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
			return err
		}
		recs = append(recs, rec)
	} else {
		var err error
		if recs, err = deps.ProductRecords.FindProductRecords(deps.Ctx); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
			return err
		}
	}

	if len(recs) == 0 {
		fmt.Fprintln(deps.Stdout, "No products found. Use 'harvest scrape --mode products' to add some.")
		return nil
	}

	for _, r := range recs {
		fmt.Fprintf(deps.Stdout, "%s  (%d products, updated %s)\n", r.URL, len(r.Products), r.LastUpdated.Format(time.RFC3339))
		for _, p := range r.Products {
			printProduct(deps.Stdout, p)
		}
	}
	return nil
}
