package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/harvest"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	recs, err := deps.Records.FindRecords(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	if len(recs) == 0 {
		fmt.Fprintln(deps.Stdout, "No records found. Use 'harvest scrape' to add one.")
		return nil
	}

	for _, r := range recs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", r.LastUpdated.Format(time.RFC3339), r.URL, r.Title)
	}
	return nil
}
