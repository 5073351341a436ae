package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/harvest"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := harvest.AttemptFilter{Limit: c.Limit}
	if c.URL != "" {
		filter.URL = &c.URL
	}

	attempts, err := deps.Attempts.FindAttempts(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	if len(attempts) == 0 {
		fmt.Fprintln(deps.Stdout, "No attempts logged.")
		return nil
	}

	for _, a := range attempts {
		fmt.Fprintf(deps.Stdout, "%d  %s  %-8s  %-8s  %s", a.ID, a.Timestamp.Format(time.RFC3339), a.Status, a.Mode, a.URL)
		if a.ErrorMessage != "" {
			fmt.Fprintf(deps.Stdout, "  %s", a.ErrorMessage)
		}
		fmt.Fprintln(deps.Stdout)
	}
	return nil
}
