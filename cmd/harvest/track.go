package main

import (
	"fmt"

	"github.com/fwojciec/harvest"
)

// Run executes the track command.
func (c *TrackCmd) Run(deps *Dependencies) error {
	check, err := deps.Prices.TrackPrice(deps.Ctx, c.URL, c.Target)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s: %s (target %.2f)\n", check.Title, formatPrice(check.Price, ""), check.Target)
	if check.Dropped() {
		fmt.Fprintln(deps.Stdout, "Price is at or below target.")
	} else {
		fmt.Fprintln(deps.Stdout, "Price is above target.")
	}
	return nil
}
