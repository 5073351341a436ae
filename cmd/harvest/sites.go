package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/harvest"
)

// Run executes the sites command.
func (c *SitesCmd) Run(deps *Dependencies) error {
	profiles := deps.Sites.List()
	if len(profiles) == 0 {
		fmt.Fprintln(deps.Stdout, "No site profiles configured.")
		return nil
	}

	for _, p := range profiles {
		match := p.Match
		if match == "" {
			match = p.Name
		}
		fmt.Fprintf(deps.Stdout, "%s  match=%s  fields=%s\n", p.Name, match, strings.Join(selectedFields(p.Selectors), ","))
	}
	return nil
}

// selectedFields names the product fields the profile has a selector for.
func selectedFields(s harvest.ProductSelectors) []string {
	var fields []string
	for _, f := range []struct{ name, selector string }{
		{"title", s.Title},
		{"price", s.Price},
		{"rating", s.Rating},
		{"reviews", s.Reviews},
		{"availability", s.Availability},
		{"image", s.Image},
		{"seller", s.Seller},
		{"specifications", s.Specifications},
	} {
		if f.selector != "" {
			fields = append(fields, f.name)
		}
	}
	return fields
}
