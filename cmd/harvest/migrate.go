package main

import (
	"fmt"

	"github.com/fwojciec/harvest"
)

// Run executes the migrate command. Opening the database already creates
// any missing tables; --reset additionally drops all stored data.
func (c *MigrateCmd) Run(deps *Dependencies) error {
	if !c.Reset {
		fmt.Fprintln(deps.Stdout, "Schema is up to date.")
		return nil
	}

	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm reset\n")
		return harvest.Errorf(harvest.EINVALID, "use --force to confirm reset")
	}

	if err := deps.DB.Reset(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, "Database reset.")
	return nil
}
