package main

import (
	"fmt"

	"github.com/fwojciec/doxhund"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return doxhund.Errorf(doxhund.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Articles.DeleteArticle(deps.Ctx, c.ID); err != nil {
		if doxhund.ErrorCode(err) == doxhund.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: article %q not found. Use 'doxhund list' to see stored articles.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", doxhund.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted article %s\n", c.ID)
	return nil
}
