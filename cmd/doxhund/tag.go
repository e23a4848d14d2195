package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/doxhund"
)

// Run executes the tag command.
func (c *TagCmd) Run(deps *Dependencies) error {
	for _, line := range strings.Split(c.Text, "\n") {
		tokens := deps.Tagger.Tag(line)
		if len(tokens) == 0 {
			continue
		}

		if c.Entities {
			for _, ent := range doxhund.NamedEntities(tokens) {
				fmt.Fprintln(deps.Stdout, ent)
			}
			continue
		}

		pairs := make([]string, len(tokens))
		for i, t := range tokens {
			pairs[i] = t.Text + "/" + t.Tag
		}
		fmt.Fprintln(deps.Stdout, strings.Join(pairs, " "))
	}
	return nil
}
