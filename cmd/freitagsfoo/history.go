package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/freitagsfoo"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := freitagsfoo.RecordFilter{Limit: c.Limit}
	if c.Person != "" {
		filter.Person = &c.Person
	}

	records, err := deps.Store.FindRecords(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", freitagsfoo.ErrorMessage(err))
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, "No archived meetups found. Use 'freitagsfoo run --db' to archive one.")
		return nil
	}

	for _, r := range records {
		fmt.Fprintf(deps.Stdout, "%s  hosts: %s  talks: %d\n", r.Date, strings.Join(r.Hosts, ", "), len(r.Talks))
		for _, talk := range r.Talks {
			fmt.Fprintf(deps.Stdout, "  - %s\n", talk.Title)
		}
	}

	return nil
}
