package main

import (
	"fmt"

	"github.com/fwojciec/freitagsfoo"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	record, err := deps.Store.FindRecordByDate(deps.Ctx, c.Date)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", freitagsfoo.ErrorMessage(err))
		return err
	}

	data, err := freitagsfoo.MarshalRecord(record)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", freitagsfoo.ErrorMessage(err))
		return err
	}

	_, err = deps.Stdout.Write(data)
	return err
}
