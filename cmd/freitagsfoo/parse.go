package main

import (
	"fmt"

	"github.com/fwojciec/freitagsfoo"
	"github.com/fwojciec/freitagsfoo/fs"
)

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	if c.Extract.Date != "" {
		if _, err := freitagsfoo.ParseDate(c.Extract.Date); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", freitagsfoo.ErrorMessage(err))
			return err
		}
	}

	extractor, err := c.Extract.extractor(c.Extract.Date, deps.Renderer)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", freitagsfoo.ErrorMessage(err))
		return err
	}

	page, err := fs.ReadPage(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", freitagsfoo.ErrorMessage(err))
		return err
	}

	record, err := extractor.Extract(deps.Ctx, page)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", freitagsfoo.ErrorMessage(err))
		return err
	}

	if err := deps.Writer.WriteRecord(deps.Ctx, record); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", freitagsfoo.ErrorMessage(err))
		return err
	}
	return nil
}
