package main

import (
	"fmt"

	"github.com/fwojciec/freitagsfoo"
)

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) (err error) {
	begin := deps.now()
	defer func() {
		if deps.Metrics == nil {
			return
		}
		deps.Metrics.ObserveRun(begin, deps.now(), err)
		if werr := deps.Metrics.WriteFile(c.MetricsFile); werr != nil {
			fmt.Fprintf(deps.Stderr, "error: failed to write metrics: %v\n", werr)
			if err == nil {
				err = werr
			}
		}
	}()

	date := freitagsfoo.MeetingDate(begin)
	if c.Extract.Date != "" {
		if date, err = freitagsfoo.ParseDate(c.Extract.Date); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", freitagsfoo.ErrorMessage(err))
			return err
		}
	}
	title := freitagsfoo.PageTitle(c.PagePrefix, date)

	extractor, err := c.Extract.extractor(freitagsfoo.FormatDate(date), deps.Renderer)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", freitagsfoo.ErrorMessage(err))
		return err
	}

	page, err := deps.Pages.FetchPage(deps.Ctx, title)
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

	if deps.Store != nil {
		if err := deps.Store.WriteRecord(deps.Ctx, record); err != nil {
			fmt.Fprintf(deps.Stderr, "error: failed to archive record: %s\n", freitagsfoo.ErrorMessage(err))
			return err
		}
	}

	if deps.Metrics != nil {
		deps.Metrics.ObserveRecord(record)
	}

	if c.Output != stdoutPath {
		fmt.Fprintf(deps.Stdout, "Wrote %s with %d talks to %s\n", record.Date, len(record.Talks), c.Output)
	}
	return nil
}
