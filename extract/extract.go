// Package extract turns the markup of a meetup page into a freitagsfoo.Record.
package extract

import (
	"context"

	"github.com/fwojciec/freitagsfoo"
	"github.com/fwojciec/freitagsfoo/wikitext"
)

// Extractor extracts records from pages. The zero value reads the top
// section template, leaves descriptions empty and skips the date check.
type Extractor struct {
	Mode TopSectionMode

	// FixedDate is the record date in MarkupScan mode.
	FixedDate string

	// ExpectedDate, if set, must equal the extracted date.
	ExpectedDate string

	// Describer defaults to NoDescription.
	Describer Describer

	// Authors defaults to DefaultAuthors.
	Authors Authors
}

// Extract parses page into a record.
func (e *Extractor) Extract(ctx context.Context, page *freitagsfoo.Page) (*freitagsfoo.Record, error) {
	authors := e.Authors
	if authors.isZero() {
		authors = DefaultAuthors
	}
	describer := e.Describer
	if describer == nil {
		describer = NoDescription{}
	}

	doc := wikitext.Parse(page.Text)

	top := page.TopSection
	if top == "" {
		top = doc.Sections()[0].Contents()
	}

	var (
		hosts []string
		date  string
		err   error
	)
	switch e.Mode {
	case TemplateArgs:
		hosts, date, err = ParseTopSection(top)
	case MarkupScan:
		if e.FixedDate == "" {
			return nil, freitagsfoo.Errorf(freitagsfoo.EINVALID, "scan mode requires a configured date")
		}
		date = e.FixedDate
		hosts, err = ScanTopSection(top, authors)
	default:
		return nil, freitagsfoo.Errorf(freitagsfoo.EINVALID, "unknown top section mode %d", e.Mode)
	}
	if err != nil {
		return nil, err
	}

	if e.ExpectedDate != "" && date != e.ExpectedDate {
		return nil, freitagsfoo.Errorf(freitagsfoo.EDATEMISMATCH,
			"page %q is dated %s, expected %s", page.Title, date, e.ExpectedDate)
	}

	talks, err := ParseTalks(ctx, doc, authors, describer)
	if err != nil {
		return nil, err
	}

	record := &freitagsfoo.Record{
		Hosts: hosts,
		Date:  date,
		Talks: talks,
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}
	return record, nil
}
