package extract

import (
	"context"
	"strings"

	"github.com/fwojciec/freitagsfoo"
	"github.com/fwojciec/freitagsfoo/wikitext"
)

// MaxTalkLevel is the deepest heading level that starts a talk.
// Deeper headings are sub-headings of a talk's body.
const MaxTalkLevel = 2

// ParseTalks returns one talk per section after the lead, skipping sections
// deeper than MaxTalkLevel. Persons are taken from the section's own parsed
// subtree, not from a re-parse of its text.
func ParseTalks(ctx context.Context, doc *wikitext.Document, authors Authors, describer Describer) ([]freitagsfoo.Talk, error) {
	sections := doc.Sections()
	talks := make([]freitagsfoo.Talk, 0, len(sections))

	for _, section := range sections[1:] {
		if section.Level > MaxTalkLevel {
			continue
		}
		title := strings.TrimSpace(section.Title)

		if unclosed := section.Unclosed(); len(unclosed) > 0 {
			return nil, freitagsfoo.Errorf(freitagsfoo.ESECTIONPARSE,
				"section %q: unclosed %q at offset %d", title, unclosed[0].Opener, unclosed[0].Offset)
		}

		persons, bad := authors.find(section)
		if bad != "" {
			return nil, freitagsfoo.Errorf(freitagsfoo.ESECTIONPARSE,
				"section %q: author reference %q names no one", title, bad)
		}

		description, err := describer.Describe(ctx, section, persons)
		if err != nil {
			return nil, err
		}

		talks = append(talks, freitagsfoo.Talk{
			Title:       title,
			Description: description,
			Persons:     persons,
		})
	}

	return talks, nil
}
