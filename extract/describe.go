package extract

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/freitagsfoo"
	"github.com/fwojciec/freitagsfoo/wikitext"
)

// DescriptionPolicy selects how talk descriptions are produced.
type DescriptionPolicy int

const (
	// DescribeNone leaves every description empty.
	DescribeNone DescriptionPolicy = iota

	// DescribeRender renders the section body with a Renderer.
	DescribeRender

	// DescribeHeuristic keeps the body's lines minus short attribution lines.
	DescribeHeuristic
)

// String returns the configuration name of the policy.
func (p DescriptionPolicy) String() string {
	switch p {
	case DescribeNone:
		return "none"
	case DescribeRender:
		return "render"
	case DescribeHeuristic:
		return "heuristic"
	}
	return "unknown"
}

// ParseDescriptionPolicy parses a policy name as returned by String.
func ParseDescriptionPolicy(s string) (DescriptionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return DescribeNone, nil
	case "render":
		return DescribeRender, nil
	case "heuristic":
		return DescribeHeuristic, nil
	}
	return 0, freitagsfoo.Errorf(freitagsfoo.EINVALID, "unknown description policy %q", s)
}

// Describer produces the description of one talk section.
type Describer interface {
	Describe(ctx context.Context, section *wikitext.Section, persons []string) (string, error)
}

// NewDescriber returns the Describer for policy.
// The renderer is only used, and then required, by DescribeRender.
func NewDescriber(policy DescriptionPolicy, renderer freitagsfoo.Renderer) (Describer, error) {
	switch policy {
	case DescribeNone:
		return NoDescription{}, nil
	case DescribeRender:
		if renderer == nil {
			return nil, freitagsfoo.Errorf(freitagsfoo.EINVALID, "render description policy requires a renderer")
		}
		return &RenderedDescription{Renderer: renderer}, nil
	case DescribeHeuristic:
		return HeuristicDescription{}, nil
	}
	return nil, freitagsfoo.Errorf(freitagsfoo.EINVALID, "unknown description policy %d", policy)
}

// NoDescription always describes a talk with the empty string.
type NoDescription struct{}

func (NoDescription) Describe(context.Context, *wikitext.Section, []string) (string, error) {
	return "", nil
}

// RenderedDescription renders the section body to plain text.
type RenderedDescription struct {
	Renderer freitagsfoo.Renderer
}

func (d *RenderedDescription) Describe(ctx context.Context, section *wikitext.Section, _ []string) (string, error) {
	contents := section.Contents()
	if strings.TrimSpace(contents) == "" {
		return "", nil
	}
	text, err := d.Renderer.Render(ctx, contents)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// HeuristicDescription filters attribution lines out of the raw body.
type HeuristicDescription struct{}

func (HeuristicDescription) Describe(_ context.Context, section *wikitext.Section, persons []string) (string, error) {
	return FilterAttributionLines(section.Contents(), persons), nil
}

// FilterAttributionLines joins the non-empty lines of body with single
// spaces, dropping lines that look like "by {{U|alice}}": lines mentioning
// every person that are shorter than
//
//	len(join(persons, ",")) + 10*len(persons) + 5
//
// Lengths count runes and exclude a trailing carriage return.
// The threshold is a guess inherited from earlier versions of the scraper and
// kept for output compatibility.
func FilterAttributionLines(body string, persons []string) string {
	limit := utf8.RuneCountInString(strings.Join(persons, ",")) + 10*len(persons) + 5

	var kept []string
	for _, line := range strings.Split(body, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		line = strings.TrimRight(line, "\r")
		if mentionsAll(line, persons) && utf8.RuneCountInString(line) < limit {
			continue
		}
		kept = append(kept, strings.TrimSpace(line))
	}
	return strings.TrimSpace(strings.Join(kept, " "))
}

func mentionsAll(line string, persons []string) bool {
	lower := strings.ToLower(line)
	for _, p := range persons {
		if !strings.Contains(lower, strings.ToLower(p)) {
			return false
		}
	}
	return true
}
